package services

import (
	"context"

	"alfredoptarigan/story-bias/internal/models"
)

type analyzerFunc func(ctx context.Context, url, label string) (*models.AnalysisResult, error)

func (f analyzerFunc) AnalyzeFromURL(ctx context.Context, url, label string) (*models.AnalysisResult, error) {
	return f(ctx, url, label)
}

func fixedResult(result models.AnalysisResult) Analyzer {
	return analyzerFunc(func(context.Context, string, string) (*models.AnalysisResult, error) {
		r := result
		return &r, nil
	})
}

func failing(err error) Analyzer {
	return analyzerFunc(func(context.Context, string, string) (*models.AnalysisResult, error) {
		return nil, err
	})
}
