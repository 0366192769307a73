package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/story-bias/internal/models"
	"alfredoptarigan/story-bias/internal/repositories"
)

// StoryLabel is the label every submitted URL is analysed under.
const StoryLabel = "Story"

var errNoResult = errors.New("analyzer returned no result")

type Outcome int

const (
	OutcomeEmptyInput Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmptyInput:
		return "empty_input"
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ReportService turns a submitted story URL into a one-shot message for
// the submitting session, and hands that message out exactly once.
type ReportService interface {
	Submit(ctx context.Context, sessionID, rawURL string) (Outcome, error)
	Consume(ctx context.Context, sessionID string) (*models.Message, error)
}

type reportService struct {
	analyzer  Analyzer
	flashRepo repositories.FlashRepository
	logger    *zap.Logger
}

func NewReportService(
	analyzer Analyzer,
	flashRepo repositories.FlashRepository,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		analyzer:  analyzer,
		flashRepo: flashRepo,
		logger:    logger,
	}
}

// Submit implements ReportService. Analyzer failures never surface as an
// error here; they become the session's error message. The returned error
// is only set when the message itself could not be stored.
func (s *reportService) Submit(ctx context.Context, sessionID, rawURL string) (Outcome, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return OutcomeEmptyInput, nil
	}

	result, err := s.analyze(ctx, url)
	if err != nil {
		s.logger.Warn("story analysis failed", zap.String("url", url), zap.Error(err))
		if putErr := s.flashRepo.Put(ctx, sessionID, models.NewErrorMessage(err.Error())); putErr != nil {
			return OutcomeFailed, putErr
		}
		return OutcomeFailed, nil
	}

	s.logger.Info("story analysis completed", zap.String("url", url))
	if err := s.flashRepo.Put(ctx, sessionID, models.NewReportMessage(FormatReport(*result))); err != nil {
		return OutcomeSucceeded, err
	}
	return OutcomeSucceeded, nil
}

// Consume implements ReportService.
func (s *reportService) Consume(ctx context.Context, sessionID string) (*models.Message, error) {
	if sessionID == "" {
		return nil, nil
	}
	return s.flashRepo.Pop(ctx, sessionID)
}

func (s *reportService) analyze(ctx context.Context, url string) (result *models.AnalysisResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("analysis failed: %v", r)
		}
	}()

	result, err = s.analyzer.AnalyzeFromURL(ctx, url, StoryLabel)
	if err == nil && result == nil {
		err = errNoResult
	}
	return result, err
}
