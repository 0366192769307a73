package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alfredoptarigan/story-bias/internal/models"
)

// ErrAnalyzerMissing means no analyze_book_from_url capability is reachable.
var ErrAnalyzerMissing = errors.New("analyze_book_from_url not found in analysis service")

const maxAnalyzerResponseSize = 1 << 20

// Analyzer scores a story reachable at url. label names the kind of text
// being analysed and is passed through to the analysis service unchanged.
type Analyzer interface {
	AnalyzeFromURL(ctx context.Context, url, label string) (*models.AnalysisResult, error)
}

// AnalysisError is a failure reported by the analysis service itself.
// Its text is shown to the user as-is.
type AnalysisError struct {
	StatusCode int
	Message    string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// NewAnalyzer returns the remote analyzer for baseURL, or an analyzer that
// always fails with ErrAnalyzerMissing when no service is configured.
func NewAnalyzer(baseURL string, timeout time.Duration) Analyzer {
	if strings.TrimSpace(baseURL) == "" {
		return missingAnalyzer{}
	}
	return NewRemoteAnalyzer(baseURL, &http.Client{Timeout: timeout})
}

type missingAnalyzer struct{}

func (missingAnalyzer) AnalyzeFromURL(context.Context, string, string) (*models.AnalysisResult, error) {
	return nil, ErrAnalyzerMissing
}

type remoteAnalyzer struct {
	endpoint string
	client   *http.Client
}

// NewRemoteAnalyzer calls POST {baseURL}/analyze on the analysis service.
func NewRemoteAnalyzer(baseURL string, client *http.Client) Analyzer {
	if client == nil {
		client = http.DefaultClient
	}
	return &remoteAnalyzer{
		endpoint: strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/analyze",
		client:   client,
	}
}

// AnalyzeFromURL implements Analyzer.
func (a *remoteAnalyzer) AnalyzeFromURL(ctx context.Context, url, label string) (*models.AnalysisResult, error) {
	body, err := json.Marshal(models.AnalyzeRequest{URL: url, Label: label})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxAnalyzerResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrAnalyzerMissing
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAnalysisError(resp.StatusCode, payload)
	}

	var result *models.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("malformed analysis result: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("malformed analysis result: %w", errNoResult)
	}

	return result, nil
}

func newAnalysisError(status int, payload []byte) *AnalysisError {
	var body models.AnalyzeErrorResponse
	if err := json.Unmarshal(payload, &body); err == nil && body.Error != "" {
		return &AnalysisError{StatusCode: status, Message: body.Error}
	}

	msg := http.StatusText(status)
	if msg == "" {
		msg = fmt.Sprintf("analysis service returned status %d", status)
	}
	return &AnalysisError{StatusCode: status, Message: msg}
}
