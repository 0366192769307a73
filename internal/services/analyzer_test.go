package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/story-bias/internal/models"
)

func newAnalysisService(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteAnalyzer_Success(t *testing.T) {
	t.Parallel()

	var got models.AnalyzeRequest
	srv := newAnalysisService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"gender_balance_score": 6.5,
			"role_diversity_score": 8,
			"stereotype_penalty": 3,
			"gender_mentions": {"male": 14, "female": 9},
			"characters": ["wolf", "grandmother"]
		}`))
	})

	analyzer := NewRemoteAnalyzer(srv.URL+"/", srv.Client())
	result, err := analyzer.AnalyzeFromURL(context.Background(), "https://example.com/red-riding-hood", StoryLabel)
	require.NoError(t, err)

	want := &models.AnalysisResult{
		GenderBalanceScore: 6.5,
		RoleDiversityScore: 8,
		StereotypePenalty:  3,
		GenderMentions:     models.GenderMentions{Male: 14, Female: 9},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, models.AnalyzeRequest{URL: "https://example.com/red-riding-hood", Label: "Story"}, got)
}

func TestRemoteAnalyzer_MissingFieldsDefaultToZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want models.AnalysisResult
	}{
		{
			name: "empty object",
			body: `{}`,
			want: models.AnalysisResult{},
		},
		{
			name: "null mentions",
			body: `{"gender_balance_score": 5, "gender_mentions": null}`,
			want: models.AnalysisResult{GenderBalanceScore: 5},
		},
		{
			name: "mention counts sent as floats",
			body: `{"gender_mentions": {"male": 5.0, "female": 2.5}}`,
			want: models.AnalysisResult{
				GenderMentions: models.GenderMentions{Male: 5, Female: 2.5},
			},
		},
		{
			name: "partial mentions",
			body: `{"stereotype_penalty": 7, "gender_mentions": {"female": 3}}`,
			want: models.AnalysisResult{
				StereotypePenalty: 7,
				GenderMentions:    models.GenderMentions{Female: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			result, err := NewRemoteAnalyzer(srv.URL, srv.Client()).
				AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *result)
		})
	}
}

func TestRemoteAnalyzer_Failures(t *testing.T) {
	t.Parallel()

	t.Run("not found means the capability is missing", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
			http.NotFound(w, nil)
		})

		_, err := NewRemoteAnalyzer(srv.URL, srv.Client()).
			AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
		require.ErrorIs(t, err, ErrAnalyzerMissing)
	})

	t.Run("service error text is kept verbatim", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusGatewayTimeout)
			_, _ = w.Write([]byte(`{"error": "timeout"}`))
		})

		_, err := NewRemoteAnalyzer(srv.URL, srv.Client()).
			AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
		require.Error(t, err)
		assert.Equal(t, "timeout", err.Error())

		var analysisErr *AnalysisError
		require.True(t, errors.As(err, &analysisErr))
		assert.Equal(t, http.StatusGatewayTimeout, analysisErr.StatusCode)
	})

	t.Run("status text when the body has no error field", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := NewRemoteAnalyzer(srv.URL, srv.Client()).
			AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
		require.Error(t, err)
		assert.Equal(t, "Bad Gateway", err.Error())
	})

	t.Run("malformed result", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`["not", "a", "record"]`))
		})

		_, err := NewRemoteAnalyzer(srv.URL, srv.Client()).
			AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed analysis result")
	})

	t.Run("null result", func(t *testing.T) {
		t.Parallel()

		srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`null`))
		})

		result, err := NewRemoteAnalyzer(srv.URL, srv.Client()).
			AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
		assert.Nil(t, result)
		require.ErrorIs(t, err, errNoResult)
		assert.EqualError(t, err, "malformed analysis result: analyzer returned no result")
	})

	t.Run("client timeout", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := newAnalysisService(t, func(w http.ResponseWriter, _ *http.Request) {
			<-release
		})
		defer close(release)

		client := &http.Client{Timeout: 50 * time.Millisecond}
		_, err := NewRemoteAnalyzer(srv.URL, client).
			AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
		require.Error(t, err)
	})
}

func TestNewAnalyzer_WithoutURL(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer("  ", time.Second)
	result, err := analyzer.AnalyzeFromURL(context.Background(), "https://example.com/story", StoryLabel)
	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrAnalyzerMissing)
	assert.Equal(t, "analyze_book_from_url not found in analysis service", err.Error())
}
