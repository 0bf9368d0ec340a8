package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/services/analysis"
)

func TestAnalyzeHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		analyzer   *mockAnalyzer
		wantStatus int
		wantSymbol string
		wantError  bool
	}{
		{
			name:       "scores",
			url:        "/api/analyze?ticker=HLTH",
			analyzer:   &mockAnalyzer{},
			wantStatus: http.StatusOK,
			wantSymbol: "HLTH",
		},
		{
			name: "failed analysis is still ok",
			url:  "/api/analyze?ticker=NOPE",
			analyzer: &mockAnalyzer{analyzeFunc: func(ctx context.Context, query string) *analysis.Report {
				return failedReport(query)
			}},
			wantStatus: http.StatusOK,
			wantSymbol: "NOPE",
			wantError:  true,
		},
		{
			name:       "missing ticker",
			url:        "/api/analyze",
			analyzer:   &mockAnalyzer{},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAnalysisHandler(tt.analyzer, arbor.NewLogger())
			rr := httptest.NewRecorder()
			handler.AnalyzeHandler(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var report analysis.Report
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
			assert.Equal(t, tt.wantSymbol, report.Symbol)
			if tt.wantError {
				assert.NotEmpty(t, report.Error)
				assert.Nil(t, report.Scores)
				assert.Equal(t, analysis.TroubleshootingHints, report.Hints)
			} else {
				require.NotNil(t, report.Scores)
				require.NotNil(t, report.Scores.ZScore.Score)
				assert.InDelta(t, 4.2, *report.Scores.ZScore.Score, 1e-9)
			}
		})
	}
}

func TestBatchHandler(t *testing.T) {
	handler := NewAnalysisHandler(&mockAnalyzer{}, arbor.NewLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze/batch", strings.NewReader(`{"tickers":["AAA","BBB"]}`))
	rr := httptest.NewRecorder()
	handler.BatchHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Count   int                `json:"count"`
		Reports []*analysis.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Reports, 2)
	assert.Equal(t, "AAA", body.Reports[0].Symbol)
	assert.Equal(t, "BBB", body.Reports[1].Symbol)
}

func TestBatchHandler_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		body     string
		analyzer *mockAnalyzer
		want     int
	}{
		{name: "wrong method", method: http.MethodGet, body: "", analyzer: &mockAnalyzer{}, want: http.StatusMethodNotAllowed},
		{name: "malformed json", method: http.MethodPost, body: "{", analyzer: &mockAnalyzer{}, want: http.StatusBadRequest},
		{
			name:   "validation error",
			method: http.MethodPost,
			body:   `{"tickers":[]}`,
			analyzer: &mockAnalyzer{batchFunc: func(ctx context.Context, tickers []string) ([]*analysis.Report, error) {
				return nil, errors.New("at least one ticker is required")
			}},
			want: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAnalysisHandler(tt.analyzer, arbor.NewLogger())
			rr := httptest.NewRecorder()
			handler.BatchHandler(rr, httptest.NewRequest(tt.method, "/api/analyze/batch", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestReportHandler(t *testing.T) {
	handler := NewAnalysisHandler(&mockAnalyzer{}, arbor.NewLogger())

	t.Run("markdown", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ReportHandler(rr, httptest.NewRequest(http.MethodGet, "/api/report?ticker=HLTH&format=markdown", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/markdown")
		assert.Contains(t, rr.Body.String(), "# Healthy Co (HLTH)")
	})

	t.Run("html by default", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ReportHandler(rr, httptest.NewRequest(http.MethodGet, "/api/report?ticker=HLTH", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), "<table>")
	})

	t.Run("unknown format", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ReportHandler(rr, httptest.NewRequest(http.MethodGet, "/api/report?ticker=HLTH&format=pdf", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
