package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/model"
)

func TestRespondPipelineError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := &Server{logger: zap.NewNop()}

	tests := []struct {
		desc     string
		err      error
		expected int
	}{
		{"invalid input", fmt.Errorf("predict: %w", model.ErrInvalidInput), http.StatusBadRequest},
		{"scan timeout", fmt.Errorf("scan for report: %w", model.ErrScanTimeout), http.StatusRequestTimeout},
		{"extraction failed", fmt.Errorf("extract report: %w", model.ErrExtractionFailed), http.StatusInternalServerError},
		{"analysis malformed", fmt.Errorf("analyze report: %w", model.ErrAnalysisMalformed), http.StatusInternalServerError},
		{"unknown error", fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			s.respondPipelineError(c, tt.err)
			if rec.Code != tt.expected {
				t.Errorf("status = %d, want %d", rec.Code, tt.expected)
			}
		})
	}
}

func TestHandleReportInsights_RejectsBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := &Server{logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/report-insights", nil)

	s.handleReportInsights(c)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
