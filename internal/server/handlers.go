package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/market"
	"github.com/earnscan/earnscan/internal/model"
)

// handleReportInsights runs the full scan-extract-analyze pipeline for one
// request. The error taxonomy maps onto statuses: 400 for bad input, 408
// when the scan deadline elapses (retryable by re-invoking), 500 when the
// report was found but could not be processed.
func (s *Server) handleReportInsights(c *gin.Context) {
	var req model.InsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := s.pipeline.FetchInsights(c.Request.Context(), &req)
	if err != nil {
		s.respondPipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// respondPipelineError translates pipeline failures into the response
// contract, distinguishing "not found yet" from "found but unprocessable".
func (s *Server) respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrScanTimeout):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "Maximum scanning time reached. Report not found."})
	case errors.Is(err, model.ErrExtractionFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract report text"})
	case errors.Is(err, model.ErrAnalysisMalformed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI analysis failed"})
	default:
		s.logger.Error("report insights failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// handleValidateReportURL is the pre-check the UI calls before scanning
func (s *Server) handleValidateReportURL(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid URL parameter"})
		return
	}
	if u, err := url.Parse(rawURL); err != nil || u.Scheme == "" || u.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false})
		return
	}

	if !s.checker.Valid(c.Request.Context(), rawURL) {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// handleMarketSentiment serves the FGI/VIX context consumed by the UI
func (s *Server) handleMarketSentiment(c *gin.Context) {
	sentiment, err := s.market.Sentiment(c.Request.Context())
	if err != nil {
		s.logger.Error("market sentiment fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch market data"})
		return
	}
	c.JSON(http.StatusOK, sentiment)
}

// handleLookupTicker resolves a company name to its equity ticker
func (s *Server) handleLookupTicker(c *gin.Context) {
	company := c.Query("company")
	if company == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid company name"})
		return
	}

	ticker, err := s.market.LookupTicker(c.Request.Context(), company)
	if err != nil {
		if errors.Is(err, market.ErrTickerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticker not found"})
			return
		}
		s.logger.Error("ticker lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to lookup ticker"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticker": ticker})
}
