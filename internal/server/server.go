package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/cache"
	"github.com/earnscan/earnscan/internal/market"
	"github.com/earnscan/earnscan/internal/model"
	"github.com/earnscan/earnscan/internal/pipeline"
	"github.com/earnscan/earnscan/internal/validate"
)

// Server exposes the report pipeline and its collaborator endpoints over
// HTTP. The core is stateless between requests; all per-scan state lives in
// the request's pipeline invocation.
type Server struct {
	pipeline *pipeline.Pipeline
	market   *market.Client
	checker  *validate.Checker
	cfg      model.ServerConfig
	logger   *zap.Logger
	http     *http.Server
}

// New creates the HTTP server
func New(cfg *model.Config, p *pipeline.Pipeline, logger *zap.Logger) *Server {
	var cacheStore cache.Cache
	if cfg.Cache.Enabled {
		cacheStore = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}

	s := &Server{
		pipeline: p,
		market:   market.NewClient(cfg.HTTP, cacheStore, cfg.Cache.TTL, logger),
		checker:  validate.NewChecker(p.Fetcher(), p.NewRenderer, logger),
		cfg:      cfg.Server,
		logger:   logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method Not Allowed"})
	})

	router.POST("/report-insights", s.handleReportInsights)
	router.GET("/validate-report-url", s.handleValidateReportURL)
	router.GET("/market-sentiment", s.handleMarketSentiment)
	router.GET("/lookup-ticker", s.handleLookupTicker)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s.http = &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}
	return s
}

// Run serves until the context is cancelled, then drains gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// requestLogger logs one line per request
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
