package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/analyze"
	"github.com/earnscan/earnscan/internal/extract"
	"github.com/earnscan/earnscan/internal/fetch"
	"github.com/earnscan/earnscan/internal/model"
	"github.com/earnscan/earnscan/internal/predict"
	"github.com/earnscan/earnscan/internal/render"
	"github.com/earnscan/earnscan/internal/scan"
)

// Pipeline orchestrates one report-insights request: predict the new
// report's URL, scan the listing page until it appears, extract its text,
// and run the external analysis. Each request owns exactly one rendering
// session for its whole lifetime; the session is released on every exit
// path.
type Pipeline struct {
	cfg         *model.Config
	fetcher     *fetch.Fetcher
	analyzer    *analyze.Client
	article     *extract.ArticleClient
	newRenderer func() (render.PageRenderer, error)
	logger      *zap.Logger
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) (*Pipeline, error) {
	analyzer, err := analyze.NewClient(cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("init analysis client: %w", err)
	}

	return &Pipeline{
		cfg:      cfg,
		fetcher:  fetch.NewFetcher(cfg.HTTP),
		analyzer: analyzer,
		article:  extract.NewArticleClient(cfg.Article, logger),
		newRenderer: func() (render.PageRenderer, error) {
			return render.NewChromeRenderer(cfg.Render, logger)
		},
		logger: logger,
	}, nil
}

// NewRenderer exposes the renderer factory for collaborators that need a
// short-lived session, like the URL validity pre-check.
func (p *Pipeline) NewRenderer() (render.PageRenderer, error) {
	return p.newRenderer()
}

// Fetcher exposes the shared rate-limited fetcher
func (p *Pipeline) Fetcher() *fetch.Fetcher {
	return p.fetcher
}

// FetchInsights runs the full happy path for one request. The request must
// already be validated. Errors wrap the model error taxonomy so the server
// layer can map them to statuses.
func (p *Pipeline) FetchInsights(ctx context.Context, req *model.InsightRequest) (*model.InsightResponse, error) {
	quarter, err := req.QuarterNumber()
	if err != nil {
		return nil, err
	}
	year := req.ShortYear()

	predictedURL, err := predict.NextQuarterURL(req.PreviousReportURL, quarter, year)
	if err != nil {
		return nil, fmt.Errorf("%w: predict next url: %v", model.ErrInvalidInput, err)
	}
	p.logger.Info("predicted report url",
		zap.String("predicted", predictedURL),
		zap.Int("quarter", quarter),
		zap.String("year", year))

	renderer, err := p.newRenderer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer renderer.Close()

	scanner := scan.NewScanner(renderer, p.fetcher, p.cfg.Scan, p.logger)
	reportURL, err := scanner.Scan(ctx, scan.Request{
		PredictedURL: predictedURL,
		ListingURL:   req.ReportsPageURL,
		Quarter:      quarter,
		Year:         year,
	})
	if err != nil {
		return nil, fmt.Errorf("scan for report: %w", err)
	}

	extractor := extract.NewExtractor(p.fetcher, renderer, p.article, p.logger)
	doc, err := extractor.Extract(ctx, reportURL)
	if err != nil {
		return nil, fmt.Errorf("extract report: %w", err)
	}
	p.logger.Info("report content extracted",
		zap.String("url", reportURL),
		zap.String("format", string(doc.SourceFormat)),
		zap.Int("chars", len(doc.Text)))

	result, err := p.analyzer.Analyze(ctx, doc.Text, req.FearAndGreedIndex, req.AnalystEstimates)
	if err != nil {
		return nil, fmt.Errorf("analyze report: %w", err)
	}

	return &model.InsightResponse{
		Rating:    result.Rating,
		Positives: result.Positives,
		Negatives: result.Negatives,
		ReportURL: reportURL,
	}, nil
}
