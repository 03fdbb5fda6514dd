package extract

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/fetch"
	"github.com/earnscan/earnscan/internal/model"
	"github.com/earnscan/earnscan/internal/render"
	"github.com/earnscan/earnscan/internal/validate"
)

// pdfContentTypes are the content types treated as PDF regardless of the
// URL extension. IR sites frequently serve PDFs as octet-stream.
var pdfContentTypes = []string{"application/pdf", "application/octet-stream"}

// Extractor dispatches a matched report URL to the extraction strategy its
// format requires and returns normalized plain text.
type Extractor struct {
	fetcher  *fetch.Fetcher
	renderer render.PageRenderer
	article  *ArticleClient
	logger   *zap.Logger
}

// NewExtractor creates a content extractor. The renderer is the scan's
// session, reused for ASPX pages; article may be nil when no article-service
// token is configured, in which case local extraction is used directly.
func NewExtractor(fetcher *fetch.Fetcher, renderer render.PageRenderer, article *ArticleClient, logger *zap.Logger) *Extractor {
	return &Extractor{
		fetcher:  fetcher,
		renderer: renderer,
		article:  article,
		logger:   logger,
	}
}

// Extract pulls normalized text from the report document. Dispatch order:
// PDF by extension or content type, then script-rendered ASPX pages, then
// plain HTML articles. Every failure path, including an empty result,
// returns ErrExtractionFailed; an empty report is never a success.
func (e *Extractor) Extract(ctx context.Context, reportURL string) (*model.ExtractedDocument, error) {
	parsed, err := url.Parse(reportURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse report url: %v", model.ErrExtractionFailed, err)
	}
	path := strings.ToLower(parsed.Path)

	switch {
	case strings.HasSuffix(path, ".pdf"):
		return e.extractPDF(ctx, reportURL)
	case strings.Contains(path, ".aspx"):
		return e.extractASPX(ctx, reportURL)
	default:
		return e.extractArticle(ctx, reportURL)
	}
}

// extractPDF fetches and binary-parses a PDF. A corrupt or unparseable PDF
// is a hard failure for the document; there is no fallback strategy.
func (e *Extractor) extractPDF(ctx context.Context, reportURL string) (*model.ExtractedDocument, error) {
	res, err := e.fetcher.Get(ctx, reportURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch pdf: %v", model.ErrExtractionFailed, err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("%w: fetch pdf: status %d", model.ErrExtractionFailed, res.StatusCode)
	}

	text, err := pdfText(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse pdf: %v", model.ErrExtractionFailed, err)
	}
	return e.document(text, model.FormatPDF)
}

// extractASPX renders the page so scripts can materialize the content, then
// runs a readability pass over the result.
func (e *Extractor) extractASPX(ctx context.Context, reportURL string) (*model.ExtractedDocument, error) {
	html, err := e.renderer.Render(ctx, reportURL, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%w: render aspx: %v", model.ErrExtractionFailed, err)
	}

	text, err := ArticleText(html)
	if err != nil {
		return nil, fmt.Errorf("%w: readability pass: %v", model.ErrExtractionFailed, err)
	}
	return e.document(text, model.FormatASPX)
}

// extractArticle prefers the managed article service and always falls back
// to local readability extraction over the raw HTML when the service fails
// or returns nothing.
func (e *Extractor) extractArticle(ctx context.Context, reportURL string) (*model.ExtractedDocument, error) {
	if e.article != nil {
		text, err := e.article.ExtractArticle(ctx, reportURL)
		if err == nil && strings.TrimSpace(text) != "" {
			// Service output is already normalized.
			return &model.ExtractedDocument{Text: text, SourceFormat: model.FormatArticle}, nil
		}
		if err != nil {
			e.logger.Warn("article service failed, falling back to local extraction",
				zap.String("url", reportURL), zap.Error(err))
		}
	}

	res, err := e.fetcher.Get(ctx, reportURL)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch article: %v", model.ErrExtractionFailed, err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("%w: fetch article: status %d", model.ErrExtractionFailed, res.StatusCode)
	}

	text, err := ArticleText(string(res.Body))
	if err != nil {
		return nil, fmt.Errorf("%w: local extraction: %v", model.ErrExtractionFailed, err)
	}
	return e.document(text, model.FormatArticle)
}

// document normalizes whitespace and enforces the non-empty invariant
func (e *Extractor) document(text string, format model.SourceFormat) (*model.ExtractedDocument, error) {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil, fmt.Errorf("%w: %s document yielded no text", model.ErrExtractionFailed, format)
	}
	return &model.ExtractedDocument{Text: normalized, SourceFormat: format}, nil
}

// IsPDFResponse reports whether a fetched response should be treated as PDF
func IsPDFResponse(contentType, rawURL string) bool {
	for _, ct := range pdfContentTypes {
		if strings.HasPrefix(contentType, ct) {
			return true
		}
	}
	return strings.HasSuffix(strings.ToLower(rawURL), ".pdf")
}

// IsEarningsReport fetches the URL and reports whether it already serves
// earnings-report content. Used to probe the predicted URL directly before
// each listing scan; any failure simply means "not available yet".
func IsEarningsReport(ctx context.Context, fetcher *fetch.Fetcher, rawURL string) bool {
	if _, err := url.Parse(rawURL); err != nil {
		return false
	}
	res, err := fetcher.Get(ctx, rawURL)
	if err != nil || res.StatusCode != 200 {
		return false
	}

	var content string
	if IsPDFResponse(res.ContentType, rawURL) {
		text, err := pdfText(res.Body)
		if err != nil {
			return false
		}
		content = text
	} else {
		content = validate.HTMLText(string(res.Body))
	}
	return validate.ContainsFinancialTerms(content)
}
