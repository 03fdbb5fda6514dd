package scan

import (
	"context"
	"fmt"
	"sort"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/extract"
	"github.com/earnscan/earnscan/internal/fetch"
	"github.com/earnscan/earnscan/internal/model"
	"github.com/earnscan/earnscan/internal/predict"
	"github.com/earnscan/earnscan/internal/render"
)

// Candidate is a harvested link with its fuzzy similarity to the predicted
// URL. Candidates are recomputed on every attempt since listing pages change
// between polls.
type Candidate struct {
	URL   string
	Score int
}

// Request describes one scan: where to look, what period to look for, and
// the URL the new report is predicted to live at.
type Request struct {
	PredictedURL string
	ListingURL   string
	Quarter      int
	Year         string // two-digit
}

// Scanner polls a reports listing page until a link matching the predicted
// report URL appears or the hard deadline elapses. The loop runs on a
// two-speed schedule: short intervals inside the fast window right after
// market close, long intervals afterwards.
type Scanner struct {
	renderer render.PageRenderer
	fetcher  *fetch.Fetcher
	cfg      model.ScanConfig
	logger   *zap.Logger
}

// NewScanner creates a scanner bound to one rendering session. The session
// is owned by the caller and reused across poll iterations; the scanner
// never closes it.
func NewScanner(renderer render.PageRenderer, fetcher *fetch.Fetcher, cfg model.ScanConfig, logger *zap.Logger) *Scanner {
	return &Scanner{
		renderer: renderer,
		fetcher:  fetcher,
		cfg:      cfg,
		logger:   logger,
	}
}

// Scan runs the poll loop and returns the matched report URL.
// Returns ErrScanTimeout once the deadline passes with no match, or the
// context error if the caller cancels. A failed page render is a failed
// attempt, not a fatal error.
func (s *Scanner) Scan(ctx context.Context, req Request) (string, error) {
	start := time.Now()
	deadline := start.Add(s.cfg.MaxScanTime)
	attempt := 0

	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		attempt++

		if s.cfg.ProbePredicted && s.fetcher != nil {
			if extract.IsEarningsReport(ctx, s.fetcher, req.PredictedURL) {
				s.logger.Info("predicted url is live",
					zap.String("url", req.PredictedURL),
					zap.Duration("elapsed", time.Since(start)))
				return req.PredictedURL, nil
			}
		}

		match, err := s.attempt(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			s.logger.Warn("scan attempt failed",
				zap.Int("attempt", attempt), zap.Error(err))
		} else if match != "" {
			s.logger.Info("matching report found",
				zap.String("url", match),
				zap.Int("attempt", attempt),
				zap.Duration("elapsed", time.Since(start)))
			return match, nil
		}

		interval := s.cfg.SlowInterval
		if time.Since(start) < s.cfg.FastWindow {
			interval = s.cfg.FastInterval
		}
		if err := sleep(ctx, interval); err != nil {
			return "", err
		}
	}

	s.logger.Warn("scan deadline reached",
		zap.String("listing", req.ListingURL),
		zap.Int("attempts", attempt))
	return "", model.ErrScanTimeout
}

// attempt renders the listing page once, harvests and ranks its links, and
// returns the first acceptable candidate, or "" when none qualifies.
func (s *Scanner) attempt(ctx context.Context, req Request) (string, error) {
	html, err := s.renderer.Render(ctx, req.ListingURL, s.cfg.NavTimeout)
	if err != nil {
		return "", fmt.Errorf("render listing: %w", err)
	}

	links, err := extract.HarvestLinks(html, req.ListingURL, req.PredictedURL)
	if err != nil {
		return "", fmt.Errorf("harvest links: %w", err)
	}

	candidates := s.rank(req.PredictedURL, links)
	for _, cand := range candidates {
		if s.accept(cand, req) {
			return cand.URL, nil
		}
	}
	return "", nil
}

// rank scores every link against the predicted URL with token-set
// similarity and keeps the top candidates, best first.
func (s *Scanner) rank(predictedURL string, links []string) []Candidate {
	candidates := make([]Candidate, 0, len(links))
	for _, link := range links {
		candidates = append(candidates, Candidate{
			URL:   link,
			Score: fuzzy.TokenSetRatio(predictedURL, link),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > s.cfg.TopCandidates {
		candidates = candidates[:s.cfg.TopCandidates]
	}
	return candidates
}

// accept applies the acceptance gate: a high similarity score together with
// both period predicates, or a fused quarter+year token which is a strong
// enough signal to bypass the similarity gate entirely.
func (s *Scanner) accept(cand Candidate, req Request) bool {
	if cand.Score > s.cfg.MinScore &&
		predict.HasQuarter(cand.URL, req.Quarter) &&
		predict.HasYear(cand.URL, req.Year) {
		return true
	}
	return predict.HasQuarterYearCombo(cand.URL, req.Quarter, req.Year)
}

// sleep waits for the interval or until the context is cancelled
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
