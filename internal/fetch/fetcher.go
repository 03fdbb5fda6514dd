package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/earnscan/earnscan/internal/model"
)

// Fetcher performs direct (non-rendered) HTTP fetches with a per-domain
// rate limit and a response size cap.
type Fetcher struct {
	httpClient *http.Client
	limiter    *Limiter
	robots     *RobotsChecker
	userAgent  string
	maxBytes   int64
}

// Result contains the fetched body and response metadata
type Result struct {
	Body        []byte
	StatusCode  int
	ContentType string
	FinalURL    string
}

// NewFetcher creates a Fetcher from the HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		limiter:   NewLimiter(cfg.RatePerSecond, cfg.RateBurst),
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
	if cfg.RespectRobots {
		f.robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return f
}

// Get retrieves the URL's body. Non-2xx statuses are returned in the Result
// with a nil error so pollers can distinguish "not published yet" (404) from
// transport failures.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Result, error) {
	if err := f.limiter.Wait(ctx, rawURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}
	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("%w: disallowed by robots.txt: %s", model.ErrUpstreamUnavailable, rawURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Result{
		Body:        body,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}
