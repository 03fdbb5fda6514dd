package validate

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/fetch"
	"github.com/earnscan/earnscan/internal/render"
)

// minPlausibleBody is the floor below which a response is treated as an
// error page or placeholder rather than a real report.
const minPlausibleBody = 200

// Checker performs the URL-validity pre-check the UI collaborator calls
// before kicking off a full scan. PDFs and plain pages are checked with a
// raw GET; ASPX pages need script execution, so they go through a
// short-lived rendering session.
type Checker struct {
	fetcher     *fetch.Fetcher
	newRenderer func() (render.PageRenderer, error)
	logger      *zap.Logger
}

// NewChecker creates a URL validity checker
func NewChecker(fetcher *fetch.Fetcher, newRenderer func() (render.PageRenderer, error), logger *zap.Logger) *Checker {
	return &Checker{
		fetcher:     fetcher,
		newRenderer: newRenderer,
		logger:      logger,
	}
}

// Valid reports whether the URL serves plausible report content
func (c *Checker) Valid(ctx context.Context, rawURL string) bool {
	lower := strings.ToLower(rawURL)

	if strings.Contains(lower, ".aspx") {
		renderer, err := c.newRenderer()
		if err != nil {
			c.logger.Warn("renderer unavailable for validity check", zap.Error(err))
			return false
		}
		defer renderer.Close()

		html, err := renderer.Render(ctx, rawURL, 10*time.Second)
		if err != nil {
			return false
		}
		return len(html) >= minPlausibleBody
	}

	res, err := c.fetcher.Get(ctx, rawURL)
	if err != nil || res.StatusCode != 200 {
		return false
	}
	return len(res.Body) >= minPlausibleBody
}
