package render

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/model"
)

// ChromeRenderer renders pages through a headless Chrome instance. One
// renderer is opened per scan and navigated repeatedly, so poll iterations
// share a single browser session instead of relaunching per attempt.
type ChromeRenderer struct {
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	allocatorCancel context.CancelFunc
	settleDelay     time.Duration
	logger          *zap.Logger
	closeOnce       sync.Once
}

// NewChromeRenderer launches a headless browser session
func NewChromeRenderer(cfg model.RenderConfig, logger *zap.Logger) (*ChromeRenderer, error) {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("no-sandbox", cfg.NoSandbox),
		chromedp.Flag("disable-setuid-sandbox", cfg.NoSandbox),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-http2", true),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)

	r := &ChromeRenderer{
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		allocatorCancel: allocatorCancel,
		settleDelay:     cfg.SettleDelay,
		logger:          logger,
	}

	// Spin up the browser process now so a broken Chrome install fails the
	// request immediately instead of on the first poll.
	startCtx, cancel := context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()
	if err := chromedp.Run(startCtx, chromedp.Navigate("about:blank")); err != nil {
		r.Close()
		return nil, fmt.Errorf("launch headless browser: %w", err)
	}

	return r, nil
}

// Render navigates to the URL and returns the page HTML after scripts settle
func (r *ChromeRenderer) Render(ctx context.Context, url string, timeout time.Duration) (string, error) {
	navCtx, cancel := context.WithTimeout(r.browserCtx, timeout)
	defer cancel()

	// The browser context tree is independent of the request context, so
	// propagate caller cancellation into the navigation by hand.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(r.settleDelay),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: render %s: %v", model.ErrUpstreamUnavailable, url, err)
	}
	return html, nil
}

// Close tears down the browser session and its allocator
func (r *ChromeRenderer) Close() {
	r.closeOnce.Do(func() {
		r.browserCancel()
		r.allocatorCancel()
		if r.logger != nil {
			r.logger.Debug("rendering session released")
		}
	})
}
