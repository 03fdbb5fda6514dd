package render

import (
	"context"
	"time"
)

// PageRenderer loads a URL in a rendering environment capable of executing
// scripts and returns the materialized HTML. The scan loop depends only on
// this interface so its control logic is testable with canned snapshots.
type PageRenderer interface {
	// Render navigates to the URL and returns the page HTML. The navigation
	// is bounded by timeout and aborts early when ctx is cancelled.
	Render(ctx context.Context, url string, timeout time.Duration) (string, error)

	// Close releases the rendering session. Safe to call more than once.
	Close()
}
