package model

import "errors"

// Error taxonomy for the report pipeline. The server layer maps these to
// HTTP statuses; everything else wraps them with fmt.Errorf("...: %w", err).
var (
	// ErrInvalidInput indicates a malformed request (bad URL, out-of-range
	// quarter). Never retried. Maps to 400.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScanTimeout indicates the scan deadline elapsed with no matching
	// report found. Maps to 408 so the caller can decide whether to re-invoke.
	ErrScanTimeout = errors.New("scan deadline exceeded")

	// ErrExtractionFailed indicates the matched document could not be reduced
	// to non-empty text. An empty or whitespace-only extraction is this error,
	// never a valid empty report. Maps to 500.
	ErrExtractionFailed = errors.New("content extraction failed")

	// ErrAnalysisMalformed indicates the analysis response carried no
	// detectable rating. Maps to 500.
	ErrAnalysisMalformed = errors.New("analysis response malformed")

	// ErrUpstreamUnavailable indicates a transient rendering or network
	// failure during a single poll attempt. The scan loop recovers from it
	// locally; it only surfaces if the deadline is hit.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
