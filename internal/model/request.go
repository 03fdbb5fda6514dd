package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// InsightRequest is the inbound contract for a report-insights scan.
// Quarter and Year arrive as strings from the UI collaborator; Year keeps the
// two-digit convention ("24" for fiscal 2024).
type InsightRequest struct {
	ReportsPageURL    string            `json:"reportsPageUrl"`
	PreviousReportURL string            `json:"previousReportUrl"`
	Quarter           string            `json:"quarter"`
	Year              string            `json:"year"`
	FearAndGreedIndex *IndexReading     `json:"fearAndGreedIndex,omitempty"`
	AnalystEstimates  *AnalystEstimates `json:"analystEstimates,omitempty"`
}

// IndexReading is a macro sentiment index value with its textual sentiment
type IndexReading struct {
	Value     string `json:"value"`
	Sentiment string `json:"sentiment"`
}

// AnalystEstimates carries consensus figures for the upcoming report
type AnalystEstimates struct {
	EPS     string `json:"eps"`
	Revenue string `json:"revenue"`
}

// MarketSentiment is the market-sentiment collaborator response
type MarketSentiment struct {
	FearAndGreed IndexReading `json:"fearAndGreed"`
	VIX          IndexReading `json:"vix"`
}

// QuarterNumber parses and range-checks the quarter field
func (r *InsightRequest) QuarterNumber() (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(r.Quarter))
	if err != nil || q < 1 || q > 4 {
		return 0, fmt.Errorf("%w: quarter must be 1-4, got %q", ErrInvalidInput, r.Quarter)
	}
	return q, nil
}

// Validate checks the request before any work starts
func (r *InsightRequest) Validate() error {
	if _, err := r.QuarterNumber(); err != nil {
		return err
	}
	year := strings.TrimSpace(r.Year)
	if len(year) != 2 && len(year) != 4 {
		return fmt.Errorf("%w: year must be 2 or 4 digits, got %q", ErrInvalidInput, r.Year)
	}
	if _, err := strconv.Atoi(year); err != nil {
		return fmt.Errorf("%w: year is not numeric: %q", ErrInvalidInput, r.Year)
	}
	for name, raw := range map[string]string{
		"previousReportUrl": r.PreviousReportURL,
		"reportsPageUrl":    r.ReportsPageURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s is not an absolute URL: %q", ErrInvalidInput, name, raw)
		}
	}
	return nil
}

// ShortYear normalizes the year to the two-digit convention
func (r *InsightRequest) ShortYear() string {
	year := strings.TrimSpace(r.Year)
	if len(year) == 4 {
		return year[2:]
	}
	return year
}

// InsightResponse is the success body for a report-insights request
type InsightResponse struct {
	Rating    int      `json:"rating"`
	Positives []string `json:"positives"`
	Negatives []string `json:"negatives"`
	ReportURL string   `json:"reportUrl"`
}
