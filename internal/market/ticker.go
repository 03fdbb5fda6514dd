package market

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/earnscan/earnscan/internal/cache"
)

const tickerSearchURL = "https://query1.finance.yahoo.com/v1/finance/search?q=%s"

// preferredExchanges orders US exchanges by preference when a company name
// resolves to multiple listings.
var preferredExchanges = []string{"NMS", "NASDAQ", "NYQ", "NYSE", "ASE", "ARCA"}

// corporateSuffixes are stripped from company names before the search so
// "Example Corp." and "Example" resolve to the same ticker.
var corporateSuffixes = []string{
	"inc", "corp", "co", "ltd", "llc", "plc", "group", "company", "corporation", "holdings",
}

var nonAlpha = regexp.MustCompile(`[^a-z]`)

// ErrTickerNotFound indicates no equity listing matched the company name
var ErrTickerNotFound = fmt.Errorf("ticker not found")

type tickerSearchResponse struct {
	Quotes []struct {
		Symbol    string `json:"symbol"`
		Exchange  string `json:"exchange"`
		QuoteType string `json:"quoteType"`
	} `json:"quotes"`
}

// LookupTicker resolves a company name to its primary equity ticker
func (c *Client) LookupTicker(ctx context.Context, companyName string) (string, error) {
	cleaned := CleanCompanyName(companyName)
	if cleaned == "" {
		return "", fmt.Errorf("empty company name after cleanup: %q", companyName)
	}

	cacheID := "ticker:" + cleaned
	if c.cache != nil {
		if data, found := c.cache.Get(cache.Key(cacheID)); found {
			return string(data), nil
		}
	}

	var decoded tickerSearchResponse
	searchURL := fmt.Sprintf(tickerSearchURL, url.QueryEscape(cleaned))
	if err := c.getJSON(ctx, searchURL, &decoded); err != nil {
		return "", fmt.Errorf("ticker search: %w", err)
	}

	var equities []string
	byExchange := make(map[string]string)
	for _, q := range decoded.Quotes {
		if q.QuoteType != "EQUITY" {
			continue
		}
		equities = append(equities, q.Symbol)
		if _, ok := byExchange[q.Exchange]; !ok {
			byExchange[q.Exchange] = q.Symbol
		}
	}
	if len(equities) == 0 {
		return "", ErrTickerNotFound
	}

	symbol := equities[0]
	for _, exchange := range preferredExchanges {
		if s, ok := byExchange[exchange]; ok {
			symbol = s
			break
		}
	}

	if c.cache != nil {
		_ = c.cache.Set(cache.Key(cacheID), []byte(symbol), c.ttl)
	}
	return symbol, nil
}

// CleanCompanyName lowercases a company name and strips corporate suffixes
// and non-letter characters.
func CleanCompanyName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	for _, suffix := range corporateSuffixes {
		name = strings.TrimSpace(strings.TrimSuffix(name, suffix))
	}
	return nonAlpha.ReplaceAllString(name, "")
}
