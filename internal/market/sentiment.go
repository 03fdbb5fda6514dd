package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/cache"
	"github.com/earnscan/earnscan/internal/model"
)

const (
	fearGreedURL = "https://production.dataviz.cnn.io/index/fearandgreed/graphdata"
	vixChartURL  = "https://query1.finance.yahoo.com/v8/finance/chart/%5EVIX"
)

// Client fetches the macro market-sentiment context (Fear & Greed index and
// VIX) consumed by the analysis prompt. Responses are cached for a short
// TTL since the indices move slowly relative to scan frequency.
type Client struct {
	httpClient *http.Client
	userAgent  string
	cache      cache.Cache
	ttl        time.Duration
	logger     *zap.Logger
}

// NewClient creates a market data client. cache may be nil to disable caching.
func NewClient(httpCfg model.HTTPConfig, cacheStore cache.Cache, ttl time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: httpCfg.Timeout},
		userAgent:  httpCfg.UserAgent,
		cache:      cacheStore,
		ttl:        ttl,
		logger:     logger,
	}
}

type fearGreedResponse struct {
	FearAndGreed struct {
		Score  float64 `json:"score"`
		Rating string  `json:"rating"`
	} `json:"fear_and_greed"`
}

type vixChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// Sentiment returns the current Fear & Greed and VIX readings
func (c *Client) Sentiment(ctx context.Context) (*model.MarketSentiment, error) {
	const cacheID = "market-sentiment"

	if c.cache != nil {
		if data, found := c.cache.Get(cache.Key(cacheID)); found {
			var cached model.MarketSentiment
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var fgi fearGreedResponse
	if err := c.getJSON(ctx, fearGreedURL, &fgi); err != nil {
		return nil, fmt.Errorf("fetch fear and greed: %w", err)
	}

	var vix vixChartResponse
	if err := c.getJSON(ctx, vixChartURL, &vix); err != nil {
		return nil, fmt.Errorf("fetch vix: %w", err)
	}
	if len(vix.Chart.Result) == 0 {
		return nil, fmt.Errorf("vix chart response has no result")
	}
	vixValue := vix.Chart.Result[0].Meta.RegularMarketPrice

	sentiment := &model.MarketSentiment{
		FearAndGreed: model.IndexReading{
			Value:     strconv.FormatFloat(fgi.FearAndGreed.Score, 'f', 1, 64),
			Sentiment: fgi.FearAndGreed.Rating,
		},
		VIX: model.IndexReading{
			Value:     strconv.FormatFloat(vixValue, 'f', 1, 64),
			Sentiment: VIXSentiment(vixValue),
		},
	}

	if c.cache != nil {
		if data, err := json.Marshal(sentiment); err == nil {
			_ = c.cache.Set(cache.Key(cacheID), data, c.ttl)
		}
	}
	return sentiment, nil
}

// VIXSentiment maps a VIX level to its textual volatility band
func VIXSentiment(vix float64) string {
	switch {
	case vix < 12:
		return "extreme low volatility"
	case vix < 20:
		return "low volatility"
	case vix < 30:
		return "normal volatility"
	case vix < 40:
		return "high volatility"
	default:
		return "extreme volatility"
	}
}

// getJSON fetches a URL and decodes its JSON body
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
