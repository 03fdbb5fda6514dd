package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/model"
)

const diffbotArticleEndpoint = "https://api.diffbot.com/v3/article"

// ArticleClient calls the managed article-extraction service (Diffbot's
// article API). Transient failures are retried a couple of times with a
// fixed delay before the caller falls back to local extraction.
type ArticleClient struct {
	httpClient *http.Client
	token      string
	retries    int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewArticleClient creates an article-service client, or nil when no token
// is configured so callers skip straight to local extraction.
func NewArticleClient(cfg model.ArticleConfig, logger *zap.Logger) *ArticleClient {
	if cfg.Token == "" {
		return nil
	}
	return &ArticleClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		token:      cfg.Token,
		retries:    cfg.Retries,
		retryDelay: cfg.RetryDelay,
		logger:     logger,
	}
}

type diffbotResponse struct {
	Objects []struct {
		Text string `json:"text"`
	} `json:"objects"`
}

// ExtractArticle returns the main article text for the URL
func (c *ArticleClient) ExtractArticle(ctx context.Context, articleURL string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("article service retry",
				zap.Int("attempt", attempt), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		text, err := c.extractOnce(ctx, articleURL)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("article service: %w", lastErr)
}

func (c *ArticleClient) extractOnce(ctx context.Context, articleURL string) (string, error) {
	endpoint := fmt.Sprintf("%s?token=%s&url=%s",
		diffbotArticleEndpoint, url.QueryEscape(c.token), url.QueryEscape(articleURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var decoded diffbotResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Objects) == 0 || decoded.Objects[0].Text == "" {
		return "", fmt.Errorf("no article text in response")
	}
	return decoded.Objects[0].Text, nil
}
