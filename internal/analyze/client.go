package analyze

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/earnscan/earnscan/internal/model"
)

// Client wraps the external text-completion call. The model is a black box
// here: it takes a system/user prompt pair and returns either strict JSON
// or semi-structured text for the parser to decode.
type Client struct {
	api     *openai.Client
	model   string
	temp    float32
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient creates an analysis client
func NewClient(cfg model.LLMConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("analysis API key is required")
	}
	return &Client{
		api:     openai.NewClient(cfg.APIKey),
		model:   cfg.Model,
		temp:    cfg.Temperature,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// Analyze sends the report prompt and returns the typed analysis result
func (c *Client) Analyze(ctx context.Context, reportText string, fgi *model.IndexReading, estimates *model.AnalystEstimates) (*model.AnalysisResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: UserPrompt(reportText, fgi, estimates)},
		},
		Temperature: c.temp,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: completion call: %v", model.ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("%w: empty completion response", model.ErrAnalysisMalformed)
	}

	raw := resp.Choices[0].Message.Content
	c.logger.Debug("analysis response received",
		zap.String("model", c.model), zap.Int("bytes", len(raw)))

	return Parse(raw)
}
