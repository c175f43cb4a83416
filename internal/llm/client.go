// Package llm provides the Anthropic-backed language model client used for
// commitment quality rating.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// Client calls the Anthropic Messages API with a single prompt and returns
// the free-form text reply. Callers own prompt construction and response
// parsing; this client is deliberately narrow.
type Client struct {
	client    anthropic.Client
	model     string
	maxTokens int
	timeout   time.Duration
	temp      float64
	log       *logger.Logger
}

// NewClient creates a new language model client.
func NewClient(cfg *config.LLMConfig, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm.api_key is required (set via ANTHROPIC_API_KEY)")
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid llm timeout %q: %w", cfg.Timeout, err)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	log.Debug().
		Str("model", model).
		Dur("timeout", timeout).
		Int("max_tokens", maxTokens).
		Msg("Language model client initialized")

	return &Client{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
		temp:      cfg.Temp,
		log:       log,
	}, nil
}

// Complete sends one prompt and returns the concatenated text blocks of the
// reply.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(c.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if c.temp > 0 {
		params.Temperature = anthropic.Float(c.temp)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("language model call failed: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("language model returned no text content")
	}
	return out.String(), nil
}
