// Package ner provides the HTTP client for the external entity-recognition
// service.
package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

// Entity is a single recognized span. Offsets are byte positions into the
// submitted text.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"` // PERCENT, QUANTITY, CARDINAL, ...
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Client calls the entity-recognition service.
type Client struct {
	url     string
	enabled bool
	timeout time.Duration
	log     *logger.Logger
}

// NewClient creates a new entity-recognition client.
func NewClient(cfg *config.NERConfig, log *logger.Logger) (*Client, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid ner timeout %q: %w", cfg.Timeout, err)
	}
	return &Client{
		url:     cfg.URL,
		enabled: cfg.Enabled,
		timeout: timeout,
		log:     log,
	}, nil
}

type recognizeRequest struct {
	Text string `json:"text"`
}

type recognizeResponse struct {
	Entities []Entity `json:"entities"`
}

// Recognize submits text and returns the recognized entities. When the
// service is disabled it returns an empty result so callers can skip the
// entity pass without special-casing.
func (c *Client) Recognize(ctx context.Context, text string) ([]Entity, error) {
	if !c.enabled {
		c.log.Debug().Msg("Entity recognition is disabled, skipping")
		return nil, nil
	}

	payload, err := json.Marshal(recognizeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recognize request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call entity recognition service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("entity recognition service returned status %d", resp.StatusCode)
	}

	var parsed recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode recognize response: %w", err)
	}

	c.log.Debug().
		Int("entities", len(parsed.Entities)).
		Msg("Entity recognition completed")

	return parsed.Entities, nil
}
