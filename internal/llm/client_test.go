package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.LLMConfig{Timeout: "30s"}, logger.Nop())
	assert.ErrorContains(t, err, "api_key")
}

func TestNewClient_InvalidTimeout(t *testing.T) {
	_, err := NewClient(&config.LLMConfig{APIKey: "key", Timeout: "later"}, logger.Nop())
	assert.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(&config.LLMConfig{APIKey: "key", Timeout: "30s"}, logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, client)
}
