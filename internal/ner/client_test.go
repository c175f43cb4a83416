package ner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

func TestRecognize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		assert.Equal(t, "40% carbon reduction", req.Text)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"entities": []Entity{
				{Text: "40%", Label: "PERCENT", Start: 0, End: 3},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(&config.NERConfig{URL: server.URL, Enabled: true, Timeout: "5s"}, logger.Nop())
	require.NoError(t, err)

	entities, err := client.Recognize(context.Background(), "40% carbon reduction")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "PERCENT", entities[0].Label)
	assert.Equal(t, "40%", entities[0].Text)
}

func TestRecognize_Disabled(t *testing.T) {
	client, err := NewClient(&config.NERConfig{Enabled: false, Timeout: "5s"}, logger.Nop())
	require.NoError(t, err)

	entities, err := client.Recognize(context.Background(), "anything")
	require.NoError(t, err)
	assert.Nil(t, entities)
}

func TestRecognize_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(&config.NERConfig{URL: server.URL, Enabled: true, Timeout: "5s"}, logger.Nop())
	require.NoError(t, err)

	_, err = client.Recognize(context.Background(), "text")
	assert.ErrorContains(t, err, "status 500")
}

func TestNewClient_InvalidTimeout(t *testing.T) {
	_, err := NewClient(&config.NERConfig{Timeout: "soon"}, logger.Nop())
	assert.Error(t, err)
}
