package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClaude(url string) *ClaudeAdapter {
	return &ClaudeAdapter{
		BaseURL: url,
		APIKey:  "sk-test",
		Model:   "claude-sonnet-4-5-20250929",
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestClaudeAdapterComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var req claudeMessagesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}

		assert.Equal(t, "claude-sonnet-4-5-20250929", req.Model)
		assert.Equal(t, "あなたは栄養学エキスパートです。", req.System)
		assert.Equal(t, 4096, req.MaxTokens)
		assert.InDelta(t, 0.4, req.Temperature, 1e-6)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claudeMessagesResponse{
			Content: []claudeContentBlock{{Type: "text", Text: "  1日1800kcalを目安に。  "}},
		})
	}))
	defer srv.Close()

	got, err := newClaude(srv.URL).Complete(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "1日1800kcalを目安に。", got)
}

func TestClaudeAdapterCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "invalid_request_error", "message": "bad request"},
		})
	}))
	defer srv.Close()

	_, err := newClaude(srv.URL).Complete(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad request")
}

func TestClaudeAdapterCompleteEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(claudeMessagesResponse{Content: []claudeContentBlock{}})
	}))
	defer srv.Close()

	_, err := newClaude(srv.URL).Complete(context.Background(), testRequest(t))
	assert.Error(t, err)
}

func TestClaudeAdapterAvailable(t *testing.T) {
	assert.True(t, (&ClaudeAdapter{APIKey: "sk-test"}).Available())
	assert.False(t, (&ClaudeAdapter{}).Available())
	assert.Equal(t, "Claude (claude-sonnet-4-5-20250929)", (&ClaudeAdapter{Model: "claude-sonnet-4-5-20250929"}).Name())
}
