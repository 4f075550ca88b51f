package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiAdapterComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.0-flash:generateContent"), "path %s", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "systemInstruction")
		assert.Contains(t, string(body), "体脂肪を落とす食事例")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "  野菜を先に食べましょう。 "}},
				},
				"finishReason": "STOP",
			}},
		})
	}))
	defer srv.Close()

	a := &GeminiAdapter{
		BaseURL: srv.URL,
		APIKey:  "g-test",
		Model:   GeminiDefaultModel,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}

	got, err := a.Complete(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "野菜を先に食べましょう。", got)
}

func TestGeminiAdapterCompleteWithoutKey(t *testing.T) {
	a := &GeminiAdapter{Model: GeminiDefaultModel}

	_, err := a.Complete(context.Background(), testRequest(t))
	assert.Error(t, err)
	assert.False(t, a.Available())
}

func TestGeminiAdapterName(t *testing.T) {
	a := &GeminiAdapter{Model: GeminiDefaultModel, APIKey: "g-test"}
	assert.Equal(t, "Gemini (gemini-2.0-flash)", a.Name())
	assert.True(t, a.Available())
}
