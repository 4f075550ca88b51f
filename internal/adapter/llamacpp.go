package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// LlamaCppAdapter connects to llama-server's OpenAI-compatible /v1/chat/completions.
type LlamaCppAdapter struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func (l *LlamaCppAdapter) Name() string {
	return fmt.Sprintf("llama.cpp (%s)", l.Model)
}

func (l *LlamaCppAdapter) Complete(ctx context.Context, req Request) (string, error) {
	cfg := openai.DefaultConfig("")
	cfg.BaseURL = strings.TrimRight(l.BaseURL, "/") + "/v1"
	if l.Client != nil {
		cfg.HTTPClient = l.Client
	}

	out, err := chatCompletion(ctx, openai.NewClientWithConfig(cfg), l.Model, req)
	if err != nil {
		return "", fmt.Errorf("llamacpp: %w", err)
	}
	return out, nil
}

func (l *LlamaCppAdapter) Available() bool {
	return probe(l.Client, strings.TrimRight(l.BaseURL, "/")+"/health")
}

// probe reports whether GET url answers 200 within two seconds.
func probe(client *http.Client, url string) bool {
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
