package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIDefaultModel is used when no model is configured.
const OpenAIDefaultModel = openai.GPT4oMini

// OpenAIAdapter connects to the OpenAI Chat Completions API.
type OpenAIAdapter struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func (o *OpenAIAdapter) Name() string {
	return fmt.Sprintf("OpenAI (%s)", o.Model)
}

func (o *OpenAIAdapter) Complete(ctx context.Context, req Request) (string, error) {
	cfg := openai.DefaultConfig(o.APIKey)
	if o.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(o.BaseURL, "/")
	}
	if o.Client != nil {
		cfg.HTTPClient = o.Client
	}

	out, err := chatCompletion(ctx, openai.NewClientWithConfig(cfg), o.Model, req)
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	return out, nil
}

func (o *OpenAIAdapter) Available() bool {
	return o.APIKey != ""
}

// chatCompletion runs one non-streaming chat completion and returns the
// trimmed content of the first choice.
func chatCompletion(ctx context.Context, client *openai.Client, model string, req Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    chatRole(m.Role),
			Content: m.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: req.Temperature,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", fmt.Errorf("request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty response choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
