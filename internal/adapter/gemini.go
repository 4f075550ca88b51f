package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/mlorentedev/advisor/internal/prompt"
)

// GeminiDefaultModel is used when no model is configured.
const GeminiDefaultModel = "gemini-2.0-flash"

// GeminiAdapter connects to the Gemini API through the genai SDK.
type GeminiAdapter struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func (g *GeminiAdapter) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.Model)
}

func (g *GeminiAdapter) Complete(ctx context.Context, req Request) (string, error) {
	if g.APIKey == "" {
		return "", errors.New("gemini: no API key")
	}

	cc := &genai.ClientConfig{
		APIKey:     g.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.Client,
	}
	if g.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("gemini: create client: %w", err)
	}

	system, rest := prompt.Split(req.Messages)
	contents := make([]*genai.Content, 0, len(rest))
	for _, m := range rest {
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini: request: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("gemini: empty response candidates")
	}

	return strings.TrimSpace(resp.Text()), nil
}

func (g *GeminiAdapter) Available() bool {
	return g.APIKey != ""
}
