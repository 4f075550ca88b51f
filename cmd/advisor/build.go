package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mlorentedev/advisor/internal/adapter"
	"github.com/mlorentedev/advisor/internal/advisor"
	"github.com/mlorentedev/advisor/internal/config"
	"github.com/mlorentedev/advisor/internal/credential"
	"github.com/mlorentedev/advisor/internal/metrics"
	"github.com/mlorentedev/advisor/internal/persona"
)

// backend is one configured model before it is bound to an invoker.
type backend struct {
	info     adapter.ModelInfo
	client   adapter.LLMAdapter
	cred     credential.Credential
	provider string
}

// buildAdvisor resolves credentials once and binds every configured backend.
// The default model follows cfg.Provider.
func buildAdvisor(ctx context.Context, cfg config.Config, mock bool, src credential.Source, logger *zap.Logger) (*advisor.Advisor, []adapter.ModelInfo, error) {
	var (
		backends     []backend
		defaultModel string
	)

	if mock {
		backends = append(backends, backend{
			info:   adapter.ModelInfo{ID: "mock", Name: "Mock (dev)", Provider: "mock"},
			client: &adapter.MockAdapter{Delay: 500 * time.Millisecond},
		})
		defaultModel = "mock"
		logger.Info("mode: mock adapter enabled")
	} else {
		var err error
		backends, defaultModel, err = configuredBackends(ctx, cfg, src, logger)
		if err != nil {
			return nil, nil, err
		}
	}

	invokers := make(map[string]*advisor.Invoker, len(backends))
	models := make([]adapter.ModelInfo, 0, len(backends))
	for _, b := range backends {
		opts := []advisor.Option{
			advisor.WithTemperature(cfg.Temperature),
			advisor.WithLogger(logger.With(zap.String("model", b.info.ID))),
		}
		if b.provider != "" {
			opts = append(opts, advisor.WithProvider(b.provider))
		}
		invokers[b.info.ID] = advisor.NewInvoker(b.client, b.cred, opts...)
		models = append(models, b.info)

		available := 0.0
		if b.client.Available() {
			available = 1
		}
		metrics.AdapterAvailable.WithLabelValues(b.info.ID).Set(available)

		if b.cred.Missing() {
			logger.Warn("credential not configured; answers will carry the setup notice",
				zap.String("model", b.info.ID),
				zap.String("credential", b.cred.Name),
			)
		}
	}

	adv, err := advisor.New(persona.Default(), invokers, defaultModel)
	if err != nil {
		return nil, nil, err
	}
	return adv, models, nil
}

func configuredBackends(ctx context.Context, cfg config.Config, src credential.Source, logger *zap.Logger) ([]backend, string, error) {
	var backends []backend
	defaultModel := ""

	add := func(b backend, provider string) {
		backends = append(backends, b)
		if provider == cfg.Provider {
			defaultModel = b.info.ID
		}
		logger.Info("backend configured",
			zap.String("provider", provider),
			zap.String("model", b.info.ID),
		)
	}

	// 1. OpenAI is always registered.
	cred, err := credential.Resolve(ctx, src, cfg.CredentialName, true)
	if err != nil {
		return nil, "", err
	}
	add(backend{
		info: adapter.ModelInfo{ID: cfg.OpenAIModel, Name: "OpenAI (" + cfg.OpenAIModel + ")", Provider: "openai"},
		client: &adapter.OpenAIAdapter{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cred.Value,
			Model:   cfg.OpenAIModel,
			Client:  &http.Client{Timeout: 60 * time.Second},
		},
		cred:     cred,
		provider: "OpenAI",
	}, "openai")

	// 2. Gemini when selected or when its key is present.
	cred, err = credential.Resolve(ctx, src, cfg.GeminiKeyName, true)
	if err != nil {
		return nil, "", err
	}
	if cfg.Provider == "gemini" || !cred.Missing() {
		add(backend{
			info: adapter.ModelInfo{ID: cfg.GeminiModel, Name: "Gemini (" + cfg.GeminiModel + ")", Provider: "gemini"},
			client: &adapter.GeminiAdapter{
				APIKey: cred.Value,
				Model:  cfg.GeminiModel,
				Client: &http.Client{Timeout: 60 * time.Second},
			},
			cred:     cred,
			provider: "Gemini",
		}, "gemini")
	}

	// 3. Claude, same rule.
	cred, err = credential.Resolve(ctx, src, cfg.ClaudeKeyName, true)
	if err != nil {
		return nil, "", err
	}
	if cfg.Provider == "claude" || !cred.Missing() {
		add(backend{
			info: adapter.ModelInfo{ID: cfg.ClaudeModel, Name: "Claude (" + cfg.ClaudeModel + ")", Provider: "claude"},
			client: &adapter.ClaudeAdapter{
				APIKey: cred.Value,
				Model:  cfg.ClaudeModel,
				Client: &http.Client{Timeout: 60 * time.Second},
			},
			cred:     cred,
			provider: "Anthropic",
		}, "claude")
	}

	// 4. Local servers need no credential.
	if cfg.OllamaURL != "" {
		add(backend{
			info: adapter.ModelInfo{ID: cfg.OllamaModel, Name: "Ollama (" + cfg.OllamaModel + ")", Provider: "ollama"},
			client: &adapter.OllamaAdapter{
				BaseURL: cfg.OllamaURL,
				Model:   cfg.OllamaModel,
				Client:  &http.Client{Timeout: 60 * time.Second},
			},
		}, "ollama")
	}
	if cfg.LlamaCppURL != "" {
		model := cfg.LlamaCppModel
		if model == "" {
			model = "qwen2.5-1.5b-gpu"
		}
		add(backend{
			info: adapter.ModelInfo{ID: model, Name: "llama.cpp (" + model + ")", Provider: "llamacpp"},
			client: &adapter.LlamaCppAdapter{
				BaseURL: cfg.LlamaCppURL,
				Model:   model,
				Client:  &http.Client{Timeout: 120 * time.Second},
			},
		}, "llamacpp")
	}

	if defaultModel == "" {
		return nil, "", fmt.Errorf("provider %q is not configured", cfg.Provider)
	}
	return backends, defaultModel, nil
}
