package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mlorentedev/advisor/internal/adapter"
	"github.com/mlorentedev/advisor/internal/advisor"
	"github.com/mlorentedev/advisor/internal/handler"
	"github.com/mlorentedev/advisor/internal/middleware"
	"github.com/mlorentedev/advisor/internal/web"
)

// Options carries everything SetupMux needs besides the advisor.
type Options struct {
	Models    []adapter.ModelInfo
	Logger    *zap.Logger
	APIKey    string
	RateLimit int
	Timeout   time.Duration
	Title     string
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(adv *advisor.Advisor, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if opts.Title == "" {
		opts.Title = "専門家A/B切替デモ"
	}

	adapters := make(map[string]adapter.LLMAdapter, len(opts.Models))
	for _, m := range opts.Models {
		if inv, ok := adv.Invoker(m.ID); ok {
			adapters[m.ID] = inv.Client()
		}
	}

	personas := adv.Personas()
	page := web.Page{
		Title:        opts.Title,
		Personas:     personas.List(),
		DefaultKey:   personas.DefaultKey(),
		DefaultModel: adv.DefaultModel(),
		AuthEnabled:  opts.APIKey != "",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", web.Index(page, logger))
	mux.HandleFunc("/api/health", handler.Health(adapters))
	mux.HandleFunc("/api/models", handler.Models(opts.Models))
	mux.HandleFunc("/api/personas", handler.Personas(personas))
	mux.HandleFunc("/api/ask", handler.Ask(adv, logger))
	mux.Handle("/metrics", promhttp.Handler())

	return middleware.Chain(mux, middleware.Options{
		Logger:      logger,
		RateLimiter: middleware.NewRateLimiter(opts.RateLimit, time.Minute),
		APIKey:      opts.APIKey,
		Timeout:     opts.Timeout,
	})
}
