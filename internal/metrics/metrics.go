package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// CompletionDuration tracks backend latency per model and persona.
	CompletionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "advisor_completion_duration_seconds",
		Help:    "Time spent waiting for the model to answer.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"model", "persona"})

	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "advisor_input_chars",
		Help:    "Number of characters in consultation input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// AdapterAvailable tracks whether each adapter is reachable.
	AdapterAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "advisor_adapter_available",
		Help: "Whether an LLM adapter is available (1) or not (0).",
	}, []string{"adapter"})

	// MissingCredential counts consultations answered with the setup notice.
	MissingCredential = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "advisor_missing_credential_total",
		Help: "Consultations that could not call the model because no credential was configured.",
	}, []string{"model"})
)
