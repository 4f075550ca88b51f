package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Options configures the middleware stack.
type Options struct {
	Logger      *zap.Logger
	RateLimiter *RateLimiter
	APIKey      string
	MaxBytes    int64
	Timeout     time.Duration
}

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → Timeout → mux
func Chain(handler http.Handler, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 64 * 1024
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 65 * time.Second
	}

	h := handler
	h = http.TimeoutHandler(h, timeout, `{"error":"request timeout"}`)
	h = MaxBytes(maxBytes)(h)
	h = APIKey(opts.APIKey)(h)
	if opts.RateLimiter != nil {
		h = RateLimit(opts.RateLimiter)(h)
	}
	h = Metrics(h)
	h = Logging(logger)(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
