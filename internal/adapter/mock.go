package adapter

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mlorentedev/advisor/internal/prompt"
)

// MockAdapter returns canned or echoed responses with a configurable delay.
// Used for development and testing without a real LLM backend.
type MockAdapter struct {
	Delay time.Duration
	// Reply, when set, is returned verbatim instead of echoing the human message.
	Reply string

	calls atomic.Int64
}

func (m *MockAdapter) Name() string { return "Mock" }

func (m *MockAdapter) Complete(ctx context.Context, req Request) (string, error) {
	m.calls.Add(1)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	if m.Reply != "" {
		return m.Reply, nil
	}

	var last string
	for _, msg := range req.Messages {
		if msg.Role == prompt.RoleHuman {
			last = msg.Content
		}
	}
	return last, nil
}

func (m *MockAdapter) Available() bool { return true }

// Calls reports how many times Complete was invoked.
func (m *MockAdapter) Calls() int64 { return m.calls.Load() }
