package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlorentedev/advisor/internal/prompt"
)

func TestMockAdapterComplete(t *testing.T) {
	tests := []struct {
		name  string
		mock  *MockAdapter
		input string
		want  string
	}{
		{"echoes human message", &MockAdapter{}, "hello", prompt.HumanPreamble + "hello"},
		{"canned reply", &MockAdapter{Reply: "  fixed  "}, "hello", "  fixed  "},
		{"empty input", &MockAdapter{}, "", prompt.HumanPreamble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := prompt.Request{System: "sys", Input: tt.input}.Messages()
			require.NoError(t, err)
			req := Request{Messages: msgs}
			got, err := tt.mock.Complete(context.Background(), req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.EqualValues(t, 1, tt.mock.Calls())
		})
	}
}

func TestMockAdapterContextCancel(t *testing.T) {
	m := &MockAdapter{Delay: 5 * time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockAdapterAvailable(t *testing.T) {
	m := &MockAdapter{}
	assert.True(t, m.Available(), "mock adapter should always be available")
	assert.Equal(t, "Mock", m.Name())
}
