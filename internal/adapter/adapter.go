package adapter

import (
	"context"

	"github.com/mlorentedev/advisor/internal/prompt"
)

// LLMAdapter defines the contract for completion backends.
type LLMAdapter interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Available() bool
}

// Request is an ordered message list plus sampling temperature.
// The model identifier is fixed per adapter.
type Request struct {
	Messages    []prompt.Message
	Temperature float32
}

// ModelInfo is exposed via GET /api/models.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// chatRole maps prompt roles onto the OpenAI-style role names most backends use.
func chatRole(r prompt.Role) string {
	switch r {
	case prompt.RoleSystem:
		return "system"
	case prompt.RoleHuman:
		return "user"
	default:
		return string(r)
	}
}
