package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mlorentedev/advisor/internal/adapter"
	"github.com/mlorentedev/advisor/internal/credential"
	"github.com/mlorentedev/advisor/internal/prompt"
)

// DefaultTemperature keeps advisory answers mostly consistent without being rigid.
const DefaultTemperature float32 = 0.4

// ErrEmptyAnswer is returned when the backend answers with only whitespace.
var ErrEmptyAnswer = errors.New("advisor: empty answer from model")

// Invoker sends one system + human prompt to a completion backend.
type Invoker struct {
	client      adapter.LLMAdapter
	cred        credential.Credential
	provider    string
	temperature float32
	logger      *zap.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithTemperature overrides DefaultTemperature.
func WithTemperature(t float32) Option {
	return func(inv *Invoker) { inv.temperature = t }
}

// WithProvider sets the provider label used in the missing-credential message.
func WithProvider(label string) Option {
	return func(inv *Invoker) { inv.provider = label }
}

// WithLogger sets the logger for completion and diagnostic events. Defaults to zap.NewNop.
func WithLogger(l *zap.Logger) Option {
	return func(inv *Invoker) { inv.logger = l }
}

// NewInvoker binds a backend to the credential it needs. The credential is
// resolved by the caller; the invoker never reads the environment itself.
func NewInvoker(client adapter.LLMAdapter, cred credential.Credential, opts ...Option) *Invoker {
	inv := &Invoker{
		client:      client,
		cred:        cred,
		provider:    "OpenAI",
		temperature: DefaultTemperature,
		logger:      zap.NewNop(),
	}
	for _, o := range opts {
		o(inv)
	}
	return inv
}

func (inv *Invoker) Client() adapter.LLMAdapter { return inv.client }

// CredentialMissing reports whether Invoke will short-circuit with the diagnostic.
func (inv *Invoker) CredentialMissing() bool { return inv.cred.Missing() }

// Invoke returns the trimmed model answer. With a required credential absent it
// returns the missing-credential diagnostic instead, without calling the backend.
// Backend errors are returned wrapped.
func (inv *Invoker) Invoke(ctx context.Context, system, input string) (string, error) {
	if inv.cred.Missing() {
		inv.logger.Warn("credential missing, returning diagnostic",
			zap.String("credential", inv.cred.Name),
			zap.String("model", inv.client.Name()),
		)
		return MissingCredentialMessage(inv.provider, inv.cred.Name), nil
	}

	msgs, err := prompt.Request{System: system, Input: input}.Messages()
	if err != nil {
		return "", fmt.Errorf("advisor: %w", err)
	}
	req := adapter.Request{Messages: msgs, Temperature: inv.temperature}

	start := time.Now()
	out, err := inv.client.Complete(ctx, req)
	if err != nil {
		inv.logger.Error("completion failed",
			zap.String("model", inv.client.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("advisor: complete: %w", err)
	}

	answer := strings.TrimSpace(out)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	inv.logger.Debug("completion done",
		zap.String("model", inv.client.Name()),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("answer_chars", len([]rune(answer))),
	)
	return answer, nil
}

// MissingCredentialMessage explains both remediation paths for an absent key.
func MissingCredentialMessage(provider, name string) string {
	return fmt.Sprintf("⚠️ %s APIキーが設定されていません。\n"+
		"・ローカル: 環境変数 %s を設定してください。\n"+
		"・デプロイ環境: 設定ファイルの secrets に %s のシークレットURLを追加してください。", provider, name, name)
}
