package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mlorentedev/advisor/internal/persona"
)

var (
	// ErrEmptyInput is returned for blank or whitespace-only input; no call is made.
	ErrEmptyInput = errors.New("advisor: input is empty")
	// ErrUnknownModel is returned for a model id with no configured invoker.
	ErrUnknownModel = errors.New("advisor: unknown model")
)

// Answer is the outcome of one consultation.
type Answer struct {
	Text    string
	Persona string
	Model   string
	// Notice is set when Text is the missing-credential diagnostic.
	Notice  bool
	Elapsed time.Duration
}

// Advisor resolves a persona and routes the prompt to a model's invoker.
type Advisor struct {
	personas     *persona.Directory
	invokers     map[string]*Invoker
	defaultModel string
}

// New returns an Advisor over personas and the invokers keyed by model id.
// defaultModel must be one of the keys.
func New(personas *persona.Directory, invokers map[string]*Invoker, defaultModel string) (*Advisor, error) {
	if personas == nil {
		return nil, errors.New("advisor: persona directory is required")
	}
	if _, ok := invokers[defaultModel]; !ok {
		return nil, fmt.Errorf("%w: default %q", ErrUnknownModel, defaultModel)
	}
	return &Advisor{
		personas:     personas,
		invokers:     invokers,
		defaultModel: defaultModel,
	}, nil
}

func (a *Advisor) Personas() *persona.Directory { return a.personas }

func (a *Advisor) DefaultModel() string { return a.defaultModel }

func (a *Advisor) Invoker(modelID string) (*Invoker, bool) {
	inv, ok := a.invokers[modelID]
	return inv, ok
}

// Consult answers input as the persona named by selector. An empty modelID
// selects the default model. Input is trimmed before it is sent.
func (a *Advisor) Consult(ctx context.Context, selector, modelID, input string) (Answer, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return Answer{}, ErrEmptyInput
	}

	if modelID == "" {
		modelID = a.defaultModel
	}
	inv, ok := a.invokers[modelID]
	if !ok {
		return Answer{}, fmt.Errorf("%w: %s", ErrUnknownModel, modelID)
	}

	start := time.Now()
	out, err := inv.Invoke(ctx, a.personas.Resolve(selector), text)
	if err != nil {
		return Answer{}, err
	}

	return Answer{
		Text:    out,
		Persona: selector,
		Model:   modelID,
		Notice:  inv.CredentialMissing(),
		Elapsed: time.Since(start),
	}, nil
}
