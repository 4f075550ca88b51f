// Package credential resolves API keys for completion backends: a secrets
// store is consulted first, then the process environment.
package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound reports that a source holds no value for the requested name.
var ErrNotFound = errors.New("credential: not found")

// Source looks up a credential value by name.
type Source interface {
	Lookup(ctx context.Context, name string) (string, error)
}

// Credential is the resolved value handed to a completion invoker.
type Credential struct {
	Name     string
	Value    string
	Required bool
}

// Missing reports whether a required credential has no value.
func (c Credential) Missing() bool {
	return c.Required && c.Value == ""
}

// Env reads credentials from environment variables of the same name.
type Env struct{}

func (Env) Lookup(_ context.Context, name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

// Chain tries each source in order; the first non-empty value wins.
type Chain []Source

func (c Chain) Lookup(ctx context.Context, name string) (string, error) {
	for _, src := range c {
		v, err := src.Lookup(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return "", err
		}
		if v != "" {
			return v, nil
		}
	}
	return "", ErrNotFound
}

// Resolve looks name up in src. A missing value is not an error: the
// returned Credential simply has an empty Value.
func Resolve(ctx context.Context, src Source, name string, required bool) (Credential, error) {
	cred := Credential{Name: name, Required: required}
	if name == "" {
		return cred, nil
	}

	v, err := src.Lookup(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		return cred, nil
	case err != nil:
		return cred, fmt.Errorf("credential: %s: %w", name, err)
	}
	cred.Value = v
	return cred, nil
}
