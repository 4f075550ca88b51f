package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	values map[string]string
	err    error
	calls  int
}

func (f *fakeSource) Lookup(_ context.Context, name string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	v, ok := f.values[name]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func TestEnvLookup(t *testing.T) {
	t.Setenv("ADVISOR_TEST_KEY", "sk-env")
	t.Setenv("ADVISOR_TEST_EMPTY", "")

	v, err := Env{}.Lookup(context.Background(), "ADVISOR_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", v)

	_, err = Env{}.Lookup(context.Background(), "ADVISOR_TEST_EMPTY")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Env{}.Lookup(context.Background(), "ADVISOR_TEST_UNSET_XYZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChainPrefersSecretsStore(t *testing.T) {
	store := &fakeSource{values: map[string]string{"OPENAI_API_KEY": "sk-secret"}}
	env := &fakeSource{values: map[string]string{"OPENAI_API_KEY": "sk-env"}}

	v, err := Chain{store, env}.Lookup(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", v)
	assert.Equal(t, 0, env.calls, "env must not be consulted when the store has a value")
}

func TestChainFallsBackToEnv(t *testing.T) {
	store := &fakeSource{values: map[string]string{}}
	env := &fakeSource{values: map[string]string{"OPENAI_API_KEY": "sk-env"}}

	v, err := Chain{store, env}.Lookup(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", v)
}

func TestChainSkipsEmptyValues(t *testing.T) {
	store := &fakeSource{values: map[string]string{"OPENAI_API_KEY": ""}}
	env := &fakeSource{values: map[string]string{"OPENAI_API_KEY": "sk-env"}}

	v, err := Chain{store, env}.Lookup(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", v)
}

func TestChainNotFound(t *testing.T) {
	_, err := Chain{&fakeSource{}, &fakeSource{}}.Lookup(context.Background(), "OPENAI_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChainStopsOnError(t *testing.T) {
	boom := errors.New("decrypt failed")
	env := &fakeSource{values: map[string]string{"OPENAI_API_KEY": "sk-env"}}

	_, err := Chain{&fakeSource{err: boom}, env}.Lookup(context.Background(), "OPENAI_API_KEY")
	assert.ErrorIs(t, err, boom)
}

func TestResolve(t *testing.T) {
	src := &fakeSource{values: map[string]string{"OPENAI_API_KEY": "sk-test"}}

	t.Run("found", func(t *testing.T) {
		c, err := Resolve(context.Background(), src, "OPENAI_API_KEY", true)
		require.NoError(t, err)
		assert.Equal(t, Credential{Name: "OPENAI_API_KEY", Value: "sk-test", Required: true}, c)
		assert.False(t, c.Missing())
	})

	t.Run("missing is not an error", func(t *testing.T) {
		c, err := Resolve(context.Background(), src, "GEMINI_API_KEY", true)
		require.NoError(t, err)
		assert.Empty(t, c.Value)
		assert.True(t, c.Missing())
	})

	t.Run("optional credential is never missing", func(t *testing.T) {
		c, err := Resolve(context.Background(), src, "", false)
		require.NoError(t, err)
		assert.False(t, c.Missing())
	})

	t.Run("source failure", func(t *testing.T) {
		_, err := Resolve(context.Background(), &fakeSource{err: errors.New("boom")}, "OPENAI_API_KEY", true)
		assert.Error(t, err)
	})
}

func TestSecretStoreUnmappedName(t *testing.T) {
	s := NewSecretStore(map[string]string{"OPENAI_API_KEY": ""})

	_, err := s.Lookup(context.Background(), "OPENAI_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Lookup(context.Background(), "GEMINI_API_KEY")
	assert.ErrorIs(t, err, ErrNotFound)
}
