package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultResolve(t *testing.T) {
	d := Default()

	tests := []struct {
		name     string
		selector string
		want     string
	}{
		{"real estate advisor", "A", builtin[0].Instruction},
		{"nutrition expert", "B", builtin[1].Instruction},
		{"unmapped selector", "Z", FallbackInstruction},
		{"empty selector", "", FallbackInstruction},
		{"lowercase is not mapped", "a", FallbackInstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Resolve(tt.selector))
		})
	}
}

func TestDefaultInstructions(t *testing.T) {
	d := Default()

	assert.True(t, strings.HasPrefix(d.Resolve("A"), "あなたは経験豊富な不動産投資アドバイザーです。"))
	assert.True(t, strings.HasPrefix(d.Resolve("B"), "あなたは科学的根拠を重視する栄養学エキスパートです。"))
	assert.Equal(t, "あなたは有能なアシスタントです。丁寧かつ具体的に回答してください。", d.Resolve("Z"))
}

func TestResolveNeverEmpty(t *testing.T) {
	d := Default()
	for _, s := range []string{"A", "B", "C", "AB", " A", "専門家", strings.Repeat("x", 1000)} {
		assert.NotEmpty(t, d.Resolve(s), "selector %q", s)
	}
}

func TestList(t *testing.T) {
	d := Default()

	list := d.List()
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Key)
	assert.Equal(t, "A：不動産投資アドバイザー", list[0].Label)
	assert.Equal(t, "B", list[1].Key)
	assert.Equal(t, "A", d.DefaultKey())

	list[0].Instruction = "mutated"
	assert.NotEqual(t, "mutated", d.Resolve("A"), "List must not expose internal state")
}

func TestLookup(t *testing.T) {
	d := Default()

	p, ok := d.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, "B：栄養学エキスパート", p.Label)

	_, ok = d.Lookup("Z")
	assert.False(t, ok)
}

func TestNewAddsPersonaAsData(t *testing.T) {
	table := append(append([]Persona{}, builtin...), Persona{Key: "C", Label: "C", Instruction: "tax"})
	d, err := New(FallbackInstruction, table...)
	require.NoError(t, err)

	assert.Equal(t, "tax", d.Resolve("C"))
	assert.Len(t, d.List(), 3)
}

func TestNewRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		personas []Persona
	}{
		{"empty fallback", "", builtin},
		{"empty key", FallbackInstruction, []Persona{{Key: "", Instruction: "x"}}},
		{"empty instruction", FallbackInstruction, []Persona{{Key: "A"}}},
		{"duplicate key", FallbackInstruction, []Persona{{Key: "A", Instruction: "x"}, {Key: "A", Instruction: "y"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.fallback, tt.personas...)
			assert.Error(t, err)
		})
	}
}

func TestEmptyDirectoryFallsBack(t *testing.T) {
	d, err := New("fallback")
	require.NoError(t, err)

	assert.Equal(t, "fallback", d.Resolve("A"))
	assert.Equal(t, "", d.DefaultKey())
	assert.Empty(t, d.List())
}
