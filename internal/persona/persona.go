package persona

import (
	"errors"
	"fmt"
	"sort"
)

// Persona is a selectable expert whose instruction becomes the system message.
type Persona struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Instruction string `json:"-"`
}

// FallbackInstruction is used for any selector outside the table.
const FallbackInstruction = "あなたは有能なアシスタントです。丁寧かつ具体的に回答してください。"

var builtin = []Persona{
	{
		Key:   "A",
		Label: "A：不動産投資アドバイザー",
		Instruction: "あなたは経験豊富な不動産投資アドバイザーです。" +
			"市場調査、収益性評価（表面・実質利回り）、資金計画、融資、出口戦略、" +
			"税務上の留意点などを、わかりやすく段階的に助言してください。" +
			"数値が必要な場合は、仮定条件を明示し簡便な試算も提案してください。",
	},
	{
		Key:   "B",
		Label: "B：栄養学エキスパート",
		Instruction: "あなたは科学的根拠を重視する栄養学エキスパートです。" +
			"目的（減量・増量・健康維持等）に応じ、摂取カロリー、PFCバランス、" +
			"食事例、買い物リスト、注意点を、具体的かつ実行可能な形で提示してください。" +
			"一般向けの説明で専門用語は短く補足してください。",
	},
}

// Directory is an immutable selector → persona table with a fallback instruction.
type Directory struct {
	personas map[string]Persona
	keys     []string
	fallback string
}

// New builds a directory. The fallback must be non-empty so Resolve stays total.
func New(fallback string, personas ...Persona) (*Directory, error) {
	if fallback == "" {
		return nil, errors.New("persona: fallback instruction is required")
	}

	d := &Directory{
		personas: make(map[string]Persona, len(personas)),
		fallback: fallback,
	}
	for _, p := range personas {
		if p.Key == "" {
			return nil, errors.New("persona: empty key")
		}
		if p.Instruction == "" {
			return nil, fmt.Errorf("persona: %s: empty instruction", p.Key)
		}
		if _, dup := d.personas[p.Key]; dup {
			return nil, fmt.Errorf("persona: duplicate key %q", p.Key)
		}
		d.personas[p.Key] = p
		d.keys = append(d.keys, p.Key)
	}
	sort.Strings(d.keys)
	return d, nil
}

// Default returns the built-in real-estate (A) / nutrition (B) table.
func Default() *Directory {
	d, err := New(FallbackInstruction, builtin...)
	if err != nil {
		panic(err)
	}
	return d
}

// Resolve returns the instruction for selector, or the fallback instruction.
func (d *Directory) Resolve(selector string) string {
	if p, ok := d.personas[selector]; ok {
		return p.Instruction
	}
	return d.fallback
}

// Lookup returns the persona for selector. Unlike Resolve it reports a miss.
func (d *Directory) Lookup(selector string) (Persona, bool) {
	p, ok := d.personas[selector]
	return p, ok
}

// List returns the personas ordered by key.
func (d *Directory) List() []Persona {
	out := make([]Persona, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.personas[k])
	}
	return out
}

// DefaultKey is the preselected option, or "" for an empty table.
func (d *Directory) DefaultKey() string {
	if len(d.keys) == 0 {
		return ""
	}
	return d.keys[0]
}
