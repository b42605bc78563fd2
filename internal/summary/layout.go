// Package summary splits generated discharge-summary text into a fixed set
// of named sections.
package summary

import (
	"errors"
	"fmt"
)

var ErrInvalidLayout = errors.New("invalid section layout")

// Alias introduces a canonical section under an alternate label.
type Alias struct {
	Label string `toml:"label" json:"label"`
	Key   string `toml:"key" json:"key"`
}

// Layout is the closed, ordered set of section keys plus the alias table.
// Matching order is Keys in declaration order, then Aliases in order.
type Layout struct {
	Keys    []string
	Aliases []Alias
}

// DefaultLayout returns the discharge summary sections.
func DefaultLayout() Layout {
	return Layout{
		Keys: []string{
			"入院期間",
			"現病歴",
			"入院時検査",
			"入院中の治療経過",
			"退院申し送り",
			"禁忌/アレルギー",
		},
		Aliases: []Alias{
			{Label: "禁忌・アレルギー", Key: "禁忌/アレルギー"},
		},
	}
}

// Validate reports an error wrapping ErrInvalidLayout if keys are empty or
// duplicated, or an alias points outside the key set.
func (l Layout) Validate() error {
	if len(l.Keys) == 0 {
		return fmt.Errorf("%w: no sections", ErrInvalidLayout)
	}
	seen := make(map[string]bool, len(l.Keys))
	for _, k := range l.Keys {
		if k == "" {
			return fmt.Errorf("%w: empty section name", ErrInvalidLayout)
		}
		if seen[k] {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalidLayout, k)
		}
		seen[k] = true
	}
	for _, a := range l.Aliases {
		if a.Label == "" {
			return fmt.Errorf("%w: empty alias label for %q", ErrInvalidLayout, a.Key)
		}
		if !seen[a.Key] {
			return fmt.Errorf("%w: alias %q points at unknown section %q", ErrInvalidLayout, a.Label, a.Key)
		}
	}
	return nil
}

type label struct {
	text string
	key  string
}

// labels returns the match table in test order.
func (l Layout) labels() []label {
	out := make([]label, 0, len(l.Keys)+len(l.Aliases))
	for _, k := range l.Keys {
		out = append(out, label{text: k, key: k})
	}
	for _, a := range l.Aliases {
		out = append(out, label{text: a.Label, key: a.Key})
	}
	return out
}
