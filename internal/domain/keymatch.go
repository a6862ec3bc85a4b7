package domain

import (
	"slices"
	"strings"
)

type KeyMatch struct {
	Missing    []string
	Unexpected []string
}

// MatchKeys compares the parameter names a model declares with the names an
// artifact provides. Both result lists are sorted.
func MatchKeys(declared, present []string) KeyMatch {
	want := make(map[string]struct{}, len(declared))
	for _, name := range declared {
		want[name] = struct{}{}
	}
	have := make(map[string]struct{}, len(present))
	for _, name := range present {
		have[name] = struct{}{}
	}

	var match KeyMatch
	for name := range want {
		if _, ok := have[name]; !ok {
			match.Missing = append(match.Missing, name)
		}
	}
	for name := range have {
		if _, ok := want[name]; !ok {
			match.Unexpected = append(match.Unexpected, name)
		}
	}
	slices.Sort(match.Missing)
	slices.Sort(match.Unexpected)

	return match
}

func (m KeyMatch) OK() bool {
	return len(m.Missing) == 0 && len(m.Unexpected) == 0
}

func (m KeyMatch) Err() error {
	if m.OK() {
		return nil
	}

	parts := make([]string, 0, 2)
	if len(m.Missing) > 0 {
		parts = append(parts, "missing keys: "+strings.Join(m.Missing, ", "))
	}
	if len(m.Unexpected) > 0 {
		parts = append(parts, "unexpected keys: "+strings.Join(m.Unexpected, ", "))
	}

	return SchemaError("strict load failed (%s)", strings.Join(parts, "; "))
}
