package generator

import (
	"sort"
	"strings"
)

// MemberNames returns the enum member names for values, ordered by the raw
// values. Decoders assign ordinals in this order, so it must not change.
//
// A value made only of symbols in the table is named by joining the symbol
// names with underscores ("<=" becomes LESS_EQUAL). Any other value is
// uppercased with spaces and hyphens turned into underscores.
func MemberNames(values []string, symbols map[string]string) []string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)

	names := make([]string, 0, len(sorted))
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			continue
		}
		names = append(names, memberName(v, symbols))
	}
	return names
}

func memberName(v string, symbols map[string]string) string {
	if !allSymbols(v, symbols) {
		return strings.ToUpper(strings.NewReplacer("-", "_", " ", "_").Replace(v))
	}
	parts := make([]string, 0, len(v))
	for _, r := range v {
		parts = append(parts, symbols[string(r)])
	}
	return strings.Join(parts, "_")
}

func allSymbols(v string, symbols map[string]string) bool {
	for _, r := range v {
		if _, ok := symbols[string(r)]; !ok {
			return false
		}
	}
	return true
}
