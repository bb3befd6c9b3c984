// Package strings holds small string helpers shared by config and handlers.
package strings

import (
	"strings"
)

// SplitList splits raw on sep, trims every element and drops blanks and
// repeats. First occurrence wins, so order is preserved.
//
//	SplitList(" a, b,,a ", ",") // []string{"a", "b"}
func SplitList(raw, sep string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, sep)
	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
