// Package envsubst expands ${VAR} placeholders against a key-value set.
//
// Only the braced form is recognized: $VAR without braces and a bare $ are
// copied through untouched. Placeholders naming an unknown key stay in the
// output as literal text, so callers can tell an unresolved template apart
// from one that resolved to an empty value.
package envsubst

import "strings"

// Expand returns s with every ${KEY} whose KEY exists in vars replaced by
// the mapped value. Unknown keys and unterminated placeholders are kept
// as literal text. Substituted values are not re-expanded.
func Expand(s string, vars map[string]string) string {
	if !strings.Contains(s, "${") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for {
		open := strings.Index(s, "${")
		if open < 0 {
			b.WriteString(s)
			return b.String()
		}

		end := strings.Index(s[open:], "}")
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += open

		if val, ok := vars[s[open+2:end]]; ok {
			b.WriteString(s[:open])
			b.WriteString(val)
		} else {
			b.WriteString(s[:end+1])
		}
		s = s[end+1:]
	}
}

// ExpandPtr expands an optional template. A nil template stays nil, which
// keeps "not configured" distinguishable from "expanded to empty" for the
// override fallback logic downstream.
func ExpandPtr(s *string, vars map[string]string) *string {
	if s == nil {
		return nil
	}
	out := Expand(*s, vars)
	return &out
}
