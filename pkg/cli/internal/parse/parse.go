// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"strings"

	"github.com/ohler55/ojg/oj"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to '='.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{'='}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Value interprets s as JSON when it is valid JSON and as a plain string
// otherwise, so `42`, `true`, `null` and `{"a":1}` keep their types.
func Value(s string) any {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	v, err := oj.ParseString(trimmed)
	if err != nil {
		return s
	}
	return v
}
