// Package listparse normalizes the list encodings found in volunteer records.
//
// The same logical list may arrive as any of:
//
//	{lunes,martes}        brace-delimited (postgres array literal)
//	["lunes","martes"]    JSON array
//	lunes,martes          comma-separated
//	lunes                 single bare token
package listparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jakechorley/parks-scoring/pkg/core/model"
)

// ErrMalformedList is returned when a value looks like a structured list but cannot be decoded.
// The accompanying set is always empty, never nil.
var ErrMalformedList = errors.New("malformed list encoding")

// Parse decodes raw into a set of trimmed entries.
// Patterns are checked in order: brace-wrapped, bracket-wrapped, comma-separated, bare token.
func Parse(raw string) (model.StringSet, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.NewStringSet(), nil
	}

	switch {
	case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"):
		entries, err := splitArrayLiteral(trimmed[1 : len(trimmed)-1])
		if err != nil {
			return model.NewStringSet(), fmt.Errorf("%w: %q: %v", ErrMalformedList, raw, err)
		}
		return model.NewStringSet(entries...), nil

	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		var entries []any
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return model.NewStringSet(), fmt.Errorf("%w: %q: %v", ErrMalformedList, raw, err)
		}
		values := make([]string, 0, len(entries))
		for _, entry := range entries {
			s, ok := entry.(string)
			if !ok {
				return model.NewStringSet(), fmt.Errorf("%w: %q: non-string entry %v", ErrMalformedList, raw, entry)
			}
			values = append(values, cleanEntry(s))
		}
		return model.NewStringSet(values...), nil

	case strings.Contains(trimmed, ","):
		return model.NewStringSet(splitEntries(trimmed)...), nil
	}

	return model.NewStringSet(cleanEntry(trimmed)), nil
}

// ParseLower is Parse with every entry lowercased, used for weekday names
func ParseLower(raw string) (model.StringSet, error) {
	set, err := Parse(raw)
	if err != nil {
		return set, err
	}
	lowered := make(model.StringSet, len(set))
	for v := range set {
		lowered[strings.ToLower(v)] = struct{}{}
	}
	return lowered, nil
}

func splitEntries(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, cleanEntry(p))
	}
	return out
}

// splitArrayLiteral splits the body of a postgres array literal.
// Double-quoted elements may contain commas and backslash-escaped characters.
func splitArrayLiteral(body string) ([]string, error) {
	var (
		out     []string
		current strings.Builder
		quoted  bool
		escaped bool
	)

	for _, r := range body {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			out = append(out, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if quoted || escaped {
		return nil, errors.New("unterminated quoted element")
	}

	return append(out, strings.TrimSpace(current.String())), nil
}

// cleanEntry strips whitespace and the quotes postgres adds around array elements
func cleanEntry(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"'`))
}
