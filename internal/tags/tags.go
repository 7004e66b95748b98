// Package tags converts between the two representations of a set-valued
// profile attribute: the []string stored and transmitted by the API, and the
// single comma-joined text field the profile form edits.
//
// WHY A SEPARATE PACKAGE?
// The profile form shows "JavaScript, Python" in one input box; the API and
// database deal in ["JavaScript", "Python"]. That mapping is trivially easy
// to get subtly wrong (stray empty entries from "a, , b", whitespace kept
// around tags, nil vs empty slice). Isolating it behind two pure functions
// means it is unit-testable with no form, no HTTP, and no database — and
// both ProgrammingLanguages and Expertise go through exactly the same code.
//
// KNOWN LIMITATION:
// A tag containing a literal comma cannot survive the round trip — Decode
// will split it. That is accepted, not worked around: tags are short labels
// and the form format is plain comma-separated text.
package tags

import "strings"

// Encode joins tags with ", " for display in a single text input.
// An empty slice encodes to the empty string.
func Encode(tags []string) string {
	return strings.Join(tags, ", ")
}

// Decode parses comma-separated text back into an ordered tag slice.
//
// Each piece is trimmed of surrounding whitespace; empty pieces are dropped
// ("a, , b" → ["a","b"]); order is preserved. Empty or whitespace-only input
// decodes to an empty, non-nil slice — callers transmit an empty array,
// never a missing field.
//
// For any sequence of non-empty, comma-free, already-trimmed tags T:
// Decode(Encode(T)) == T.
func Decode(text string) []string {
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
