// Package sentence splits prose into numbered sentence units. The scene
// extractor and the interleaver both number sentences through Split, so a
// scene anchored at position k lands after the k-th unit returned here.
package sentence

import (
	"regexp"
	"strings"
)

// Delimiters are the full-width marks that terminate a sentence unit.
const Delimiters = "。！？；"

var delimiterRe = regexp.MustCompile(`[。！？；]`)

type token struct {
	text  string
	delim bool
}

// Split breaks text into sentence units, keeping each terminal mark on the
// sentence it ends. Whitespace-only fragments are dropped; everything else
// survives, so joining the result reproduces the remaining input.
//
// Runs of delimiters stay on the preceding sentence. Delimiters before the
// first content are carried onto that content.
func Split(text string) []string {
	var (
		units   []string
		pending string
	)

	for _, tok := range tokenize(text) {
		if !tok.delim {
			units = append(units, pending+tok.text)
			pending = ""
			continue
		}
		if len(units) == 0 {
			pending += tok.text
			continue
		}
		units[len(units)-1] += tok.text
	}

	if pending != "" {
		units = append(units, pending)
	}

	return units
}

// Count returns the number of sentence units in text.
func Count(text string) int {
	return len(Split(text))
}

// Content returns the unit with surrounding whitespace and delimiters removed.
func Content(unit string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(unit), Delimiters))
}

// tokenize yields alternating content and delimiter tokens, minus the
// whitespace-only ones.
func tokenize(text string) []token {
	var tokens []token
	last := 0

	push := func(s string, delim bool) {
		if strings.TrimSpace(s) == "" {
			return
		}
		tokens = append(tokens, token{text: s, delim: delim})
	}

	for _, loc := range delimiterRe.FindAllStringIndex(text, -1) {
		push(text[last:loc[0]], false)
		push(text[loc[0]:loc[1]], true)
		last = loc[1]
	}
	push(text[last:], false)

	return tokens
}
