// Package metrics derives size features from text so events can describe a
// query without recording it.
package metrics

import (
	"strings"
	"unicode/utf8"
)

type Features struct {
	Bytes int
	Runes int
	Words int
	Lines int
}

// CountFeatures returns byte, rune, word (Unicode whitespace separated) and
// line counts for s. An empty string has zero lines.
func CountFeatures(s string) Features {
	f := Features{
		Bytes: len(s),
		Runes: utf8.RuneCountInString(s),
		Words: len(strings.Fields(s)),
	}
	if s != "" {
		f.Lines = 1 + strings.Count(s, "\n")
	}
	return f
}

// Map renders f for a telemetry event.
func (f Features) Map() map[string]any {
	return map[string]any{
		"bytes": f.Bytes,
		"runes": f.Runes,
		"words": f.Words,
		"lines": f.Lines,
	}
}
