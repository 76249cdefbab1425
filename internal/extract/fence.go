// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract locates Mermaid blocks inside Markdown text and labels
// them with a chart type for output naming.
package extract

import (
	"regexp"
	"strings"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

// fencePattern matches a ```mermaid opening line up to the nearest closing
// ``` line. The body is captured without the newlines that border it.
var fencePattern = regexp.MustCompile("(?s)```mermaid\n(.*?)\n```")

// Fragments returns the Mermaid blocks in text, in document order, with
// positions 1..N. An opening fence with no closing fence yields nothing.
func Fragments(text string) []types.Fragment {
	text = normalizeNewlines(text)

	matches := fencePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	frags := make([]types.Fragment, len(matches))
	for i, m := range matches {
		frags[i] = types.Fragment{
			Source:   strings.TrimSpace(m[1]),
			Position: i + 1,
		}
	}
	return frags
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
