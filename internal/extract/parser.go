// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

// Func extracts the Mermaid fragments from a document's text.
type Func func(text string) []types.Fragment

// ForParser returns the extractor for the named parser. An empty name
// selects the fence extractor.
func ForParser(p types.ExtractParser) (Func, error) {
	switch p {
	case "", types.ParserFence:
		return Fragments, nil
	case types.ParserMarkdown:
		return MarkdownFragments, nil
	default:
		return nil, fmt.Errorf("unknown parser %q (want %s or %s)", p, types.ParserFence, types.ParserMarkdown)
	}
}
