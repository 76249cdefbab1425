// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

const mermaidLanguage = "mermaid"

// MarkdownFragments parses text as CommonMark and returns the fenced code
// blocks whose language is mermaid. Unlike Fragments it honours Markdown
// structure: tilde fences and blocks nested in lists or block quotes are
// found, while a mermaid fence shown inside another code block is not.
// Blocks whose closing fence is missing are ignored.
func MarkdownFragments(src string) []types.Fragment {
	source := []byte(normalizeNewlines(src))
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var frags []types.Fragment
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if string(block.Language(source)) != mermaidLanguage || !isClosed(block, source) {
			return ast.WalkSkipChildren, nil
		}

		var body bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}
		frags = append(frags, types.Fragment{
			Source:   strings.TrimSpace(body.String()),
			Position: len(frags) + 1,
		})
		return ast.WalkSkipChildren, nil
	})
	return frags
}

// isClosed reports whether the line following the block body closes it:
// inside the same block quotes and list items, a run of the opening fence
// character at least as long as the opening fence, with nothing after it.
// goldmark lets an unterminated fence run to the end of its container, so
// the source is inspected directly.
func isClosed(block *ast.FencedCodeBlock, source []byte) bool {
	if block.Info == nil {
		return false
	}
	infoStart := block.Info.Segment.Start
	lineStart := bytes.LastIndexByte(source[:infoStart], '\n') + 1
	opening := bytes.TrimRight(source[lineStart:infoStart], " \t")
	if len(opening) == 0 {
		return false
	}
	char := opening[len(opening)-1]
	prefix := bytes.TrimRight(opening, string(char))
	fenceLen := len(opening) - len(prefix)

	var end int
	if lines := block.Lines(); lines.Len() > 0 {
		end = lines.At(lines.Len() - 1).Stop
	} else {
		nl := bytes.IndexByte(source[infoStart:], '\n')
		if nl < 0 {
			return false
		}
		end = infoStart + nl + 1
	}
	if end >= len(source) {
		return false
	}

	line := source[end:]
	if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	rest, ok := stripContainer(line, containerOf(prefix))
	if !ok {
		return false
	}
	fence := bytes.TrimLeft(rest, " ")
	if len(rest)-len(fence) > 3 {
		return false
	}
	run := len(fence) - len(bytes.TrimLeft(fence, string(char)))
	return run >= fenceLen && len(bytes.TrimRight(fence[run:], " \t")) == 0
}

// containerOf returns the part of an opening fence's prefix that belongs to
// enclosing block quotes and list items, with list markers blanked out so it
// can be matched against continuation lines.
func containerOf(prefix []byte) []byte {
	width := 0
	for i := 0; i < len(prefix); {
		j := i
		for j < len(prefix) && prefix[j] == ' ' {
			j++
		}
		if j == len(prefix) {
			break
		}
		switch c := prefix[j]; {
		case c == '>':
			j++
			if j < len(prefix) && prefix[j] == ' ' {
				j++
			}
		case c == '-' || c == '*' || c == '+':
			j++
			for j < len(prefix) && prefix[j] == ' ' {
				j++
			}
		case c >= '0' && c <= '9':
			for j < len(prefix) && prefix[j] >= '0' && prefix[j] <= '9' {
				j++
			}
			if j < len(prefix) && (prefix[j] == '.' || prefix[j] == ')') {
				j++
			}
			for j < len(prefix) && prefix[j] == ' ' {
				j++
			}
		default:
			return blankMarkers(prefix[:width])
		}
		i = j
		width = j
	}
	return blankMarkers(prefix[:width])
}

func blankMarkers(container []byte) []byte {
	out := bytes.Clone(container)
	for i, c := range out {
		if c != '>' {
			out[i] = ' '
		}
	}
	return out
}

// stripContainer removes container from the start of line. A quote marker
// may be preceded by indentation and followed by an optional space; list
// content must be indented by the full width.
func stripContainer(line, container []byte) ([]byte, bool) {
	for k := 0; k < len(container); k++ {
		if container[k] == '>' {
			line = bytes.TrimLeft(line, " ")
			if len(line) == 0 || line[0] != '>' {
				return nil, false
			}
			line = line[1:]
			if k+1 < len(container) && container[k+1] == ' ' {
				k++
				line = bytes.TrimPrefix(line, []byte(" "))
			}
			continue
		}
		if len(line) == 0 || line[0] != ' ' {
			return nil, false
		}
		line = line[1:]
	}
	return line, true
}
