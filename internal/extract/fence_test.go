// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

func TestFragments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []types.Fragment
	}{
		{
			name:  "no blocks",
			input: "# Title\n\nJust prose.\n",
			want:  nil,
		},
		{
			name:  "single block trimmed",
			input: "intro\n```mermaid\n  graph TD; A-->B  \n```\noutro\n",
			want:  []types.Fragment{{Source: "graph TD; A-->B", Position: 1}},
		},
		{
			name:  "multi-line body",
			input: "```mermaid\nsequenceDiagram\n  Alice->>Bob: hi\n```\n",
			want:  []types.Fragment{{Source: "sequenceDiagram\n  Alice->>Bob: hi", Position: 1}},
		},
		{
			name:  "other languages ignored",
			input: "```go\nfunc main() {}\n```\n```mermaid\npie\n```\n",
			want:  []types.Fragment{{Source: "pie", Position: 1}},
		},
		{
			name:  "unterminated block ignored",
			input: "```mermaid\ngraph TD; A-->B\n",
			want:  nil,
		},
		{
			name:  "crlf line endings",
			input: "```mermaid\r\ngantt\r\n```\r\n",
			want:  []types.Fragment{{Source: "gantt", Position: 1}},
		},
		{
			name:  "non-greedy across blocks",
			input: "```mermaid\ngraph A\n```\ntext\n```mermaid\npie B\n```\n",
			want: []types.Fragment{
				{Source: "graph A", Position: 1},
				{Source: "pie B", Position: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fragments(tt.input))
		})
	}
}

func TestFragments_PositionsInDocumentOrder(t *testing.T) {
	for _, n := range []int{1, 2, 5, 12} {
		t.Run(fmt.Sprintf("%d blocks", n), func(t *testing.T) {
			var b strings.Builder
			for i := 1; i <= n; i++ {
				fmt.Fprintf(&b, "Paragraph %d.\n\n```mermaid\ngraph TD; N%d-->M\n```\n\n", i, i)
			}

			frags := Fragments(b.String())
			require.Len(t, frags, n)
			for i, f := range frags {
				assert.Equal(t, i+1, f.Position)
				assert.Equal(t, fmt.Sprintf("graph TD; N%d-->M", i+1), f.Source)
			}
		})
	}
}

func TestForParser(t *testing.T) {
	f, err := ForParser("")
	require.NoError(t, err)
	assert.Len(t, f("```mermaid\npie\n```"), 1)

	_, err = ForParser(types.ParserMarkdown)
	require.NoError(t, err)

	_, err = ForParser("asciidoc")
	assert.Error(t, err)
}
