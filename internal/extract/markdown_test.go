// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

func TestMarkdownFragments(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "backtick fence",
			input: "# Doc\n\n```mermaid\ngraph TD; A-->B\n```\n",
			want:  []string{"graph TD; A-->B"},
		},
		{
			name:  "tilde fence",
			input: "~~~mermaid\npie\n~~~\n",
			want:  []string{"pie"},
		},
		{
			name:  "info string with attributes",
			input: "```mermaid title=\"x\"\ngantt\n```\n",
			want:  []string{"gantt"},
		},
		{
			name:  "inside list item",
			input: "- step one\n\n  ```mermaid\n  journey\n  ```\n",
			want:  []string{"journey"},
		},
		{
			name:  "inside block quote",
			input: "> ```mermaid\n> classDiagram\n> ```\n",
			want:  []string{"classDiagram"},
		},
		{
			name:  "example nested in a markdown fence is not a block",
			input: "````markdown\n```mermaid\ngraph\n```\n````\n",
			want:  nil,
		},
		{
			name:  "unterminated fence ignored",
			input: "```mermaid\ngraph TD; A-->B\n",
			want:  nil,
		},
		{
			name:  "closing fence at end of input without newline",
			input: "```mermaid\ngraph TD; A-->B\n```",
			want:  []string{"graph TD; A-->B"},
		},
		{
			name:  "fence left open in a list item",
			input: "- ```mermaid\n  graph TD; A-->B\n```js\nx\n```\n",
			want:  nil,
		},
		{
			name:  "fence left open in a block quote",
			input: "> ```mermaid\n> pie\n```\n",
			want:  nil,
		},
		{
			name:  "longer closing fence",
			input: "```mermaid\npie\n`````\n",
			want:  []string{"pie"},
		},
		{
			name:  "shorter closing fence does not close",
			input: "````mermaid\npie\n```\n",
			want:  nil,
		},
		{
			name:  "closing fence in a numbered list item",
			input: "1. ```mermaid\n   gantt\n   ```\n",
			want:  []string{"gantt"},
		},
		{
			name:  "other languages ignored",
			input: "```js\nconst x = 1\n```\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags := MarkdownFragments(tt.input)
			var got []string
			for i, f := range frags {
				assert.Equal(t, i+1, f.Position)
				got = append(got, f.Source)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdownFragments_MatchesFenceRuleOnPlainDocuments(t *testing.T) {
	doc := "# Architecture\n\n```mermaid\nflowchart LR\n  A --> B\n```\n\nSome text.\n\n```mermaid\nsequenceDiagram\n  A->>B: call\n```\n"

	want := Fragments(doc)
	got := MarkdownFragments(doc)

	require.Len(t, got, 2)
	assert.Equal(t, want, got)
	assert.Equal(t, types.ChartFlowchart, Classify(got[0].Source))
	assert.Equal(t, types.ChartSequence, Classify(got[1].Source))
}
