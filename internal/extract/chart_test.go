// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"testing"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   types.ChartType
	}{
		{"flowchart", "flowchart LR\n  A --> B", types.ChartFlowchart},
		{"flowchart beats graph", "flowchart TD\n  subgraph one\n  end", types.ChartFlowchart},
		{"graph", "graph TD; A-->B", types.ChartGraph},
		{"sequence", "sequenceDiagram\n  Alice->>Bob: Hello", types.ChartSequence},
		{"gantt", "gantt\n  title Plan", types.ChartGantt},
		{"pie", "pie title Pets\n  \"Dogs\" : 386", types.ChartPie},
		{"journey", "journey\n  title My day", types.ChartJourney},
		{"gitGraph resolves to graph", "gitGraph\n  commit", types.ChartGraph},
		{"class", "classDiagram\n  Animal <|-- Duck", types.ChartClass},
		{"state", "stateDiagram-v2\n  [*] --> Still", types.ChartState},
		{"case insensitive", "GANTT\n  section A", types.ChartGantt},
		{"fallback", "erDiagram\n  CUSTOMER ||--o{ ORDER : places", types.ChartDiagram},
		{"empty", "", types.ChartDiagram},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.source); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestClassify_NoKeywordIsDiagram(t *testing.T) {
	for _, src := range []string{
		"mindmap\n  root((x))",
		"timeline\n  2024 : launch",
		"quadrantChart\n  x-axis Low --> High",
		"C4Context\n  Person(a, \"A\")",
	} {
		if got := Classify(src); got != types.ChartDiagram {
			t.Errorf("Classify(%q) = %q, want diagram", src, got)
		}
	}
}
