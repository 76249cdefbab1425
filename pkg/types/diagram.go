// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChartType labels a diagram by the first keyword found in its source.
// It only affects output file names.
type ChartType string

const (
	ChartFlowchart ChartType = "flowchart"
	ChartGraph     ChartType = "graph"
	ChartSequence  ChartType = "sequence"
	ChartGantt     ChartType = "gantt"
	ChartPie       ChartType = "pie"
	ChartJourney   ChartType = "journey"
	ChartGitGraph  ChartType = "gitgraph"
	ChartClass     ChartType = "class"
	ChartState     ChartType = "state"
	ChartDiagram   ChartType = "diagram"
)

// Fragment is one Mermaid block taken from a document.
type Fragment struct {
	// Source is the block body with surrounding whitespace trimmed.
	Source string `json:"source" yaml:"source"`

	// Position is the 1-based ordinal of the block within its document.
	Position int `json:"position" yaml:"position"`
}
