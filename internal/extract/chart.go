// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

// chartRule pairs a predicate over lower-cased source with the label it yields.
type chartRule struct {
	match func(lower string) bool
	label types.ChartType
}

func containsAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return true
			}
		}
		return false
	}
}

// chartRules is evaluated top to bottom and the first match wins. The order
// is part of the output naming contract: "flowchart" must precede "graph",
// and since "gitgraph" contains "graph" a gitGraph diagram is named graph.
var chartRules = []chartRule{
	{containsAny("flowchart"), types.ChartFlowchart},
	{containsAny("graph"), types.ChartGraph},
	{containsAny("sequencediagram", "sequence"), types.ChartSequence},
	{containsAny("gantt"), types.ChartGantt},
	{containsAny("pie"), types.ChartPie},
	{containsAny("journey"), types.ChartJourney},
	{containsAny("gitgraph"), types.ChartGitGraph},
	{containsAny("classdiagram", "class"), types.ChartClass},
	{containsAny("statediagram", "state"), types.ChartState},
}

// Classify infers the chart type of a Mermaid source by keyword.
// Sources matching no rule are labelled diagram.
func Classify(source string) types.ChartType {
	lower := strings.ToLower(source)
	for _, r := range chartRules {
		if r.match(lower) {
			return r.label
		}
	}
	return types.ChartDiagram
}
