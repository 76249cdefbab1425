// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FragmentStatus is the result of rendering and saving one fragment.
type FragmentStatus string

const (
	FragmentConverted    FragmentStatus = "converted"
	FragmentRenderFailed FragmentStatus = "render_failed"
	FragmentWriteFailed  FragmentStatus = "write_failed"
)

// FragmentOutcome records what happened to a single fragment.
type FragmentOutcome struct {
	Position   int            `json:"position" yaml:"position"`
	ChartType  ChartType      `json:"chart_type" yaml:"chart_type"`
	OutputPath string         `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Bytes      int            `json:"bytes" yaml:"bytes"`
	Status     FragmentStatus `json:"status" yaml:"status"`
	Err        string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// DocumentStatus is the per-document variant of a run.
type DocumentStatus string

const (
	// DocumentConverted means fragments were found and each was attempted.
	// Individual fragments may still have failed.
	DocumentConverted DocumentStatus = "converted"
	// DocumentNoFragments means the document held no Mermaid blocks.
	DocumentNoFragments DocumentStatus = "no_fragments"
	// DocumentSkipped means the document could not be read.
	DocumentSkipped DocumentStatus = "skipped"
)

// DocumentOutcome records the processing of one document.
type DocumentOutcome struct {
	Path      string            `json:"path" yaml:"path"`
	Status    DocumentStatus    `json:"status" yaml:"status"`
	Fragments []FragmentOutcome `json:"fragments,omitempty" yaml:"fragments,omitempty"`
	Err       string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Attempted returns the number of fragments the document contained.
func (d DocumentOutcome) Attempted() int {
	return len(d.Fragments)
}

// Converted returns the number of fragments written to disk.
func (d DocumentOutcome) Converted() int {
	n := 0
	for _, f := range d.Fragments {
		if f.Status == FragmentConverted {
			n++
		}
	}
	return n
}
