// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mermaid-render/pkg/types"
)

// Report is the on-disk YAML summary of a run.
type Report struct {
	Settings  ReportSettings          `yaml:"settings"`
	Documents []types.DocumentOutcome `yaml:"documents"`
	Summary   ReportSummary           `yaml:"summary"`
}

// ReportSettings records the configuration that produced the run.
type ReportSettings struct {
	Input     string        `yaml:"input"`
	Endpoint  string        `yaml:"endpoint"`
	OutputDir string        `yaml:"output_dir,omitempty"`
	Parser    string        `yaml:"parser"`
	Delay     time.Duration `yaml:"delay"`
}

// ReportSummary stores run totals and timestamps.
type ReportSummary struct {
	Documents int       `yaml:"documents"`
	Skipped   int       `yaml:"skipped"`
	Attempted int       `yaml:"attempted"`
	Converted int       `yaml:"converted"`
	Failed    int       `yaml:"failed"`
	Started   time.Time `yaml:"started"`
	Finished  time.Time `yaml:"finished"`
}

// NewReport assembles a Report from a finished run.
func NewReport(input string, cfg types.RenderConfig, result RunResult, started, finished time.Time) Report {
	parser := string(cfg.Parser)
	if parser == "" {
		parser = string(types.ParserFence)
	}
	return Report{
		Settings: ReportSettings{
			Input:     input,
			Endpoint:  cfg.Endpoint,
			OutputDir: cfg.OutputDir,
			Parser:    parser,
			Delay:     cfg.Delay,
		},
		Documents: result.Documents,
		Summary: ReportSummary{
			Documents: len(result.Documents),
			Skipped:   result.Skipped(),
			Attempted: result.Attempted,
			Converted: result.Converted,
			Failed:    result.Failed(),
			Started:   started,
			Finished:  finished,
		},
	}
}

// WriteReport saves the report as YAML at path, creating parent directories.
func WriteReport(path string, rep Report) error {
	data, err := yaml.Marshal(&rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &rep, nil
}
