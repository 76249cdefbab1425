// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs documents through extraction, remote rendering, and
// image output, one fragment at a time.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/mermaid-render/internal/extract"
	"github.com/pdiddy/mermaid-render/internal/output"
	"github.com/pdiddy/mermaid-render/internal/render"
	"github.com/pdiddy/mermaid-render/pkg/types"
)

// Recorder receives every fragment outcome as it happens. The history store
// implements it.
type Recorder interface {
	RecordFragment(ctx context.Context, doc string, f types.FragmentOutcome) error
}

// RunResult aggregates the outcome of a run across all documents.
type RunResult struct {
	Documents []types.DocumentOutcome
	Attempted int
	Converted int
}

// Failed returns the number of fragments that were attempted but not written.
func (r RunResult) Failed() int {
	return r.Attempted - r.Converted
}

// Skipped returns the number of documents that could not be read.
func (r RunResult) Skipped() int {
	n := 0
	for _, d := range r.Documents {
		if d.Status == types.DocumentSkipped {
			n++
		}
	}
	return n
}

// HasFailures reports whether any fragment failed or any document was skipped.
func (r RunResult) HasFailures() bool {
	return r.Failed() > 0 || r.Skipped() > 0
}

// Runner processes documents sequentially. Progress lines go to Out;
// diagnostics go to Log.
type Runner struct {
	Renderer render.Renderer
	Extract  extract.Func
	Namer    output.Namer
	Delay    time.Duration
	Out      io.Writer
	Log      logrus.FieldLogger
	Recorder Recorder

	sleep func(time.Duration)
}

// New builds a Runner from cfg. It fails only when cfg names an unknown parser.
func New(r render.Renderer, cfg types.RenderConfig, w io.Writer, log logrus.FieldLogger) (*Runner, error) {
	fn, err := extract.ForParser(cfg.Parser)
	if err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Runner{
		Renderer: r,
		Extract:  fn,
		Namer:    output.Namer{Dir: cfg.OutputDir},
		Delay:    cfg.Delay,
		Out:      w,
		Log:      log,
		sleep:    time.Sleep,
	}, nil
}

// Document renders every Mermaid block in the document at path. Fragments
// are handled in order with Delay between consecutive renders; no pause
// follows the last one. A document that cannot be read is reported as
// skipped. Cancelling ctx stops the loop before the next fragment.
func (r *Runner) Document(ctx context.Context, path string) types.DocumentOutcome {
	outcome := types.DocumentOutcome{Path: path}
	fmt.Fprintf(r.Out, "\nprocessing: %s\n", path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(r.Out, "  failed:  %s (%v)\n", path, err)
		r.Log.WithError(err).WithField("document", path).Warn("document skipped")
		outcome.Status = types.DocumentSkipped
		outcome.Err = err.Error()
		return outcome
	}

	frags := r.Extract(string(data))
	if len(frags) == 0 {
		fmt.Fprintf(r.Out, "  no Mermaid blocks found\n")
		outcome.Status = types.DocumentNoFragments
		return outcome
	}
	fmt.Fprintf(r.Out, "  found %d Mermaid block(s)\n", len(frags))

	outcome.Status = types.DocumentConverted
	for i, frag := range frags {
		if ctx.Err() != nil {
			break
		}
		if i > 0 && r.Delay > 0 {
			r.pause(r.Delay)
		}

		fo := r.fragment(ctx, path, frag, len(frags))
		outcome.Fragments = append(outcome.Fragments, fo)

		if r.Recorder != nil {
			// The attempt already happened, so record it even when the run
			// is being cancelled.
			if err := r.Recorder.RecordFragment(context.WithoutCancel(ctx), path, fo); err != nil {
				r.Log.WithError(err).Warn("recording fragment outcome")
			}
		}
	}

	fmt.Fprintf(r.Out, "  done: %d/%d diagrams converted\n", outcome.Converted(), outcome.Attempted())
	return outcome
}

func (r *Runner) fragment(ctx context.Context, doc string, frag types.Fragment, total int) types.FragmentOutcome {
	fo := types.FragmentOutcome{
		Position:  frag.Position,
		ChartType: extract.Classify(frag.Source),
	}
	log := r.Log.WithFields(logrus.Fields{
		"document": doc,
		"position": frag.Position,
		"chart":    fo.ChartType,
	})

	fmt.Fprintf(r.Out, "  rendering: block %d/%d (%s, %d chars) %s\n",
		frag.Position, total, fo.ChartType, len(frag.Source), preview(frag.Source))

	data, err := r.Renderer.Render(ctx, frag.Source)
	if err != nil {
		fmt.Fprintf(r.Out, "  failed:  block %d (%v)\n", frag.Position, err)
		log.WithError(err).Warn("render failed")
		fo.Status = types.FragmentRenderFailed
		fo.Err = err.Error()
		return fo
	}
	fo.Bytes = len(data)

	path, err := r.Namer.Resolve(doc, frag.Position, frag.Source)
	if err == nil {
		fo.OutputPath = path
		err = output.Write(path, data)
	}
	if err != nil {
		fmt.Fprintf(r.Out, "  failed:  block %d (%v)\n", frag.Position, err)
		log.WithError(err).Warn("write failed")
		fo.Status = types.FragmentWriteFailed
		fo.Err = err.Error()
		return fo
	}

	fmt.Fprintf(r.Out, "  converted: %s (%d bytes)\n", path, len(data))
	log.WithFields(logrus.Fields{"output": path, "bytes": len(data)}).Debug("fragment converted")
	fo.Status = types.FragmentConverted
	return fo
}

// Run processes each document in order and prints a summary. Failures in
// one document never stop the run; only ctx cancellation does.
func (r *Runner) Run(ctx context.Context, docs []string) RunResult {
	var result RunResult
	for _, doc := range docs {
		if ctx.Err() != nil {
			fmt.Fprintf(r.Out, "\ninterrupted: %v\n", ctx.Err())
			break
		}
		outcome := r.Document(ctx, doc)
		result.Documents = append(result.Documents, outcome)
		result.Attempted += outcome.Attempted()
		result.Converted += outcome.Converted()
	}

	fmt.Fprintf(r.Out, "\nRun summary: %d/%d diagrams converted across %d document(s)",
		result.Converted, result.Attempted, len(result.Documents))
	if n := result.Skipped(); n > 0 {
		fmt.Fprintf(r.Out, ", %d skipped", n)
	}
	fmt.Fprintln(r.Out)
	return result
}

func (r *Runner) pause(d time.Duration) {
	if r.sleep == nil {
		time.Sleep(d)
		return
	}
	r.sleep(d)
}

// preview returns the first 50 runes of source on one line.
func preview(source string) string {
	const limit = 50
	runes := []rune(source)
	if len(runes) > limit {
		runes = append(runes[:limit], '.', '.', '.')
	}
	out := make([]rune, len(runes))
	for i, c := range runes {
		if c == '\n' || c == '\r' || c == '\t' {
			c = ' '
		}
		out[i] = c
	}
	return fmt.Sprintf("%q", string(out))
}
