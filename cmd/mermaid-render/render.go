// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mermaid-render/internal/discover"
	"github.com/pdiddy/mermaid-render/internal/history"
	"github.com/pdiddy/mermaid-render/internal/pipeline"
	"github.com/pdiddy/mermaid-render/internal/render"
	"github.com/pdiddy/mermaid-render/pkg/types"
)

const (
	defaultEndpoint  = types.DefaultEndpoint
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "mermaid-render/0.1"
)

// renderConfig assembles the run configuration from flags, config file, and
// environment.
func renderConfig() types.RenderConfig {
	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay := viper.GetDuration("delay")
	if delay < 0 {
		delay = 0
	}
	return types.RenderConfig{
		HTTPConfig: types.HTTPConfig{
			Endpoint:  viper.GetString("endpoint"),
			Timeout:   timeout,
			UserAgent: viper.GetString("user_agent"),
			Retries:   viper.GetInt("retries"),
		},
		OutputDir:  viper.GetString("output"),
		Delay:      delay,
		Parser:     types.ExtractParser(viper.GetString("parser")),
		Extensions: viper.GetStringSlice("extensions"),
	}
}

// resolveInput picks the documents to process. --file wins over
// --directory. A missing path is an error; an existing directory with no
// documents is not, and yields an empty list.
func resolveInput(cfg types.RenderConfig) (input string, docs []string, err error) {
	if file := viper.GetString("file"); file != "" {
		if !discover.Exists(file) {
			return file, nil, fmt.Errorf("file not found: %s", file)
		}
		return file, []string{file}, nil
	}

	dir := viper.GetString("directory")
	if dir == "" {
		dir = "."
	}
	if !discover.Exists(dir) {
		return dir, nil, fmt.Errorf("directory not found: %s", dir)
	}
	docs, err = discover.Documents(dir, cfg.Extensions)
	if err != nil {
		return dir, nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return dir, docs, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := renderConfig()
	w := cmd.OutOrStdout()

	log, closeLog, err := newLogger(viper.GetString("log_level"), viper.GetString("log_file"), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	input, docs, err := resolveInput(cfg)
	if err != nil {
		return err
	}

	kroki := render.NewKroki(&http.Client{Timeout: cfg.Timeout}, cfg.HTTPConfig, log)
	cfg.Endpoint = kroki.Endpoint()

	runner, err := pipeline.New(kroki, cfg, w, log)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "scanning: %s\n", input)
	fmt.Fprintf(w, "endpoint: %s\n", cfg.Endpoint)
	if cfg.OutputDir != "" {
		fmt.Fprintf(w, "output:   %s\n", cfg.OutputDir)
	}
	if len(docs) == 0 {
		fmt.Fprintln(w, "no Markdown files found")
		return nil
	}
	fmt.Fprintf(w, "found %d Markdown file(s)\n", len(docs))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	var run *history.Run
	if path := viper.GetString("history"); path != "" {
		store, err := history.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		run, err = store.BeginRun(ctx, input, cfg.Endpoint, started)
		if err != nil {
			return err
		}
		runner.Recorder = run
	}

	result := runner.Run(ctx, docs)
	finished := time.Now()

	if run != nil {
		// The run context may be cancelled by now; the totals are still worth keeping.
		if err := run.Finish(context.Background(), len(result.Documents), result.Attempted, result.Converted, finished); err != nil {
			log.WithError(err).Warn("recording run totals")
		}
	}

	if path := viper.GetString("report"); path != "" {
		rep := pipeline.NewReport(input, cfg, result, started, finished)
		if err := pipeline.WriteReport(path, rep); err != nil {
			return err
		}
		fmt.Fprintf(w, "report: %s\n", path)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}
	if viper.GetBool("fail_on_error") && result.HasFailures() {
		return fmt.Errorf("%d diagram(s) failed, %d file(s) skipped", result.Failed(), result.Skipped())
	}
	return nil
}
