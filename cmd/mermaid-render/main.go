// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mermaid-render CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd renders every Mermaid block under a directory (or in one file).
var rootCmd = &cobra.Command{
	Use:   "mermaid-render",
	Short: "Render Mermaid diagrams embedded in Markdown files to PNG",
	Long: `mermaid-render scans Markdown files for ` + "```mermaid" + ` code blocks, sends each
block to a Kroki-compatible rendering service, and saves the returned PNG.

By default images for docs/guide.md land in docs/guide_mermaid_images/ as
guide_{type}_{nn}.png. Use --output to collect every image in one directory.`,
	Example: `  mermaid-render                     # process the current directory
  mermaid-render -d /path/to/docs    # process a directory tree
  mermaid-render -f README.md        # process a single file
  mermaid-render -o images           # write all images to one directory`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRender,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./mermaid-render.yaml or ~/.config/mermaid-render/mermaid-render.yaml)")
	pf.String("history", "", "SQLite file recording every run and render attempt")
	pf.String("log-level", "warn", "diagnostic log level: debug, info, warn, error")
	pf.String("log-file", "", "write diagnostic logs to a rotating file instead of stderr")

	f := rootCmd.Flags()
	f.StringP("directory", "d", ".", "directory to scan for Markdown files")
	f.StringP("file", "f", "", "process a single Markdown file (takes precedence over --directory)")
	f.StringP("output", "o", "", "write every image to this directory instead of per-document folders")
	f.String("endpoint", defaultEndpoint, "rendering service URL")
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")
	f.Duration("delay", defaultDelay, "pause between renders of consecutive blocks in one document")
	f.Int("retries", 0, "extra attempts after an HTTP 429 response")
	f.String("user-agent", defaultUserAgent, "User-Agent header sent to the rendering service")
	f.String("parser", "fence", "block extractor: fence (literal ```mermaid lines) or markdown (CommonMark)")
	f.StringSlice("extensions", []string{".md"}, "file extensions treated as Markdown")
	f.String("report", "", "write a YAML run report to this path")
	f.Bool("fail-on-error", false, "exit non-zero when any diagram fails or any file is skipped")

	bindFlags(rootCmd)
}

// bindFlags binds every flag of cmd to a viper key with dashes replaced by
// underscores, so config files and MERMAID_RENDER_* variables can set them.
func bindFlags(cmd *cobra.Command) {
	bind := func(name string) {
		key := strings.ReplaceAll(name, "-", "_")
		if fl := cmd.Flags().Lookup(name); fl != nil {
			_ = viper.BindPFlag(key, fl)
			return
		}
		_ = viper.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
	}
	for _, name := range []string{
		"history", "log-level", "log-file",
		"directory", "file", "output", "endpoint", "timeout", "delay", "retries",
		"user-agent", "parser", "extensions", "report", "fail-on-error",
	} {
		bind(name)
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mermaid-render")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mermaid-render"))
		}
	}

	viper.SetEnvPrefix("MERMAID_RENDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
