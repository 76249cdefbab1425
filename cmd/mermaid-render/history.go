// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mermaid-render/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs recorded with --history",
	Long: `History reads the SQLite file written by runs started with --history and
prints the most recent runs with their totals.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to show (0 for all)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history")
	if path == "" {
		return fmt.Errorf("provide the history database with --history")
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tINPUT\tDOCS\tCONVERTED\tFAILED\tDURATION")
	for _, r := range runs {
		duration := "-"
		if !r.Finished.IsZero() {
			duration = r.Finished.Sub(r.Started).Round(time.Millisecond).String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d/%d\t%d\t%s\n",
			r.ID, r.Started.Local().Format(time.DateTime), r.Input,
			r.Documents, r.Converted, r.Attempted, r.Failed(), duration)
	}
	return tw.Flush()
}
