// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/addnotespace/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past runs from the run journal",
	Long: `History reads the run journal and lists the most recent runs. Use --run
with a run ID to list the files of one run.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.JournalFile == "" {
		return fmt.Errorf("the run journal is disabled (journal_file is empty)")
	}
	if _, err := os.Stat(cfg.JournalFile); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	store, err := journal.Open(cfg.JournalFile)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runID, _ := cmd.Flags().GetString("run")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	out := cmd.OutOrStdout()

	if runID != "" {
		entries, err := store.Run(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no run with ID %s", runID)
		}
		if asYAML {
			return encodeYAML(out, entries)
		}
		fmt.Fprintf(out, "%-7s  %5s  %-40s  %s\n", "Status", "Pages", "Input", "Output / Error")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, e := range entries {
			detail := e.Output
			if e.Error != "" {
				detail = e.Error
			}
			fmt.Fprintf(out, "%-7s  %5d  %-40s  %s\n", e.Status, e.Pages, truncate(e.Input, 40), detail)
		}
		return nil
	}

	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if asYAML {
		return encodeYAML(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "%-36s  %-19s  %5s  %6s  %5s\n", "Run", "Finished", "Files", "Failed", "Pages")
	fmt.Fprintln(out, strings.Repeat("-", 80))
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-19s  %5d  %6d  %5d\n",
			r.RunID, r.FinishedAt.Local().Format(time.DateTime), r.Files, r.Failed, r.Pages)
	}
	return nil
}

func encodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// truncate shortens s to n bytes, marking the cut with "...".
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n+3:]
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to list (0 for all)")
	historyCmd.Flags().String("run", "", "list the files of one run")
	historyCmd.Flags().Bool("yaml", false, "print YAML instead of a table")

	rootCmd.AddCommand(historyCmd)
}
