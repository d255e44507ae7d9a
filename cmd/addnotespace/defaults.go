// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/addnotespace/internal/console"
	"github.com/pdiddy/addnotespace/internal/defaults"
	"github.com/pdiddy/addnotespace/internal/preview"
	"github.com/pdiddy/addnotespace/internal/validate"
	"github.com/pdiddy/addnotespace/pkg/types"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show or change the stored default values",
	Long: `Defaults manages the JSON file holding the margins, folders and file
ending used when a flag is not given.`,
}

var defaultsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored defaults as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := defaults.NewStore(cfg.DefaultsFile).Load()
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(d, "", "    ")
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", cfg.DefaultsFile, data)
		return nil
	},
}

var defaultsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change stored defaults",
	Long: `Set updates only the values given as flags and keeps the others.
Margins must be whole numbers of at least 0; the ratio has the form W:H.`,
	Example: `  addnotespace defaults set --top 5 --bot 5 --bulk-suffix _notes
  addnotespace defaults set --ratio 16:9`,
	RunE: runDefaultsSet,
}

func runDefaultsSet(cmd *cobra.Command, args []string) error {
	store := defaults.NewStore(cfg.DefaultsFile)
	current, err := store.Load()
	if err != nil {
		return err
	}

	form := validate.FormFromPercent(current.Margins())
	applyMarginFlags(cmd, &form)
	margins, issues := form.Parse()

	ratio := stringFlag(cmd, "ratio", current.PreviewSketchRatio)
	if ratio != "" {
		if _, err := preview.ParseRatio(ratio); err != nil {
			issues = append(issues, validate.Issue{Field: "Ratio", Message: err.Error()})
		}
	}
	if len(issues) > 0 {
		console.PrintIssues(cmd.OutOrStdout(), issues)
		return errReported
	}

	updated, err := store.Update(func(d *types.Defaults) {
		d.MarginTop, d.MarginRight, d.MarginBot, d.MarginLeft = margins.Top, margins.Right, margins.Bot, margins.Left
		d.BulkFolder = stringFlag(cmd, "bulk-folder", d.BulkFolder)
		d.BulkNameEnding = stringFlag(cmd, "bulk-suffix", d.BulkNameEnding)
		d.SingleFileFolder = stringFlag(cmd, "file", d.SingleFileFolder)
		d.SingleFileTargetFolder = stringFlag(cmd, "output", d.SingleFileTargetFolder)
		d.PreviewSketchRatio = ratio
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved defaults to %s (margins %s)\n", store.Path(), updated.Margins())
	return nil
}

func init() {
	f := defaultsSetCmd.Flags()
	addMarginFlags(f)
	f.String("bulk-folder", "", "default folder for directory runs")
	f.StringP("bulk-suffix", "s", "", "default file ending for directory runs")
	f.StringP("file", "f", "", "default source file for single runs")
	f.StringP("output", "o", "", "default target file for single runs")
	f.String("ratio", "", "aspect ratio of the preview sketch, e.g. 16:9")

	defaultsCmd.AddCommand(defaultsShowCmd)
	defaultsCmd.AddCommand(defaultsSetCmd)
	rootCmd.AddCommand(defaultsCmd)
}
