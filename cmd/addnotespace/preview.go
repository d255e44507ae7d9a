// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/addnotespace/internal/console"
	"github.com/pdiddy/addnotespace/internal/defaults"
	"github.com/pdiddy/addnotespace/internal/preview"
	"github.com/pdiddy/addnotespace/internal/validate"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Sketch a page with the configured margins",
	Long: `Preview draws the page (#) inside its enlarged page box so the effect
of the margins can be checked before a run. Margins and ratio default to the
stored defaults.`,
	RunE: runPreview,
}

func runPreview(cmd *cobra.Command, args []string) error {
	stored, err := defaults.NewStore(cfg.DefaultsFile).Load()
	if err != nil {
		logger.WithError(err).Warn("ignoring unreadable defaults")
	}

	form := validate.FormFromPercent(stored.Margins())
	applyMarginFlags(cmd, &form)
	margins, issues := form.Parse()
	if len(issues) > 0 {
		console.PrintIssues(cmd.OutOrStdout(), issues)
		return errReported
	}

	ratio, err := preview.ParseRatio(stringFlag(cmd, "ratio", stored.PreviewSketchRatio))
	if err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ratio %s, margins %s, axes %s\n", ratio, margins, cfg.Axes)
	return preview.Render(out, preview.Compute(ratio, margins.Fractions(), cfg.Axes), width)
}

func init() {
	f := previewCmd.Flags()
	addMarginFlags(f)
	f.String("ratio", "", "page aspect ratio W:H (default from stored defaults, else 1:1.414)")
	f.Int("width", 40, "sketch width in characters")

	rootCmd.AddCommand(previewCmd)
}
