// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/addnotespace/internal/batch"
	"github.com/pdiddy/addnotespace/internal/console"
	"github.com/pdiddy/addnotespace/internal/defaults"
	"github.com/pdiddy/addnotespace/internal/journal"
	"github.com/pdiddy/addnotespace/internal/margin"
	"github.com/pdiddy/addnotespace/internal/validate"
	"github.com/pdiddy/addnotespace/pkg/types"
)

func init() {
	f := rootCmd.Flags()
	f.StringP("file", "f", "", "a PDF file to add margins to")
	f.StringP("directory", "d", "", "a directory where whitespace gets added to each PDF")
	f.StringP("bulk-suffix", "s", "", "suffix added to each new file name in a directory run")
	f.StringP("output", "o", "", "output file for a single file run")
	addMarginFlags(f)

	f.Bool("continue-on-error", false, "keep going after a file fails")
	f.Bool("strict", false, "reject PDFs that do not pass strict validation")
	f.String("report", "", "write a YAML report of the run to this file")
	f.Bool("save-defaults", false, "store the values of this run as the new defaults")

	viper.BindPFlag("continue_on_error", f.Lookup("continue-on-error"))
	viper.BindPFlag("strict", f.Lookup("strict"))
}

// runPad validates the request, then pads the file or directory.
func runPad(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	dir, _ := cmd.Flags().GetString("directory")
	if file == "" && dir == "" {
		return cmd.Help()
	}

	store := defaults.NewStore(cfg.DefaultsFile)
	stored, err := store.Load()
	if err != nil {
		logger.WithError(err).Warn("ignoring unreadable defaults")
		stored = types.Defaults{}
	}

	form := validate.FormFromPercent(stored.Margins())
	applyMarginFlags(cmd, &form)
	suffix := stringFlag(cmd, "bulk-suffix", stored.BulkNameEnding)

	var (
		jobs    []types.Job
		percent types.PercentMargins
		issues  []validate.Issue
		remember func(*types.Defaults)
	)
	if file != "" {
		in := &validate.Single{Form: form, Source: file, Target: stringFlag(cmd, "output", ""), Suffix: suffix}
		issues = validate.ValidateSingle(in)
		jobs, percent = []types.Job{in.Job()}, in.Margins
		remember = func(d *types.Defaults) {
			d.SingleFileFolder = in.Source
			d.SingleFileTargetFolder = in.Target
		}
	} else {
		in := &validate.Bulk{Form: form, Folder: dir, Suffix: suffix}
		issues = validate.ValidateBulk(in)
		jobs, percent = in.Jobs, in.Margins
		remember = func(d *types.Defaults) {
			d.BulkFolder = in.Folder
			d.BulkNameEnding = in.Suffix
		}
	}

	if len(issues) > 0 {
		console.PrintIssues(cmd.OutOrStdout(), issues)
		if validate.HasErrors(issues) {
			return errReported
		}
		return nil
	}

	if save, _ := cmd.Flags().GetBool("save-defaults"); save {
		_, err := store.Update(func(d *types.Defaults) {
			d.MarginTop, d.MarginRight, d.MarginBot, d.MarginLeft = percent.Top, percent.Right, percent.Bot, percent.Left
			remember(d)
		})
		if err != nil {
			logger.WithError(err).Warn("saving defaults failed")
		} else {
			logger.WithField("file", store.Path()).Info("defaults saved")
		}
	}

	return pad(cmd.Context(), cmd, types.RunRequest{
		Jobs:            jobs,
		Margins:         percent.Fractions(),
		ContinueOnError: cfg.ContinueOnError,
	})
}

// pad runs the batch with console progress and the optional journal and
// report.
func pad(ctx context.Context, cmd *cobra.Command, req types.RunRequest) error {
	opts := []batch.Option{batch.WithLogger(logger)}
	if cfg.JournalFile != "" {
		j, err := journal.Open(cfg.JournalFile)
		if err != nil {
			logger.WithError(err).Warn("run journal unavailable")
		} else {
			defer j.Close()
			opts = append(opts, batch.WithRecorder(j))
		}
	}

	transformer := margin.Transformer{Options: margin.Options{Axes: cfg.Axes, Strict: cfg.Strict}}
	runner := batch.NewRunner(transformer, opts...)

	out := cmd.OutOrStdout()
	printer := console.NewPrinter(out)
	res, runErr := runner.Run(ctx, req, printer.Observe)
	printer.Finish()

	logger.WithFields(logrus.Fields{
		"run_id": res.RunID,
		"done":   res.Done,
		"failed": res.Failed,
		"axes":   cfg.Axes,
	}).Info("run finished")

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if err := batch.WriteReport(filepath.Clean(path), res); err != nil {
			logger.WithError(err).Error("writing report failed")
		} else {
			fmt.Fprintf(out, "Report written to %s\n", path)
		}
	}
	if len(req.Jobs) > 1 || res.HasFailures() {
		console.PrintSummary(out, res)
	}

	if runErr != nil {
		logger.WithError(runErr).Error("run failed")
		return runErr
	}
	if res.HasFailures() {
		return fmt.Errorf("%d of %d PDFs failed", res.Failed, res.Total)
	}
	return nil
}
