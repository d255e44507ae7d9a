// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the addnotespace CLI.
//
// The root command pads a single PDF (--file) or every PDF in a directory
// (--directory). Subcommands manage stored defaults, check for updates,
// list past runs and preview margins.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/addnotespace/internal/defaults"
	"github.com/pdiddy/addnotespace/internal/journal"
	"github.com/pdiddy/addnotespace/internal/logging"
	"github.com/pdiddy/addnotespace/internal/secrets"
	"github.com/pdiddy/addnotespace/internal/updates"
	"github.com/pdiddy/addnotespace/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// errReported marks failures whose details were already printed.
var errReported = errors.New("request not processed")

var (
	cfg       types.Config
	logger    = logrus.New()
	logCloser io.Closer
)

// rootCmd is the base command for the addnotespace CLI.
var rootCmd = &cobra.Command{
	Use:   "addnotespace",
	Short: "Add white space to your PDF files",
	Long: `addnotespace enlarges every page of a PDF by a margin on each side, so
there is room for handwritten or digital notes. Margins are given in percent
of the page size.

Pad one file with --file, or every PDF in a folder with --directory. Values
not given on the command line come from the stored defaults (see
"addnotespace defaults").`,
	Example: `  addnotespace -f paper.pdf -o paper_notes.pdf -r 40
  addnotespace -d ./lectures -s _notes -t 5 -b 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, err := secrets.LoadDotenv(); err != nil {
			return err
		} else if path != "" {
			// Environment changed; let viper see the new values.
			viper.AutomaticEnv()
		}

		c, err := loadConfig()
		if err != nil {
			return err
		}
		cfg = c

		l, closer, err := logging.New(cfg.LogConfig, os.Stderr)
		if err != nil {
			return err
		}
		logger, logCloser = l, closer
		if used := viper.ConfigFileUsed(); used != "" {
			logger.WithField("file", used).Info("using config file")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCloser != nil {
			return logCloser.Close()
		}
		return nil
	},
	RunE: runPad,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./addnotespace.yaml or ~/.config/addnotespace/addnotespace.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("axes", "", "margin axis mapping: natural or legacy")
	viper.BindPFlag("log_level", pf.Lookup("log-level"))
	viper.BindPFlag("axes", pf.Lookup("axes"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("addnotespace")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "addnotespace"))
		}
	}

	viper.SetEnvPrefix("ADDNOTESPACE")
	viper.AutomaticEnv()

	dataDir := appDir()
	viper.SetDefault("log_level", logging.DefaultLevel.String())
	viper.SetDefault("log_file", filepath.Join(dataDir, logging.FileName))
	viper.SetDefault("defaults_file", filepath.Join(dataDir, defaults.FileName))
	viper.SetDefault("journal_file", filepath.Join(dataDir, journal.FileName))
	viper.SetDefault("secrets_dir", filepath.Join(dataDir, "secrets"))
	viper.SetDefault("axes", string(types.AxisNatural))
	viper.SetDefault("repository", updates.DefaultRepository)
	viper.SetDefault("continue_on_error", false)
	viper.SetDefault("strict", false)

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		fmt.Fprintln(os.Stderr, "warning: reading config:", err)
	}
}

// appDir returns the per-user directory for the defaults file, journal and
// log. It falls back to the working directory.
func appDir() string {
	if p, err := defaults.DefaultPath(); err == nil {
		return filepath.Dir(p)
	}
	return "."
}

// loadConfig decodes viper settings into a Config.
func loadConfig() (types.Config, error) {
	var c types.Config
	if err := viper.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	axes, err := types.ParseAxisMode(string(c.Axes))
	if err != nil {
		return c, fmt.Errorf("config axes: %w", err)
	}
	c.Axes = axes
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
