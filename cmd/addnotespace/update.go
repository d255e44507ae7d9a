// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/addnotespace/internal/secrets"
	"github.com/pdiddy/addnotespace/internal/updates"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check GitHub for a newer release",
	Long: `Update asks GitHub for the latest release of addnotespace and reports
whether it is newer than the running version. Nothing is downloaded.

A token from the secrets directory (github-token) or GITHUB_TOKEN raises the
API rate limit.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	token := cfg.Token
	if token == "" {
		token = secrets.GitHubToken(cfg.SecretsDir)
	}

	checker, err := updates.NewChecker(cfg.Repository, version, token, updates.WithLogger(logger))
	if err != nil {
		return err
	}
	rel, newer, err := checker.CheckForUpdate(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !newer {
		fmt.Fprintf(out, "addnotespace %s is up to date.\n", version)
		return nil
	}
	color.New(color.FgGreen, color.Bold).Fprintf(out, "A new version is available: %s\n", rel.Version)
	if rel.URL != "" {
		fmt.Fprintf(out, "Download it from %s\n", rel.URL)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
