// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdiddy/addnotespace/internal/validate"
)

// marginFlags maps flag names to their shorthand and help text.
var marginFlags = []struct {
	name, short, side string
}{
	{"top", "t", "top"},
	{"right", "r", "right"},
	{"bot", "b", "bottom"},
	{"left", "l", "left"},
}

// addMarginFlags registers --top, --right, --bot and --left. Values are
// strings so that bad input reaches validation instead of the flag parser.
func addMarginFlags(fs *pflag.FlagSet) {
	for _, f := range marginFlags {
		fs.StringP(f.name, f.short, "", "percent of whitespace to add to the "+f.side+" of each page")
	}
}

// applyMarginFlags overrides form fields with the margin flags the user set.
func applyMarginFlags(cmd *cobra.Command, form *validate.Form) {
	targets := map[string]*string{
		"top":   &form.Top,
		"right": &form.Right,
		"bot":   &form.Bot,
		"left":  &form.Left,
	}
	for _, f := range marginFlags {
		if cmd.Flags().Changed(f.name) {
			*targets[f.name], _ = cmd.Flags().GetString(f.name)
		}
	}
}

// stringFlag returns the flag value when it was set, otherwise fallback.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}
