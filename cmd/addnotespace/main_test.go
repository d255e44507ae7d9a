// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/addnotespace/internal/margin"
	"github.com/pdiddy/addnotespace/internal/pdftest"
)

func init() {
	color.NoColor = true
}

// resetFlags restores every flag of cmd and its children to its default so
// consecutive executions do not share state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with an isolated config directory.
func execute(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("ADDNOTESPACE_DEFAULTS_FILE", filepath.Join(home, "defaults.json"))
	t.Setenv("ADDNOTESPACE_JOURNAL_FILE", filepath.Join(home, "journal.db"))
	t.Setenv("ADDNOTESPACE_LOG_FILE", filepath.Join(home, "test.log"))
	t.Setenv("ADDNOTESPACE_LOG_LEVEL", "error")

	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func pageBox(t *testing.T, path string) margin.Box {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := margin.OpenPDF(f, false)
	require.NoError(t, err)
	box, err := doc.MediaBox(1)
	require.NoError(t, err)
	return box
}

func TestRoot_NoSourcePrintsHelp(t *testing.T) {
	out, err := execute(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--directory")
}

func TestRoot_SingleRun(t *testing.T) {
	home := t.TempDir()
	in := filepath.Join(home, "a.pdf")
	pdftest.WriteFile(t, in, pdftest.Size{W: 600, H: 800})
	outPath := filepath.Join(home, "a_out.pdf")

	out, err := execute(t, home, "-f", in, "-o", outPath, "-t", "10", "-r", "0", "-b", "0", "-l", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Working on: a.pdf (1/1)")
	assert.Contains(t, out, "Finished all 1 PDFs")

	box := pageBox(t, outPath)
	assert.InDelta(t, 600, box.Width(), 1e-6)
	assert.InDelta(t, 880, box.Height(), 1e-6)
}

func TestRoot_LegacyAxes(t *testing.T) {
	home := t.TempDir()
	in := filepath.Join(home, "a.pdf")
	pdftest.WriteFile(t, in, pdftest.Size{W: 600, H: 800})
	outPath := filepath.Join(home, "legacy.pdf")

	_, err := execute(t, home, "-f", in, "-o", outPath, "-t", "10", "--axes", "legacy")
	require.NoError(t, err)
	assert.InDelta(t, 860, pageBox(t, outPath).Height(), 1e-6)
}

func TestRoot_FileWinsOverDirectory(t *testing.T) {
	home := t.TempDir()
	docs := filepath.Join(home, "docs")
	require.NoError(t, os.Mkdir(docs, 0o755))
	pdftest.WriteFile(t, filepath.Join(docs, "one.pdf"), pdftest.Size{W: 100, H: 100})
	in := filepath.Join(home, "a.pdf")
	pdftest.WriteFile(t, in, pdftest.Size{W: 600, H: 800})
	outPath := filepath.Join(home, "a_out.pdf")

	out, err := execute(t, home, "-f", in, "-d", docs, "-s", "_x", "-o", outPath, "-t", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Finished all 1 PDFs")
	assert.FileExists(t, outPath)

	padded, err := filepath.Glob(filepath.Join(docs, "*_x.pdf"))
	require.NoError(t, err)
	assert.Empty(t, padded)
}

func TestRoot_ValidationErrors(t *testing.T) {
	home := t.TempDir()
	out, err := execute(t, home, "-f", filepath.Join(home, "missing.pdf"), "-t", "-1", "-r", "abc")
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "### ERROR ###")
	assert.Contains(t, out, "0: ")
	assert.Contains(t, out, "1: ")
	assert.Contains(t, out, "2: ")
	assert.NotContains(t, out, "Working on")
}

func TestRoot_BulkRun(t *testing.T) {
	home := t.TempDir()
	docs := filepath.Join(home, "docs")
	require.NoError(t, os.Mkdir(docs, 0o755))
	pdftest.WriteFile(t, filepath.Join(docs, "one.pdf"), pdftest.Size{W: 100, H: 100})
	pdftest.WriteFile(t, filepath.Join(docs, "two.pdf"), pdftest.Size{W: 100, H: 200})
	require.NoError(t, os.WriteFile(filepath.Join(docs, "notes.txt"), []byte("x"), 0o644))
	report := filepath.Join(home, "report.yaml")

	out, err := execute(t, home, "-d", docs, "-s", "_pad", "-l", "50", "--report", report, "--save-defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "Finished all 2 PDFs")
	assert.Contains(t, out, "Batch summary: 2 padded, 0 failed (total: 2)")
	assert.FileExists(t, filepath.Join(docs, "one_pad.pdf"))
	assert.FileExists(t, filepath.Join(docs, "two_pad.pdf"))
	assert.NoFileExists(t, filepath.Join(docs, "notes_pad.txt"))
	assert.FileExists(t, report)
	assert.InDelta(t, 150, pageBox(t, filepath.Join(docs, "one_pad.pdf")).Width(), 1e-6)

	out, err = execute(t, home, "defaults", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"margin_left": 50`)
	assert.Contains(t, out, `"bulk_name_ending": "_pad"`)

	out, err = execute(t, home, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Files")
	assert.Contains(t, out, "    2       0")
}

func TestRoot_EmptyDirectoryIsInformational(t *testing.T) {
	home := t.TempDir()
	empty := filepath.Join(home, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))

	out, err := execute(t, home, "-d", empty, "-s", "_x")
	require.NoError(t, err)
	assert.Contains(t, out, "### INFO ###")
	assert.Contains(t, out, "No PDF file was found")
}

func TestDefaultsSet(t *testing.T) {
	home := t.TempDir()
	_, err := execute(t, home, "defaults", "set", "--top", "7", "--ratio", "16:9", "-s", "_n")
	require.NoError(t, err)

	out, err := execute(t, home, "defaults", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"margin_top": 7`)
	assert.Contains(t, out, `"preview_sketch_ratio": "16:9"`)

	out, err = execute(t, home, "defaults", "set", "--ratio", "wide")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "### ERROR ###")
}

func TestPreview(t *testing.T) {
	out, err := execute(t, t.TempDir(), "preview", "--ratio", "1:1", "--top", "100", "--width", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "ratio 1:1, margins 100/0/0/0%, axes natural")
	assert.Contains(t, out, "+--------+")
	assert.Contains(t, out, "100% taller")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "addnotespace dev\n", out)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "...6789", truncate("0123456789", 7))
}
