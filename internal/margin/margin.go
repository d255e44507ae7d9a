// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package margin adds whitespace margins to every page of a PDF.
//
// Each page's media box is enlarged by per-side margins computed from the
// page's own width and height. The page content keeps its coordinates, which
// places it at an offset of (left, bottom) inside the enlarged page and
// leaves the added space blank.
package margin

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// Options controls how a document is transformed.
type Options struct {
	// Axes selects which page dimension each margin scales with.
	Axes types.AxisMode

	// Strict enables strict PDF validation when parsing the input.
	Strict bool
}

// Apply enlarges every page of doc by the margins. Margins are recomputed
// for each page, so documents with mixed page sizes keep their proportions.
func Apply(doc Document, m types.Margins, axes types.AxisMode) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for nr := 1; nr <= doc.PageCount(); nr++ {
		box, err := doc.MediaBox(nr)
		if err != nil {
			return err
		}
		in := ComputeInsets(box.Width(), box.Height(), m, axes)
		if err := doc.SetPageBox(nr, box.Expand(in)); err != nil {
			return err
		}
	}
	return nil
}

// AddMargin reads the PDF at inPath, adds the margins to every page, and
// writes the result to outPath. It returns the number of pages written.
//
// The input is read fully before the output is written, so inPath and
// outPath may be the same file. The output goes to a temporary file in the
// target directory first and is renamed into place on success.
func AddMargin(inPath, outPath string, m types.Margins, opts Options) (int, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", inPath, err)
	}

	doc, err := OpenPDF(bytes.NewReader(data), opts.Strict)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", inPath, err)
	}

	if err := Apply(doc, m, opts.Axes); err != nil {
		return 0, fmt.Errorf("adding margins to %s: %w", inPath, err)
	}

	if err := writeFile(doc, outPath); err != nil {
		return 0, err
	}
	return doc.PageCount(), nil
}

// Transformer binds Options to AddMargin so a batch runner can call it per file.
type Transformer struct {
	Options Options
}

// AddMargin runs the package-level AddMargin with the transformer's options.
func (t Transformer) AddMargin(inPath, outPath string, m types.Margins) (int, error) {
	return AddMargin(inPath, outPath, m, t.Options)
}

// writeFile writes doc to destPath through a temporary file and a rename.
func writeFile(doc Document, destPath string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".addnotespace-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", destPath, err)
	}
	tmpPath := tmpFile.Name()

	writeErr := doc.Write(tmpFile)
	if writeErr == nil {
		writeErr = tmpFile.Chmod(0o644)
	}
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", destPath, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
