// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// Bulk is the input of a directory run.
type Bulk struct {
	Form

	// Folder is the directory whose PDFs are padded.
	Folder string

	// Suffix is inserted before the extension of every output file.
	Suffix string

	// Margins and Jobs are set by ValidateBulk.
	Margins types.PercentMargins
	Jobs    []types.Job
}

type bulkPaths struct {
	Folder string `validate:"required,dir"`
	Suffix string `validate:"required"`
}

// ValidateBulk normalizes b in place, lists the PDFs in b.Folder into
// b.Jobs, and returns every problem found. A folder without PDFs yields a
// single informational Issue.
func ValidateBulk(b *Bulk) []Issue {
	margins, issues := b.Form.Parse()
	b.Margins = margins
	b.Jobs = nil

	b.Folder = absPath(strings.TrimSpace(b.Folder))
	b.Suffix = strings.TrimSpace(b.Suffix)

	pathIssues := check(bulkPaths{Folder: b.Folder, Suffix: b.Suffix})
	issues = append(issues, pathIssues...)
	if len(pathIssues) > 0 {
		return issues
	}

	jobs, err := BulkJobs(b.Folder, b.Suffix)
	if err != nil {
		return append(issues, Issue{Field: "Folder", Message: fmt.Sprintf("Could not read the folder '%s': %v", b.Folder, err)})
	}
	if len(jobs) == 0 {
		return append(issues, Issue{
			Field:   "Folder",
			Message: fmt.Sprintf("No PDF file was found in the directory: '%s'", b.Folder),
			Info:    true,
		})
	}
	b.Jobs = jobs
	return issues
}

// BulkJobs lists the PDF files directly inside dir, in directory order, and
// pairs each with its output path. Other files and subdirectories are skipped.
func BulkJobs(dir, suffix string) ([]types.Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var jobs []types.Job
	for _, e := range entries {
		if e.IsDir() || !IsPDF(e.Name()) {
			continue
		}
		jobs = append(jobs, types.Job{
			Input:  filepath.Join(dir, e.Name()),
			Output: filepath.Join(dir, OutputName(e.Name(), suffix)),
		})
	}
	return jobs, nil
}

// OutputName inserts suffix before the extension of name, splitting only
// on the last dot: "report.pdf" with "_notes" becomes "report_notes.pdf".
func OutputName(name, suffix string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + suffix + ext
}

// OutputPath is OutputName applied to the base name of path, kept in the
// same directory.
func OutputPath(path, suffix string) string {
	return filepath.Join(filepath.Dir(path), OutputName(filepath.Base(path), suffix))
}
