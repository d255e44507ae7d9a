// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"strings"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// Single is the input of a single-file run.
type Single struct {
	Form

	// Source is the PDF to read.
	Source string

	// Target is the path of the padded copy. When empty and Suffix is set,
	// it is derived from Source with OutputPath.
	Target string

	// Suffix is the bulk file ending, used only to derive a missing Target.
	Suffix string

	// Margins is set by ValidateSingle.
	Margins types.PercentMargins
}

type singlePaths struct {
	Source string `validate:"required,file,pdfext"`
	Target string `validate:"required,parentdir"`
}

// ValidateSingle normalizes s in place and returns every problem found.
// Paths are made absolute and a Target without the .pdf extension gets it
// appended.
func ValidateSingle(s *Single) []Issue {
	margins, issues := s.Form.Parse()
	s.Margins = margins

	s.Source = absPath(strings.TrimSpace(s.Source))
	s.Target = strings.TrimSpace(s.Target)
	if suffix := strings.TrimSpace(s.Suffix); s.Target == "" && suffix != "" && s.Source != "" {
		s.Target = OutputPath(s.Source, suffix)
	}
	if s.Target != "" && !IsPDF(s.Target) {
		s.Target += pdfExt
	}
	s.Target = absPath(s.Target)

	return append(issues, check(singlePaths{Source: s.Source, Target: s.Target})...)
}

// Job returns the validated input as a single job.
func (s *Single) Job() types.Job {
	return types.Job{Input: s.Source, Output: s.Target}
}
