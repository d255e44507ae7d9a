// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate normalizes and checks user input before a run starts.
//
// Validation never fails with a Go error: problems are collected as Issues
// and returned to the caller for display. An informational Issue (Info set)
// is not an input error but still means the run should not start.
package validate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/addnotespace/pkg/types"
)

// pdfExt is the extension of files the tool reads and writes.
const pdfExt = ".pdf"

// Issue is one problem found while validating input.
type Issue struct {
	// Field names the offending input, e.g. "Source" or "Top".
	Field string

	// Message is a user-facing description.
	Message string

	// Info marks a notice rather than an error.
	Info bool
}

func (i Issue) Error() string {
	return i.Message
}

// HasErrors reports whether issues contains anything other than notices.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if !i.Info {
			return true
		}
	}
	return false
}

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	must(v.RegisterValidation("pdfext", func(fl validator.FieldLevel) bool {
		return IsPDF(fl.Field().String())
	}))
	must(v.RegisterValidation("parentdir", func(fl validator.FieldLevel) bool {
		info, err := os.Stat(filepath.Dir(fl.Field().String()))
		return err == nil && info.IsDir()
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), pdfExt)
}

// Form holds the four margin values as entered by the user, in percent.
type Form struct {
	Top, Right, Bot, Left string
}

// FormFromPercent formats stored percentages as form input.
func FormFromPercent(p types.PercentMargins) Form {
	return Form{
		Top:   strconv.Itoa(p.Top),
		Right: strconv.Itoa(p.Right),
		Bot:   strconv.Itoa(p.Bot),
		Left:  strconv.Itoa(p.Left),
	}
}

// Parse converts the form to percentages. Every value must be a whole
// number >= 0; fractional, negative and non-numeric input is reported.
func (f Form) Parse() (types.PercentMargins, []Issue) {
	var issues []Issue
	parse := func(field, raw string) int {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			issues = append(issues, Issue{
				Field:   field,
				Message: fmt.Sprintf("The %s margin must be a whole number, got %q.", marginNames[field], raw),
			})
			return 0
		}
		return v
	}

	m := types.PercentMargins{
		Top:   parse("Top", f.Top),
		Right: parse("Right", f.Right),
		Bot:   parse("Bot", f.Bot),
		Left:  parse("Left", f.Left),
	}
	issues = append(issues, check(m)...)
	return m, issues
}

var marginNames = map[string]string{
	"Top":   "top",
	"Right": "right",
	"Bot":   "bottom",
	"Left":  "left",
}

// check runs the struct validator and converts failures to Issues.
func check(s any) []Issue {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Message: err.Error()}}
	}
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{Field: fe.Field(), Message: message(fe)})
	}
	return issues
}

// message renders a user-facing text for one failed validation tag.
func message(fe validator.FieldError) string {
	if name, ok := marginNames[fe.Field()]; ok {
		return fmt.Sprintf("The %s margin must be at least 0, got %v.", name, fe.Value())
	}

	switch fe.Field() + "/" + fe.Tag() {
	case "Source/required":
		return "Please select a PDF file to add margins to."
	case "Source/file":
		return fmt.Sprintf("The file '%v' does not exist.", fe.Value())
	case "Source/pdfext":
		return fmt.Sprintf("The file '%v' is not a PDF file.", fe.Value())
	case "Target/required":
		return "Please select where the new PDF should be saved."
	case "Target/parentdir":
		return fmt.Sprintf("The target folder '%s' does not exist.", filepath.Dir(fmt.Sprint(fe.Value())))
	case "Folder/required":
		return "Please select a folder for the bulk run."
	case "Folder/dir":
		return fmt.Sprintf("The bulk folder '%v' is no longer available. Please set it again.", fe.Value())
	case "Suffix/required":
		return "The file ending can not be empty."
	default:
		return fmt.Sprintf("%s failed on '%s' check", fe.Field(), fe.Tag())
	}
}

// absPath returns path made absolute, leaving empty input empty.
func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
