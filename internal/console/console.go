// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console renders run progress, validation issues and summaries for
// a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/pdiddy/addnotespace/internal/batch"
	"github.com/pdiddy/addnotespace/internal/validate"
	"github.com/pdiddy/addnotespace/pkg/types"
)

// Printer shows progress events. On a terminal the current line is
// overwritten in place; elsewhere each status is printed on its own line.
type Printer struct {
	out       io.Writer
	overwrite bool
	status    string
	lastLen   int
}

// NewPrinter returns a Printer writing to out. Line overwriting is enabled
// when out is a terminal.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, overwrite: IsTerminal(out)}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Observe handles one progress event.
func (p *Printer) Observe(e types.ProgressEvent) {
	switch e.Kind {
	case types.EventStatus:
		p.status = e.Text
		if !p.overwrite {
			fmt.Fprintln(p.out, e.Text)
			return
		}
		p.redraw(e.Text)
	case types.EventPercent:
		if p.overwrite {
			p.redraw(fmt.Sprintf("%s [%3d%%]", p.status, e.DisplayPercent()))
		}
	}
}

func (p *Printer) redraw(line string) {
	pad := ""
	if n := p.lastLen - len(line); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprint(p.out, "\r"+line+pad)
	p.lastLen = len(line)
}

// Finish ends an overwritten line so later output starts on a fresh one.
func (p *Printer) Finish() {
	if p.overwrite && p.lastLen > 0 {
		fmt.Fprintln(p.out)
		p.lastLen = 0
	}
}

var (
	errorHeader = color.New(color.FgRed, color.Bold)
	infoHeader  = color.New(color.FgYellow, color.Bold)
	failed      = color.New(color.FgRed)
)

// PrintIssues lists issues with a 0-based index. Any error issue switches
// to the error layout; a list of only notices is printed as information.
func PrintIssues(w io.Writer, issues []validate.Issue) {
	if validate.HasErrors(issues) {
		errorHeader.Fprintln(w, "### ERROR ###")
		fmt.Fprint(w, "Encountered the following errors while trying to process the request:\n\n")
	} else {
		infoHeader.Fprintln(w, "### INFO ###")
	}
	for i, issue := range issues {
		fmt.Fprintf(w, "%d: %s\n", i, issue.Message)
	}
	if validate.HasErrors(issues) {
		fmt.Fprint(w, "\nExiting...\n")
	}
}

// PrintSummary writes a one-line batch summary followed by the failed files.
func PrintSummary(w io.Writer, res batch.Result) {
	fmt.Fprintf(w, "\nBatch summary: %d padded, %d failed (total: %d)\n", res.Done, res.Failed, res.Total)
	for _, f := range res.Files {
		if f.Status == types.FileFailed {
			failed.Fprintf(w, "  failed  %s: %s\n", f.Input, f.Error)
		}
	}
}
