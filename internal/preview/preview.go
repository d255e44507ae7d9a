// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview draws a text sketch of a page before and after margins
// are added, using the same geometry as the PDF transform.
package preview

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/addnotespace/internal/margin"
	"github.com/pdiddy/addnotespace/pkg/types"
)

// DefaultRatio is used when no ratio is configured: an A4 portrait page.
const DefaultRatio = "1:1.414"

const (
	// minCols is the narrowest sketch Render draws.
	minCols = 8
	// maxRows caps the sketch height for extreme ratios.
	maxRows = 200
)

// Ratio is a page aspect ratio, width to height.
type Ratio struct {
	W, H float64
}

// ParseRatio parses "W:H", e.g. "16:9". Both parts must be positive
// numbers. The empty string yields DefaultRatio.
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		s = DefaultRatio
	}
	ws, hs, ok := strings.Cut(s, ":")
	if !ok {
		return Ratio{}, fmt.Errorf("ratio %q must have the form W:H", s)
	}
	w, werr := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	h, herr := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if werr != nil || herr != nil || w <= 0 || h <= 0 || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return Ratio{}, fmt.Errorf("ratio %q must be two positive numbers", s)
	}
	return Ratio{W: w, H: h}, nil
}

func (r Ratio) String() string {
	return strconv.FormatFloat(r.W, 'g', -1, 64) + ":" + strconv.FormatFloat(r.H, 'g', -1, 64)
}

// Sketch is a page of unit width and the page box after margins are added.
// Outer is translated so its lower-left corner is the origin.
type Sketch struct {
	Inner margin.Box
	Outer margin.Box
}

// Compute lays out a page with ratio r and margins m.
func Compute(r Ratio, m types.Margins, axes types.AxisMode) Sketch {
	page := margin.Box{URX: 1, URY: r.H / r.W}
	outer := page.Expand(margin.ComputeInsets(page.Width(), page.Height(), m, axes))

	dx, dy := -outer.LLX, -outer.LLY
	return Sketch{
		Inner: margin.Box{LLX: page.LLX + dx, LLY: page.LLY + dy, URX: page.URX + dx, URY: page.URY + dy},
		Outer: margin.Box{URX: outer.Width(), URY: outer.Height()},
	}
}

// Growth returns how much wider and taller the page becomes.
func (s Sketch) Growth() (width, height float64) {
	return s.Outer.Width() / s.Inner.Width(), s.Outer.Height() / s.Inner.Height()
}

// Render draws s cols characters wide: the new page border in '+', '-' and
// '|', the original page area in '#', added whitespace blank. Rows are
// scaled by half to compensate for terminal cell proportions.
func Render(w io.Writer, s Sketch, cols int) error {
	if cols < minCols {
		cols = minCols
	}
	scale := float64(cols) / s.Outer.Width()
	rows := 3
	if h := math.Round(s.Outer.Height() * scale / 2); h > maxRows {
		rows = maxRows
	} else if h > 3 {
		rows = int(h)
	}

	bw := bufio.NewWriter(w)
	line := make([]byte, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			line[c] = cell(s, r, c, rows, cols)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}

	gw, gh := s.Growth()
	fmt.Fprintf(bw, "page grows %.0f%% wider and %.0f%% taller\n", (gw-1)*100, (gh-1)*100)
	return bw.Flush()
}

func cell(s Sketch, r, c, rows, cols int) byte {
	edgeRow := r == 0 || r == rows-1
	edgeCol := c == 0 || c == cols-1
	switch {
	case edgeRow && edgeCol:
		return '+'
	case edgeRow:
		return '-'
	case edgeCol:
		return '|'
	}

	x := (float64(c) + 0.5) / float64(cols) * s.Outer.Width()
	y := (1 - (float64(r)+0.5)/float64(rows)) * s.Outer.Height()
	if x >= s.Inner.LLX && x <= s.Inner.URX && y >= s.Inner.LLY && y <= s.Inner.URY {
		return '#'
	}
	return ' '
}
