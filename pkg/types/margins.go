// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for addnotespace.
// Covers: margins, run requests, progress events,
// persisted defaults, and application configuration.
package types

import (
	"fmt"
	"math"
)

// AxisMode selects which page dimension each margin fraction scales with.
type AxisMode string

const (
	// AxisNatural scales top/bottom margins with the page height and
	// left/right margins with the page width.
	AxisNatural AxisMode = "natural"

	// AxisLegacy reproduces the historical mapping: top/bottom margins scale
	// with the page width and left/right margins with the page height.
	AxisLegacy AxisMode = "legacy"
)

// ParseAxisMode maps a configuration string to an AxisMode. The empty
// string selects AxisNatural.
func ParseAxisMode(s string) (AxisMode, error) {
	switch AxisMode(s) {
	case "", AxisNatural:
		return AxisNatural, nil
	case AxisLegacy:
		return AxisLegacy, nil
	default:
		return "", fmt.Errorf("unknown axis mode %q (want %q or %q)", s, AxisNatural, AxisLegacy)
	}
}

// Margins holds the whitespace to add on each side of a page as a fraction
// of the page size. Each fraction must be >= 0; there is no upper bound.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
}

// Validate reports an error if any fraction is negative or not finite.
func (m Margins) Validate() error {
	for _, side := range []struct {
		name string
		v    float64
	}{
		{"top", m.Top}, {"right", m.Right}, {"bottom", m.Bottom}, {"left", m.Left},
	} {
		if math.IsNaN(side.v) || math.IsInf(side.v, 0) {
			return fmt.Errorf("%s margin must be a finite number, got %g", side.name, side.v)
		}
		if side.v < 0 {
			return fmt.Errorf("%s margin must not be negative, got %g", side.name, side.v)
		}
	}
	return nil
}

// IsZero reports whether no whitespace would be added.
func (m Margins) IsZero() bool {
	return m.Top == 0 && m.Right == 0 && m.Bottom == 0 && m.Left == 0
}

// PercentMargins holds margins as integer percentages, the unit users enter
// and the defaults file stores.
type PercentMargins struct {
	Top   int `validate:"gte=0"`
	Right int `validate:"gte=0"`
	Bot   int `validate:"gte=0"`
	Left  int `validate:"gte=0"`
}

// Fractions converts percentages to fractions by dividing each side by 100.
func (p PercentMargins) Fractions() Margins {
	return Margins{
		Top:    float64(p.Top) / 100,
		Right:  float64(p.Right) / 100,
		Bottom: float64(p.Bot) / 100,
		Left:   float64(p.Left) / 100,
	}
}

// String formats the margins as "top/right/bot/left %".
func (p PercentMargins) String() string {
	return fmt.Sprintf("%d/%d/%d/%d%%", p.Top, p.Right, p.Bot, p.Left)
}
