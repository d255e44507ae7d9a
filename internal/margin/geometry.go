// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package margin

import "github.com/pdiddy/addnotespace/pkg/types"

// Box is a page rectangle in PDF user space (points), given by its
// lower-left and upper-right corners.
type Box struct {
	LLX, LLY float64
	URX, URY float64
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 { return b.URX - b.LLX }

// Height returns the vertical extent of the box.
func (b Box) Height() float64 { return b.URY - b.LLY }

// Insets are the absolute margin sizes, in points, added on each side.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// ComputeInsets converts margin fractions into absolute sizes for a page of
// the given width and height. Under types.AxisLegacy the top and bottom
// fractions scale with the width and the left and right fractions with the
// height.
func ComputeInsets(width, height float64, m types.Margins, axes types.AxisMode) Insets {
	vertical, horizontal := height, width
	if axes == types.AxisLegacy {
		vertical, horizontal = width, height
	}
	return Insets{
		Top:    vertical * m.Top,
		Bottom: vertical * m.Bottom,
		Right:  horizontal * m.Right,
		Left:   horizontal * m.Left,
	}
}

// Expand grows the box by the insets. The original box keeps its position,
// so content drawn in it ends up offset by (Left, Bottom) from the new
// lower-left corner.
func (b Box) Expand(in Insets) Box {
	return Box{
		LLX: b.LLX - in.Left,
		LLY: b.LLY - in.Bottom,
		URX: b.URX + in.Right,
		URY: b.URY + in.Top,
	}
}
