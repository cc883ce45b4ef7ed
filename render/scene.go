// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// Scene geometry, in logical units.
const (
	GridSpacing        = 10.0
	GridStrokeWidth    = 0.5
	InnerHalfExtent    = 50.0
	OuterHalfExtent    = 100.0
	OutlineStrokeWidth = 1.0
)

// Scene colors.
var (
	ColorBackground color.Color = colornames.White
	ColorGrid       color.Color = colornames.Lightslategray
	ColorAccent     color.Color = colornames.Cornflowerblue
)

// GridLines returns the grid for a surface of the given size.
//
// Vertical lines sit at x = 0, spacing, 2*spacing, ... while x is below the
// whole-unit width, and span the full height. Horizontal lines follow the
// same rule along y. Both slices are in ascending coordinate order.
func GridLines(size Size, spacing float64) (vertical, horizontal []Line) {
	if spacing <= 0 {
		return nil, nil
	}

	width := math.Trunc(size.Width)
	height := math.Trunc(size.Height)

	for x := 0.0; x < width; x += spacing {
		vertical = append(vertical, Line{P0: gg.Pt(x, 0), P1: gg.Pt(x, size.Height)})
	}
	for y := 0.0; y < height; y += spacing {
		horizontal = append(horizontal, Line{P0: gg.Pt(0, y), P1: gg.Pt(size.Width, y)})
	}
	return vertical, horizontal
}

// CenteredSquare returns the square with the given half extent centered on
// a surface of the given size.
func CenteredSquare(size Size, half float64) Rect {
	c := size.Center()
	return Rect{
		Left:   c.X - half,
		Top:    c.Y - half,
		Right:  c.X + half,
		Bottom: c.Y + half,
	}
}

// drawScene issues the fixed scene on s. The caller owns BeginDraw/EndDraw.
func drawScene(s Surface, gray, blue Brush) {
	s.SetTransform(gg.Identity())
	s.Clear(ColorBackground)

	size := s.Size()
	vertical, horizontal := GridLines(size, GridSpacing)
	for _, l := range vertical {
		s.DrawLine(l.P0, l.P1, gray, GridStrokeWidth)
	}
	for _, l := range horizontal {
		s.DrawLine(l.P0, l.P1, gray, GridStrokeWidth)
	}

	s.FillRectangle(CenteredSquare(size, InnerHalfExtent), gray)
	s.DrawRectangle(CenteredSquare(size, OuterHalfExtent), blue, OutlineStrokeWidth)
}
