// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Size is a surface size in logical units.
type Size struct {
	Width, Height float64
}

// Center returns the center point of a surface of this size.
func (s Size) Center() gg.Point {
	return gg.Pt(s.Width/2, s.Height/2)
}

// PixelSize is a surface size in device pixels.
type PixelSize struct {
	Width, Height int
}

func (s PixelSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() gg.Point {
	return gg.Pt((r.Left+r.Right)/2, (r.Top+r.Bottom)/2)
}

// Line is a segment between two points.
type Line struct {
	P0, P1 gg.Point
}

// Frame is a finished image handed to a Target for presentation.
// Pix holds Height rows of Stride bytes, 4 bytes per pixel, in Format order.
type Frame struct {
	Width  int
	Height int
	Stride int
	Format gputypes.TextureFormat
	Pix    []byte
}

// State is the state of the device-dependent resource generation.
type State int

const (
	// Absent means no surface or brushes exist.
	Absent State = iota
	// Present means the surface and both brushes exist.
	Present
)

func (s State) String() string {
	switch s {
	case Absent:
		return "Absent"
	case Present:
		return "Present"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
