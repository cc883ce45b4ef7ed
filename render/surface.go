// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
)

// Target is the window side of a surface: it reports the client area and
// receives finished frames.
type Target interface {
	// ClientSize returns the client area size in pixels.
	ClientSize() (width, height int, err error)

	// Scale returns the number of pixels per logical unit.
	Scale() float64

	// Format returns the pixel layout Present expects.
	Format() gputypes.TextureFormat

	// Present shows a finished frame. An error matching ErrRecreateTarget
	// means the presentation path is gone and the surface must be rebuilt.
	Present(f Frame) error
}

// Factory creates surfaces. It is the device-independent resource and
// outlives every surface it creates.
type Factory interface {
	// Name returns the backend name the factory was registered under.
	Name() string

	// CreateSurface creates a surface of the given pixel size bound to t.
	CreateSurface(t Target, size PixelSize) (Surface, error)

	// Close releases the factory. Surfaces must be released first.
	Close() error
}

// Surface is a drawing surface bound to one window.
//
// Drawing calls are only valid between BeginDraw and EndDraw. Failures of
// individual drawing calls are reported by EndDraw.
type Surface interface {
	// Size returns the surface size in logical units.
	Size() Size

	// PixelSize returns the surface size in pixels.
	PixelSize() PixelSize

	// CreateSolidBrush creates a brush owned by this surface.
	CreateSolidBrush(c color.Color) (Brush, error)

	BeginDraw()
	SetTransform(m gg.Matrix)
	Clear(c color.Color)
	DrawLine(p0, p1 gg.Point, b Brush, strokeWidth float64)
	FillRectangle(r Rect, b Brush)
	DrawRectangle(r Rect, b Brush, strokeWidth float64)

	// EndDraw finishes the batch and submits the frame.
	EndDraw() error

	// Resize changes the pixel size in place.
	Resize(size PixelSize) error

	// Release frees the surface. Release is idempotent.
	Release()
}

// Brush is a solid color brush owned by the surface that created it.
type Brush interface {
	Color() color.Color

	// Release frees the brush. Release is idempotent.
	Release()
}
