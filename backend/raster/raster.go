// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster implements the gghello graphics backend on the gg CPU
// rasterizer.
//
// Each surface owns a [gg.Context] sized to the window's client area in
// pixels. Drawing happens in logical units: SetTransform installs the
// target's pixel scale in front of the requested matrix. EndDraw converts the
// pixmap to the target's pixel format and hands it to [render.Target.Present].
//
// Importing the package registers the backend as "raster":
//
//	import _ "github.com/gogpu/gghello/backend/raster"
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghello/render"
)

// Name is the backend name used for registration.
const Name = "raster"

// Errors reported by raster surfaces.
var (
	// ErrReleased is returned when a released surface or factory is used.
	ErrReleased = errors.New("raster: resource released")

	// ErrForeignBrush is reported when a brush is used on a surface other
	// than the one that created it, or after it was released.
	ErrForeignBrush = errors.New("raster: brush not owned by surface")

	// ErrNotDrawing is returned by EndDraw without a matching BeginDraw.
	ErrNotDrawing = errors.New("raster: EndDraw without BeginDraw")

	// ErrUnsupportedFormat is returned when a target asks for a pixel format
	// the backend cannot produce.
	ErrUnsupportedFormat = errors.New("raster: unsupported target format")
)

func init() {
	render.Register(Name, 10, func() (render.Factory, error) {
		return NewFactory(), nil
	}, nil)
}

// Factory creates raster surfaces.
type Factory struct {
	name   string
	closed bool
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithName sets the name the factory reports. Backends that reuse raster
// surfaces, such as the gpu backend, register under their own name.
func WithName(name string) FactoryOption {
	return func(f *Factory) {
		f.name = name
	}
}

// NewFactory creates a raster factory.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{name: Name}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the backend name.
func (f *Factory) Name() string { return f.name }

// CreateSurface creates a surface of the given pixel size bound to t.
// Empty sizes, such as a minimized window, are clamped to one pixel.
func (f *Factory) CreateSurface(t render.Target, size render.PixelSize) (render.Surface, error) {
	if f.closed {
		return nil, ErrReleased
	}
	if t == nil {
		return nil, render.ErrNoTarget
	}
	switch t.Format() {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, t.Format())
	}

	size = clampSize(size)
	scale := t.Scale()
	if scale <= 0 {
		scale = 1
	}

	return &Surface{
		target: t,
		dc:     gg.NewContext(size.Width, size.Height),
		size:   size,
		scale:  scale,
	}, nil
}

// Close marks the factory closed. Close is idempotent.
func (f *Factory) Close() error {
	f.closed = true
	return nil
}

// Surface draws with a gg.Context and presents to a render.Target.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	target render.Target
	dc     *gg.Context
	size   render.PixelSize
	scale  float64

	drawing  bool
	err      error
	swizzled []byte

	released bool
}

// Size returns the surface size in logical units.
func (s *Surface) Size() render.Size {
	return render.Size{
		Width:  float64(s.size.Width) / s.scale,
		Height: float64(s.size.Height) / s.scale,
	}
}

// PixelSize returns the surface size in pixels.
func (s *Surface) PixelSize() render.PixelSize { return s.size }

// Context returns the underlying gg context.
func (s *Surface) Context() *gg.Context { return s.dc }

// CreateSolidBrush creates a brush owned by s.
func (s *Surface) CreateSolidBrush(c color.Color) (render.Brush, error) {
	if s.released {
		return nil, ErrReleased
	}
	return &Brush{owner: s, color: c, rgba: gg.FromColor(c)}, nil
}

// BeginDraw starts a batch.
func (s *Surface) BeginDraw() {
	s.drawing = true
	s.err = nil
	s.dc.ClearPath()
}

// SetTransform sets the transform, in logical units.
func (s *Surface) SetTransform(m gg.Matrix) {
	s.dc.SetTransform(gg.Scale(s.scale, s.scale).Multiply(m))
}

// Clear fills the whole surface with c, ignoring the transform.
func (s *Surface) Clear(c color.Color) {
	s.dc.ClearWithColor(gg.FromColor(c))
}

// DrawLine strokes the segment p0-p1.
func (s *Surface) DrawLine(p0, p1 gg.Point, b render.Brush, strokeWidth float64) {
	col, ok := s.brushColor(b)
	if !ok {
		return
	}
	s.dc.SetStrokeBrush(gg.Solid(col))
	s.dc.SetLineWidth(strokeWidth)
	s.dc.DrawLine(p0.X, p0.Y, p1.X, p1.Y)
	s.check(s.dc.Stroke())
}

// FillRectangle fills r.
func (s *Surface) FillRectangle(r render.Rect, b render.Brush) {
	col, ok := s.brushColor(b)
	if !ok {
		return
	}
	s.dc.SetFillBrush(gg.Solid(col))
	s.dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	s.check(s.dc.Fill())
}

// DrawRectangle strokes the outline of r.
func (s *Surface) DrawRectangle(r render.Rect, b render.Brush, strokeWidth float64) {
	col, ok := s.brushColor(b)
	if !ok {
		return
	}
	s.dc.SetStrokeBrush(gg.Solid(col))
	s.dc.SetLineWidth(strokeWidth)
	s.dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	s.check(s.dc.Stroke())
}

// EndDraw finishes the batch and presents the frame. The first drawing
// failure of the batch, if any, is returned instead of presenting.
func (s *Surface) EndDraw() error {
	if s.released {
		return ErrReleased
	}
	if !s.drawing {
		return ErrNotDrawing
	}
	s.drawing = false

	if err := s.err; err != nil {
		s.err = nil
		return err
	}
	if err := s.dc.FlushGPU(); err != nil {
		return fmt.Errorf("raster: flush: %w", err)
	}

	frame, err := s.frame()
	if err != nil {
		return err
	}
	return s.target.Present(frame)
}

// Resize reallocates the pixmap at the new size.
func (s *Surface) Resize(size render.PixelSize) error {
	if s.released {
		return ErrReleased
	}
	size = clampSize(size)
	if err := s.dc.Resize(size.Width, size.Height); err != nil {
		return fmt.Errorf("raster: %w", err)
	}
	s.size = size
	return nil
}

// Release frees the context. Release is idempotent.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true
	_ = s.dc.Close()
	s.swizzled = nil
}

// frame converts the pixmap into the layout the target expects.
func (s *Surface) frame() (render.Frame, error) {
	img := s.dc.Image()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return render.Frame{}, fmt.Errorf("raster: unexpected image %T", img)
	}

	f := render.Frame{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Stride: rgba.Stride,
		Format: s.target.Format(),
	}

	switch f.Format {
	case gputypes.TextureFormatRGBA8Unorm:
		f.Pix = rgba.Pix
	case gputypes.TextureFormatBGRA8Unorm:
		if cap(s.swizzled) < len(rgba.Pix) {
			s.swizzled = make([]byte, len(rgba.Pix))
		}
		s.swizzled = s.swizzled[:len(rgba.Pix)]
		swizzleRB(s.swizzled, rgba.Pix)
		f.Pix = s.swizzled
	default:
		return render.Frame{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f.Format)
	}
	return f, nil
}

func (s *Surface) brushColor(b render.Brush) (gg.RGBA, bool) {
	rb, ok := b.(*Brush)
	if !ok || rb.owner != s || rb.released || s.released {
		if s.err == nil {
			s.err = ErrForeignBrush
		}
		return gg.RGBA{}, false
	}
	return rb.rgba, true
}

func (s *Surface) check(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Brush is a solid brush of a raster surface.
type Brush struct {
	owner    *Surface
	color    color.Color
	rgba     gg.RGBA
	released bool
}

// Color returns the brush color.
func (b *Brush) Color() color.Color { return b.color }

// Release marks the brush released. Release is idempotent.
func (b *Brush) Release() { b.released = true }

// swizzleRB copies src to dst exchanging the red and blue channels.
func swizzleRB(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}

func clampSize(size render.PixelSize) render.PixelSize {
	if size.Width < 1 {
		size.Width = 1
	}
	if size.Height < 1 {
		size.Height = 1
	}
	return size
}
