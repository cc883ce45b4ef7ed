// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"errors"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/gogpu/gghello/render"
)

// Name is the backend name used for registration.
const Name = "recording"

// Errors reported by recording surfaces.
var (
	// ErrReleased is returned when a released surface or factory is used.
	ErrReleased = errors.New("recording: resource released")

	// ErrForeignBrush is reported when a brush is used on a surface other
	// than the one that created it, or after it was released.
	ErrForeignBrush = errors.New("recording: brush not owned by surface")

	// ErrNotDrawing is returned by EndDraw without a matching BeginDraw.
	ErrNotDrawing = errors.New("recording: EndDraw without BeginDraw")
)

func init() {
	render.Register(Name, 0, func() (render.Factory, error) {
		return NewFactory(), nil
	}, nil)
}

// Factory creates recording surfaces and keeps every one of them for
// inspection.
type Factory struct {
	surfaces []*Surface
	closed   bool

	failSurface error
	failBrush   error
	failBrushAt int
	failEndDraw error
}

// NewFactory creates an empty recording factory.
func NewFactory() *Factory {
	return &Factory{failBrushAt: -1}
}

// Name returns the backend name.
func (f *Factory) Name() string { return Name }

// FailNextSurface makes the next CreateSurface return err.
func (f *Factory) FailNextSurface(err error) {
	f.failSurface = err
}

// FailBrush makes brush number index (0-based) of the next created surface
// fail with err.
func (f *Factory) FailBrush(index int, err error) {
	f.failBrushAt = index
	f.failBrush = err
}

// FailNextEndDraw makes the next EndDraw on any surface of this factory
// return err after recording the frame.
func (f *Factory) FailNextEndDraw(err error) {
	f.failEndDraw = err
}

// CreateSurface creates a recording surface bound to t.
func (f *Factory) CreateSurface(t render.Target, size render.PixelSize) (render.Surface, error) {
	if f.closed {
		return nil, ErrReleased
	}
	if err := f.failSurface; err != nil {
		f.failSurface = nil
		return nil, err
	}

	s := &Surface{
		factory:     f,
		target:      t,
		size:        size,
		failBrushAt: f.failBrushAt,
		failBrush:   f.failBrush,
	}
	f.failBrushAt, f.failBrush = -1, nil
	f.surfaces = append(f.surfaces, s)
	return s, nil
}

// Close marks the factory closed. Close is idempotent.
func (f *Factory) Close() error {
	f.closed = true
	return nil
}

// Closed reports whether Close was called.
func (f *Factory) Closed() bool { return f.closed }

// Surfaces returns every surface created so far, released ones included.
func (f *Factory) Surfaces() []*Surface { return f.surfaces }

// Last returns the most recently created surface, or nil.
func (f *Factory) Last() *Surface {
	if len(f.surfaces) == 0 {
		return nil
	}
	return f.surfaces[len(f.surfaces)-1]
}

// Live returns the number of surfaces and brushes not yet released.
func (f *Factory) Live() (surfaces, brushes int) {
	for _, s := range f.surfaces {
		if !s.released {
			surfaces++
		}
		for _, b := range s.brushes {
			if !b.released {
				brushes++
			}
		}
	}
	return surfaces, brushes
}

// Surface records drawing commands.
type Surface struct {
	factory *Factory
	target  render.Target
	size    render.PixelSize

	brushes []*Brush
	current []Command
	frames  []*Recording
	resizes int
	drawing bool
	err     error

	failBrushAt int
	failBrush   error

	released bool
}

// Size returns the logical size, derived from the target scale.
func (s *Surface) Size() render.Size {
	scale := 1.0
	if s.target != nil {
		if v := s.target.Scale(); v > 0 {
			scale = v
		}
	}
	return render.Size{
		Width:  float64(s.size.Width) / scale,
		Height: float64(s.size.Height) / scale,
	}
}

// PixelSize returns the pixel size.
func (s *Surface) PixelSize() render.PixelSize { return s.size }

// CreateSolidBrush creates a brush owned by s.
func (s *Surface) CreateSolidBrush(c color.Color) (render.Brush, error) {
	if s.released {
		return nil, ErrReleased
	}
	if s.failBrush != nil && s.failBrushAt == len(s.brushes) {
		err := s.failBrush
		s.failBrush, s.failBrushAt = nil, -1
		return nil, err
	}
	b := &Brush{owner: s, color: c}
	s.brushes = append(s.brushes, b)
	return b, nil
}

// BeginDraw starts a new batch, dropping any unfinished one.
func (s *Surface) BeginDraw() {
	s.drawing = true
	s.err = nil
	s.current = []Command{BeginDrawCommand{}}
}

// SetTransform records a transform change.
func (s *Surface) SetTransform(m gg.Matrix) {
	s.record(SetTransformCommand{Matrix: m})
}

// Clear records a clear.
func (s *Surface) Clear(c color.Color) {
	s.record(ClearCommand{Color: gg.FromColor(c)})
}

// DrawLine records a line.
func (s *Surface) DrawLine(p0, p1 gg.Point, b render.Brush, strokeWidth float64) {
	col, ok := s.brushColor(b)
	if !ok {
		return
	}
	s.record(DrawLineCommand{P0: p0, P1: p1, Color: col, Width: strokeWidth})
}

// FillRectangle records a filled rectangle.
func (s *Surface) FillRectangle(r render.Rect, b render.Brush) {
	col, ok := s.brushColor(b)
	if !ok {
		return
	}
	s.record(FillRectCommand{Rect: r, Color: col})
}

// DrawRectangle records a rectangle outline.
func (s *Surface) DrawRectangle(r render.Rect, b render.Brush, strokeWidth float64) {
	col, ok := s.brushColor(b)
	if !ok {
		return
	}
	s.record(StrokeRectCommand{Rect: r, Color: col, Width: strokeWidth})
}

// EndDraw completes the batch and stores it as a Recording.
func (s *Surface) EndDraw() error {
	if s.released {
		return ErrReleased
	}
	if !s.drawing {
		return ErrNotDrawing
	}
	s.drawing = false
	s.current = append(s.current, EndDrawCommand{})
	s.frames = append(s.frames, &Recording{Size: s.Size(), Commands: s.current})
	s.current = nil

	if s.err != nil {
		return s.err
	}
	if err := s.factory.failEndDraw; err != nil {
		s.factory.failEndDraw = nil
		return err
	}
	return nil
}

// Resize changes the pixel size.
func (s *Surface) Resize(size render.PixelSize) error {
	if s.released {
		return ErrReleased
	}
	s.size = size
	s.resizes++
	return nil
}

// Release marks the surface released. Release is idempotent.
func (s *Surface) Release() {
	s.released = true
}

// Released reports whether Release was called.
func (s *Surface) Released() bool { return s.released }

// Frames returns every completed batch in order.
func (s *Surface) Frames() []*Recording { return s.frames }

// LastFrame returns the most recent completed batch, or nil.
func (s *Surface) LastFrame() *Recording {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Resizes returns how many times Resize succeeded.
func (s *Surface) Resizes() int { return s.resizes }

// Target returns the target the surface was created for.
func (s *Surface) Target() render.Target { return s.target }

func (s *Surface) record(c Command) {
	if !s.drawing {
		return
	}
	s.current = append(s.current, c)
}

func (s *Surface) brushColor(b render.Brush) (gg.RGBA, bool) {
	rb, ok := b.(*Brush)
	if !ok || rb.owner != s || rb.released || s.released {
		if s.err == nil {
			s.err = ErrForeignBrush
		}
		return gg.RGBA{}, false
	}
	return gg.FromColor(rb.color), true
}

// Brush is a solid brush of a recording surface.
type Brush struct {
	owner    *Surface
	color    color.Color
	released bool
}

// Color returns the brush color.
func (b *Brush) Color() color.Color { return b.color }

// Release marks the brush released. Release is idempotent.
func (b *Brush) Release() { b.released = true }

// Released reports whether Release was called.
func (b *Brush) Released() bool { return b.released }
