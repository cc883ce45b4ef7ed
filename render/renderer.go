// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"log/slog"
	"reflect"
)

// Renderer manages the graphics resources of one window and draws its
// fixed scene.
//
// Renderer is NOT safe for concurrent use.
type Renderer struct {
	backend  string
	registry *Registry
	log      *slog.Logger

	factory Factory
	target  Target
	res     *deviceResources

	generation uint64
	frames     uint64
}

// New creates a Renderer with no resources.
func New(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		backend:  o.backend,
		registry: o.registry,
		log:      o.logger,
	}
}

// CreateDeviceIndependentResources creates the graphics factory.
// It is a no-op when the factory already exists.
func (r *Renderer) CreateDeviceIndependentResources() error {
	if r.factory != nil {
		return nil
	}

	var (
		f   Factory
		err error
	)
	if r.backend != "" {
		f, err = r.registry.NewFactoryByName(r.backend)
	} else {
		f, err = r.registry.NewFactory()
	}
	if err != nil {
		return &GraphicsError{Op: "create factory", Err: err}
	}

	r.factory = f
	r.log.Info("render: factory created", "backend", f.Name())
	return nil
}

// Bind attaches the window target surfaces are created for.
// Binding a different target discards the current generation. Targets of
// a non-comparable type never match, so rebinding one always discards.
func (r *Renderer) Bind(t Target) {
	if sameTarget(r.target, t) {
		return
	}
	r.DiscardDeviceResources()
	r.target = t
}

func sameTarget(a, b Target) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// EnsureDeviceResources creates the surface and both brushes when they are
// absent. Either all three exist afterwards or none does.
func (r *Renderer) EnsureDeviceResources() error {
	if r.res != nil {
		return nil
	}
	if r.factory == nil {
		return &GraphicsError{Op: "create surface", Err: ErrNoFactory}
	}
	if r.target == nil {
		return &GraphicsError{Op: "create surface", Err: ErrNoTarget}
	}

	res, err := createDeviceResources(r.factory, r.target, r.generation+1)
	if err != nil {
		return err
	}

	r.res = res
	r.generation = res.generation
	r.log.Info("render: device resources created",
		"generation", res.generation,
		"size", res.surface.PixelSize().String())
	return nil
}

// Render draws one frame.
//
// Device loss reported by the surface is not an error: the generation is
// discarded and rebuilt by the next call.
func (r *Renderer) Render() error {
	if err := r.EnsureDeviceResources(); err != nil {
		return err
	}

	res := r.res
	res.surface.BeginDraw()
	drawScene(res.surface, res.gray, res.blue)
	err := res.surface.EndDraw()

	switch {
	case err == nil:
		r.frames++
		r.log.Debug("render: frame submitted", "generation", res.generation, "frame", r.frames)
		return nil
	case errors.Is(err, ErrRecreateTarget):
		r.log.Warn("render: device lost, discarding resources", "generation", res.generation, "err", err)
		r.DiscardDeviceResources()
		return nil
	default:
		return &GraphicsError{Op: "end draw", Err: err}
	}
}

// Resize resizes the surface in place. Without a surface it does nothing;
// the next Render creates one at the current client size.
func (r *Renderer) Resize(width, height int) error {
	if r.res == nil {
		return nil
	}
	size := PixelSize{Width: width, Height: height}
	if err := r.res.surface.Resize(size); err != nil {
		return &GraphicsError{Op: "resize", Err: err}
	}
	r.log.Debug("render: surface resized", "size", size.String())
	return nil
}

// DiscardDeviceResources releases the surface and both brushes.
// It is safe to call when they do not exist.
func (r *Renderer) DiscardDeviceResources() {
	if r.res == nil {
		return
	}
	r.res.release()
	r.log.Debug("render: device resources released", "generation", r.res.generation)
	r.res = nil
}

// State reports whether the device-dependent resources exist.
func (r *Renderer) State() State {
	if r.res == nil {
		return Absent
	}
	return Present
}

// Generation returns the number of device resource generations created so
// far. It increases by one on every successful EnsureDeviceResources that
// had to create resources.
func (r *Renderer) Generation() uint64 {
	return r.generation
}

// Frames returns the number of frames submitted successfully.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Factory returns the graphics factory, or nil before
// CreateDeviceIndependentResources.
func (r *Renderer) Factory() Factory {
	return r.factory
}

// Close releases every resource, device-independent ones included.
// Close is idempotent.
func (r *Renderer) Close() error {
	r.DiscardDeviceResources()
	if r.factory == nil {
		return nil
	}
	err := r.factory.Close()
	r.factory = nil
	return err
}
