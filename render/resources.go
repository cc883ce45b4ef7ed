// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

// deviceResources is one generation of device-dependent resources.
// A value exists only with all three members created.
type deviceResources struct {
	generation uint64
	surface    Surface
	gray       Brush
	blue       Brush
}

// createDeviceResources builds a complete generation or nothing: any
// resource created before a failure is released before returning.
func createDeviceResources(f Factory, t Target, generation uint64) (*deviceResources, error) {
	w, h, err := t.ClientSize()
	if err != nil {
		return nil, &GraphicsError{Op: "client size", Err: err}
	}

	surface, err := f.CreateSurface(t, PixelSize{Width: w, Height: h})
	if err != nil {
		return nil, &GraphicsError{Op: "create surface", Err: err}
	}

	gray, err := surface.CreateSolidBrush(ColorGrid)
	if err != nil {
		surface.Release()
		return nil, &GraphicsError{Op: "create brush", Err: err}
	}

	blue, err := surface.CreateSolidBrush(ColorAccent)
	if err != nil {
		gray.Release()
		surface.Release()
		return nil, &GraphicsError{Op: "create brush", Err: err}
	}

	return &deviceResources{
		generation: generation,
		surface:    surface,
		gray:       gray,
		blue:       blue,
	}, nil
}

// release frees brushes before the surface they belong to.
func (d *deviceResources) release() {
	d.blue.Release()
	d.gray.Release()
	d.surface.Release()
}
