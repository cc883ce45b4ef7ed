// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

// Package gpu registers the "gpu" backend: raster surfaces whose gg
// contexts draw through the wgpu accelerator.
//
// Importing the package opens a GPU adapter through gg's accelerator. When
// no Vulkan, Metal or DX12 adapter is found the backend reports itself
// unavailable and the registry falls through to "raster".
//
//	import _ "github.com/gogpu/gghello/backend/gpu"
//
// Build with -tags nogpu to leave the GPU stack out entirely.
package gpu

import (
	"errors"

	"github.com/gogpu/gg"
	ggpu "github.com/gogpu/gg/gpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/gghello/backend/raster"
	"github.com/gogpu/gghello/render"
)

// Name is the backend name used for registration.
const Name = "gpu"

// Priority places the backend ahead of "raster".
const Priority = 20

var (
	// ErrNoAccelerator is returned when no GPU accelerator is registered.
	ErrNoAccelerator = errors.New("gpu: no accelerator available")

	// ErrNilProvider is returned by SetDeviceProvider for a nil provider.
	ErrNilProvider = errors.New("gpu: nil device provider")
)

func init() {
	render.Register(Name, Priority, func() (render.Factory, error) {
		return NewFactory()
	}, Available)
}

// Available reports whether gg has a GPU accelerator registered.
func Available() bool {
	return gg.Accelerator() != nil
}

// Accelerator returns the name of the active accelerator, or "" when none
// is registered.
func Accelerator() string {
	if a := gg.Accelerator(); a != nil {
		return a.Name()
	}
	return ""
}

// NewFactory creates a factory for GPU-accelerated surfaces. Surfaces flush
// pending GPU work in EndDraw before the frame is read back.
func NewFactory() (*raster.Factory, error) {
	if !Available() {
		return nil, ErrNoAccelerator
	}
	gg.Logger().Debug("gpu: factory created", "accelerator", Accelerator())
	return raster.NewFactory(raster.WithName(Name)), nil
}

// SetDeviceProvider makes the accelerator share p's device instead of
// opening its own. Call it before the first frame. Without an accelerator
// it does nothing.
func SetDeviceProvider(p gpucontext.DeviceProvider) error {
	if p == nil {
		return ErrNilProvider
	}
	return ggpu.SetDeviceProvider(p)
}
