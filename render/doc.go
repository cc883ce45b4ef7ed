// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render owns the graphics resources of a gghello window and draws
// its fixed scene.
//
// # Resources
//
// Resources fall into two groups:
//
//   - Device-independent: the [Factory]. Created once by
//     [Renderer.CreateDeviceIndependentResources] and kept until
//     [Renderer.Close]. It survives device loss.
//   - Device-dependent: the [Surface] bound to the window and the two solid
//     brushes created from it. They are created and released together as one
//     generation.
//
// The device-dependent generation has two states, [Absent] and [Present].
// [Renderer.EnsureDeviceResources] moves Absent to Present, and
// [Renderer.DiscardDeviceResources] or a device loss reported by
// [Surface.EndDraw] moves Present back to Absent. [Renderer.Resize] keeps the
// state unchanged.
//
// # Backends
//
// Factories come from a registry of named backends, following the
// database/sql driver pattern:
//
//	import _ "github.com/gogpu/gghello/backend/raster" // registers "raster"
//
//	r := render.New()
//	if err := r.CreateDeviceIndependentResources(); err != nil {
//	    return err
//	}
//
// Without a backend name the available backend with the highest priority is
// used.
//
// # Device loss
//
// A surface reports device loss by returning an error that matches
// [ErrRecreateTarget] from EndDraw. Render treats that as success: the
// generation is discarded and recreated on the next call.
//
// Renderer is not safe for concurrent use. It is driven from the single UI
// goroutine that owns the window.
package render
