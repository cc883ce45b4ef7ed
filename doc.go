// Package gghello opens one window and draws a fixed 2D scene into it with
// the gg rasterizer.
//
// # Overview
//
// The scene is a white background, a 10-unit light slate gray grid, a filled
// gray square of half-extent 50 and a cornflower blue outline square of
// half-extent 100, both centered in the client area. It is redrawn on every
// paint request and follows window resizes.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/gghello"
//	    _ "github.com/gogpu/gghello/backend/raster"
//	)
//
//	app, err := gghello.New(gghello.WithSize(800, 600))
//	if err != nil {
//	    return err
//	}
//	defer app.Close()
//	if err := app.Initialize(); err != nil {
//	    return err
//	}
//	app.Run()
//
// # Architecture
//
//   - render: factory and device resources, the scene, the backend registry
//   - backend/raster: surfaces on gg.Context
//   - recording: surfaces that record draw commands
//   - shell: event mapping between a host and the renderer
//   - platform: Win32, X11 and headless hosts
//
// # Device loss
//
// When presenting reports render.ErrRecreateTarget the renderer drops its
// surface and brushes and rebuilds them on the next paint. The factory
// survives.
//
// # Logging
//
// Silent by default. See [SetLogger].
package gghello
