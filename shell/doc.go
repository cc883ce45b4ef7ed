// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shell connects a native window to a render.Renderer.
//
// A [Host] supplies the platform windowing service: class registration,
// window creation, the blocking event pump and repaint bookkeeping. The
// [Shell] receives the host's events and maps them to renderer calls:
//
//	Created        attach the renderer to the window, bind its target
//	Resized        Renderer.Resize
//	DisplayChanged invalidate the whole client area
//	PaintRequested Renderer.Render, then validate the client area
//	Destroyed      detach and post quit
//	anything else  Host.DefaultProc
//
// The renderer reaches the shell only through the creation event, so the
// association is kept in a [Registry] keyed by window.
package shell
