// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shell

import "github.com/gogpu/gghello/render"

// EventHandler receives window events from a Host.
type EventHandler interface {
	HandleEvent(win WindowID, ev Event) Result
}

// WindowConfig describes the window to create.
type WindowConfig struct {
	Class  string
	Title  string
	Width  int
	Height int
}

// Host is the windowing service of the platform.
//
// All methods are called from the goroutine running Run, which on most
// platforms must be the thread that created the windows.
type Host interface {
	// RegisterClass registers a window class whose events go to h.
	RegisterClass(name string, h EventHandler) error

	// CreateWindow creates a hidden window of a registered class. The
	// handler receives Created{Payload: payload} before CreateWindow returns.
	CreateWindow(cfg WindowConfig, payload any) (WindowID, error)

	// Show makes the window visible.
	Show(win WindowID)

	// Update delivers a pending paint request immediately, if any.
	Update(win WindowID)

	// Target returns the render target for the window's client area.
	Target(win WindowID) render.Target

	// Invalidate marks the whole client area as needing a repaint without
	// erasing it or painting right away.
	Invalidate(win WindowID)

	// Validate clears the pending repaint of the whole client area.
	Validate(win WindowID)

	// PostQuit asks Run to return code once pending events are handled.
	PostQuit(code int)

	// Run pumps events until PostQuit and returns the quit code.
	Run() int

	// DefaultProc applies the platform's default handling to ev.
	DefaultProc(win WindowID, ev Event) Result

	// Close releases the host.
	Close() error
}
