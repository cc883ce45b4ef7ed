// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shell

import "fmt"

// WindowID identifies a native window. Its value is host specific.
type WindowID uintptr

// Result is the value a handled event returns to the host.
type Result uintptr

// Event is a window event delivered by a Host.
type Event interface {
	fmt.Stringer
}

// Created is delivered once, while the window is being created.
// Payload is the value passed to Host.CreateWindow.
type Created struct {
	Payload any
}

// Resized reports a new client area size in pixels.
type Resized struct {
	Width, Height int
}

// DisplayChanged reports a change of display resolution or layout.
type DisplayChanged struct{}

// PaintRequested asks for the window content to be drawn.
type PaintRequested struct{}

// Destroyed reports that the window is gone.
type Destroyed struct{}

// Native is any other host event, passed through to default handling.
type Native struct {
	Message uint32
	WParam  uintptr
	LParam  uintptr
}

func (Created) String() string        { return "Created" }
func (e Resized) String() string      { return fmt.Sprintf("Resized(%dx%d)", e.Width, e.Height) }
func (DisplayChanged) String() string { return "DisplayChanged" }
func (PaintRequested) String() string { return "PaintRequested" }
func (Destroyed) String() string      { return "Destroyed" }
func (e Native) String() string       { return fmt.Sprintf("Native(%#x)", e.Message) }
