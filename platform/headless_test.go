// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

// logHandler records events and optionally reacts to them.
type logHandler struct {
	events []string
	on     func(win shell.WindowID, ev shell.Event)
}

func (h *logHandler) HandleEvent(win shell.WindowID, ev shell.Event) shell.Result {
	h.events = append(h.events, ev.String())
	if h.on != nil {
		h.on(win, ev)
	}
	return 0
}

func newWindow(t *testing.T, h *Headless, eh shell.EventHandler) shell.WindowID {
	t.Helper()
	if err := h.RegisterClass("Test", eh); err != nil {
		t.Fatalf("RegisterClass() = %v", err)
	}
	win, err := h.CreateWindow(shell.WindowConfig{Class: "Test", Width: 64, Height: 32}, "payload")
	if err != nil {
		t.Fatalf("CreateWindow() = %v", err)
	}
	return win
}

func TestHeadlessCreateDeliversPayload(t *testing.T) {
	h := NewHeadless()
	var payload any
	eh := &logHandler{on: func(_ shell.WindowID, ev shell.Event) {
		if c, ok := ev.(shell.Created); ok {
			payload = c.Payload
		}
	}}

	win := newWindow(t, h, eh)
	if win == 0 {
		t.Fatal("CreateWindow() returned window 0")
	}
	if payload != "payload" {
		t.Errorf("Created payload = %v, want %q", payload, "payload")
	}
	if h.Visible(win) {
		t.Error("window visible before Show")
	}
	if !h.Pending(win) {
		t.Error("new window should need a paint")
	}

	w, ht, err := h.Target(win).ClientSize()
	if err != nil || w != 64 || ht != 32 {
		t.Errorf("ClientSize() = %d, %d, %v, want 64, 32", w, ht, err)
	}
}

func TestHeadlessErrors(t *testing.T) {
	h := NewHeadless()
	if _, err := h.CreateWindow(shell.WindowConfig{Class: "Nope"}, nil); !errors.Is(err, ErrUnknownClass) {
		t.Errorf("CreateWindow(unknown class) = %v, want ErrUnknownClass", err)
	}

	failure := errors.New("injected")
	h.FailRegisterClass(failure)
	if err := h.RegisterClass("Test", &logHandler{}); !errors.Is(err, failure) {
		t.Errorf("RegisterClass() = %v, want injected", err)
	}
	if err := h.RegisterClass("Test", &logHandler{}); err != nil {
		t.Errorf("second RegisterClass() = %v", err)
	}
	h.FailCreateWindow(failure)
	if _, err := h.CreateWindow(shell.WindowConfig{Class: "Test"}, nil); !errors.Is(err, failure) {
		t.Errorf("CreateWindow() = %v, want injected", err)
	}

	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.RegisterClass("Other", &logHandler{}); !errors.Is(err, ErrClosed) {
		t.Errorf("RegisterClass() after Close = %v, want ErrClosed", err)
	}
	if _, err := h.CreateWindow(shell.WindowConfig{Class: "Test"}, nil); !errors.Is(err, ErrClosed) {
		t.Errorf("CreateWindow() after Close = %v, want ErrClosed", err)
	}
}

func TestHeadlessUpdatePaintsVisibleWindow(t *testing.T) {
	h := NewHeadless()
	eh := &logHandler{}
	win := newWindow(t, h, eh)

	h.Update(win)
	if len(eh.events) != 1 {
		t.Errorf("Update on hidden window delivered %v", eh.events)
	}

	h.Show(win)
	h.Update(win)
	want := []string{"Created", "PaintRequested"}
	if !reflect.DeepEqual(eh.events, want) {
		t.Errorf("events = %v, want %v", eh.events, want)
	}
}

func TestHeadlessRunOrder(t *testing.T) {
	h := NewHeadless()
	eh := &logHandler{}
	eh.on = func(win shell.WindowID, ev shell.Event) {
		switch ev.(type) {
		case shell.PaintRequested:
			h.Validate(win)
		case shell.Destroyed:
			h.PostQuit(3)
		}
	}
	win := newWindow(t, h, eh)
	h.Show(win)

	h.Resize(win, 100, 50)
	h.Post(win, shell.Native{Message: 0x20})

	// Events first, then the synthesized paint; the queue then drains.
	if code := h.Run(); code != 0 {
		t.Errorf("Run() = %d, want 0", code)
	}
	want := []string{"Created", "Resized(100x50)", "Native(0x20)", "PaintRequested"}
	if !reflect.DeepEqual(eh.events, want) {
		t.Errorf("events = %v, want %v", eh.events, want)
	}
	if _, ok := h.Quit(); ok {
		t.Error("Quit() reported true without PostQuit")
	}

	h.Destroy(win)
	h.Post(win, shell.PaintRequested{})
	if code := h.Run(); code != 3 {
		t.Errorf("Run() = %d, want 3", code)
	}
	if last := eh.events[len(eh.events)-1]; last != "Destroyed" {
		t.Errorf("last event = %q, want Destroyed", last)
	}
	if h.Target(win) != nil {
		t.Error("destroyed window still has a target")
	}
}

func TestHeadlessRunTerminatesWithoutValidate(t *testing.T) {
	h := NewHeadless()
	eh := &logHandler{}
	win := newWindow(t, h, eh)
	h.Show(win)

	h.Run()
	if n := len(eh.events); n != 2 {
		t.Errorf("events = %v, want one paint", eh.events)
	}
	if h.Pending(win) {
		t.Error("window still pending")
	}
}

func TestHeadlessDefaultProcValidates(t *testing.T) {
	h := NewHeadless()
	win := newWindow(t, h, &logHandler{})

	if res := h.DefaultProc(win, shell.Resized{}); res != 0 || !h.Pending(win) {
		t.Error("DefaultProc(Resized) should not validate")
	}
	h.DefaultProc(win, shell.PaintRequested{})
	if h.Pending(win) {
		t.Error("DefaultProc(PaintRequested) should validate")
	}
}

func TestHeadlessChangeDisplay(t *testing.T) {
	h := NewHeadless()
	a := &logHandler{}
	b := &logHandler{}
	if err := h.RegisterClass("A", a); err != nil {
		t.Fatal(err)
	}
	if err := h.RegisterClass("B", b); err != nil {
		t.Fatal(err)
	}
	if _, err := h.CreateWindow(shell.WindowConfig{Class: "A"}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := h.CreateWindow(shell.WindowConfig{Class: "B"}, nil); err != nil {
		t.Fatal(err)
	}

	h.ChangeDisplay()
	h.Run()
	for name, eh := range map[string]*logHandler{"A": a, "B": b} {
		if !reflect.DeepEqual(eh.events, []string{"Created", "DisplayChanged"}) {
			t.Errorf("window %s events = %v", name, eh.events)
		}
	}
}

func TestHeadlessTargetPresent(t *testing.T) {
	h := NewHeadless(WithScale(2), WithFormat(gputypes.TextureFormatBGRA8Unorm))
	win := newWindow(t, h, &logHandler{})
	target := h.HeadlessTarget(win)

	if target.Scale() != 2 || target.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Scale() = %v, Format() = %v", target.Scale(), target.Format())
	}
	if target.Image() != nil {
		t.Error("Image() before first frame should be nil")
	}

	pix := []byte{
		1, 2, 3, 255, 4, 5, 6, 255, 0, 0, // padded row
		7, 8, 9, 255, 10, 11, 12, 255, 0, 0,
	}
	frame := render.Frame{Width: 2, Height: 2, Stride: 10, Format: gputypes.TextureFormatBGRA8Unorm, Pix: pix}
	if err := target.Present(frame); err != nil {
		t.Fatalf("Present() = %v", err)
	}
	pix[0] = 99
	if target.LastFrame().Pix[0] != 1 {
		t.Error("Present kept a reference to the caller's buffer")
	}

	img := target.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Fatalf("Image() bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(0, 0); c.R != 3 || c.G != 2 || c.B != 1 {
		t.Errorf("pixel (0,0) = %v, want swizzled (3,2,1)", c)
	}
	if c := img.RGBAAt(1, 1); c.R != 12 || c.G != 11 || c.B != 10 {
		t.Errorf("pixel (1,1) = %v, want swizzled (12,11,10)", c)
	}
	if target.Presents() != 1 {
		t.Errorf("Presents() = %d, want 1", target.Presents())
	}
}

func TestHeadlessLoseDevice(t *testing.T) {
	h := NewHeadless()
	win := newWindow(t, h, &logHandler{})
	target := h.HeadlessTarget(win)

	h.LoseDevice(win)
	frame := render.Frame{Width: 1, Height: 1, Stride: 4, Pix: make([]byte, 4)}
	if err := target.Present(frame); !errors.Is(err, render.ErrRecreateTarget) {
		t.Errorf("Present() on lost device = %v, want ErrRecreateTarget", err)
	}
	if err := target.Present(frame); err != nil {
		t.Errorf("second Present() = %v", err)
	}
	if target.Presents() != 1 {
		t.Errorf("Presents() = %d, want 1", target.Presents())
	}
}
