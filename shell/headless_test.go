// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shell_test

import (
	"testing"

	"github.com/gogpu/gghello/backend/raster"
	"github.com/gogpu/gghello/platform"
	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

func newRasterRenderer() *render.Renderer {
	reg := render.NewRegistry()
	reg.Register(raster.Name, 10, func() (render.Factory, error) { return raster.NewFactory(), nil }, nil)
	return render.New(render.WithRegistry(reg))
}

func TestShellOnHeadlessHost(t *testing.T) {
	host := platform.NewHeadless()
	r := newRasterRenderer()
	t.Cleanup(func() { _ = r.Close() })

	s := shell.New(host, r, shell.WithWindow(shell.WindowConfig{
		Class: "Test", Title: "test", Width: 120, Height: 80,
	}))
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	win := s.Window()
	target := host.HeadlessTarget(win)

	// Update paints the freshly shown window.
	if target.Presents() != 1 {
		t.Fatalf("presents after Initialize = %d, want 1", target.Presents())
	}
	if host.Pending(win) {
		t.Error("window still pending after paint")
	}
	if f := target.LastFrame(); f.Width != 120 || f.Height != 80 {
		t.Errorf("frame = %dx%d, want 120x80", f.Width, f.Height)
	}

	host.Resize(win, 200, 150)
	host.ChangeDisplay()
	host.LoseDevice(win)
	host.Destroy(win)

	if code := s.RunMessageLoop(); code != 0 {
		t.Errorf("RunMessageLoop() = %d, want 0", code)
	}

	// Resize, display change and the lost frame are followed by the
	// queued Destroy; no paint reached the target in between because
	// repaints are synthesized only once the queue is empty.
	if target.Presents() != 1 {
		t.Errorf("presents = %d, want 1", target.Presents())
	}
	if s.Registry().Len() != 0 {
		t.Error("window still registered after Destroyed")
	}
	if _, ok := host.Quit(); !ok {
		t.Error("PostQuit not called")
	}
}

func TestShellRepaintAfterResize(t *testing.T) {
	host := platform.NewHeadless()
	r := newRasterRenderer()
	t.Cleanup(func() { _ = r.Close() })

	s := shell.New(host, r)
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}
	win := s.Window()
	target := host.HeadlessTarget(win)

	host.Resize(win, 320, 200)
	s.RunMessageLoop()

	if target.Presents() != 2 {
		t.Fatalf("presents = %d, want 2", target.Presents())
	}
	if f := target.LastFrame(); f.Width != 320 || f.Height != 200 {
		t.Errorf("frame after resize = %dx%d, want 320x200", f.Width, f.Height)
	}
	if r.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1: resize must not rebuild resources", r.Generation())
	}
}

func TestShellRecoversFromDeviceLoss(t *testing.T) {
	host := platform.NewHeadless()
	r := newRasterRenderer()
	t.Cleanup(func() { _ = r.Close() })

	s := shell.New(host, r)
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}
	win := s.Window()
	target := host.HeadlessTarget(win)

	host.LoseDevice(win)
	host.Invalidate(win)
	s.RunMessageLoop()

	if r.State() != render.Absent {
		t.Fatalf("State() after lost present = %v, want Absent", r.State())
	}
	if target.Presents() != 1 {
		t.Errorf("presents = %d, want 1", target.Presents())
	}

	// The next paint rebuilds the generation and presents again.
	host.Invalidate(win)
	s.RunMessageLoop()
	if r.State() != render.Present || r.Generation() != 2 {
		t.Errorf("after repaint: state %v generation %d, want Present 2", r.State(), r.Generation())
	}
	if target.Presents() != 2 {
		t.Errorf("presents = %d, want 2", target.Presents())
	}
}

func TestShellDisplayChangeRepaints(t *testing.T) {
	host := platform.NewHeadless()
	r := newRasterRenderer()
	t.Cleanup(func() { _ = r.Close() })

	s := shell.New(host, r)
	if err := s.Initialize(); err != nil {
		t.Fatal(err)
	}
	win := s.Window()

	host.ChangeDisplay()
	s.RunMessageLoop()

	if got := host.HeadlessTarget(win).Presents(); got != 2 {
		t.Errorf("presents = %d, want 2", got)
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}
}
