// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shell

import (
	"log/slog"

	"github.com/gogpu/gghello/render"
)

// Shell owns the application window and turns its events into Renderer
// calls.
//
// Shell is NOT safe for concurrent use. All calls happen on the goroutine
// running RunMessageLoop.
type Shell struct {
	host     Host
	renderer *render.Renderer
	registry *Registry
	cfg      WindowConfig
	log      *slog.Logger

	win WindowID
}

// Option configures a Shell during creation.
type Option func(*Shell)

// WithWindow sets the window class, title and initial size.
func WithWindow(cfg WindowConfig) Option {
	return func(s *Shell) {
		s.cfg = cfg
	}
}

// WithRegistry shares a window registry between shells.
func WithRegistry(reg *Registry) Option {
	return func(s *Shell) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithLogger sets the logger for window lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.log = l
		}
	}
}

// DefaultWindowConfig returns the window created when no WithWindow option
// is given.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Class:  "GGHelloApp",
		Title:  "gg Demo Application",
		Width:  640,
		Height: 480,
	}
}

// New creates a Shell that drives r through host.
func New(host Host, r *render.Renderer, opts ...Option) *Shell {
	s := &Shell{
		host:     host,
		renderer: r,
		registry: NewRegistry(),
		cfg:      DefaultWindowConfig(),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize creates the graphics factory, registers the window class,
// creates the window with the renderer as creation payload and shows it.
//
// A factory failure is returned as is; class and window failures are
// returned as *PlatformError.
func (s *Shell) Initialize() error {
	if err := s.renderer.CreateDeviceIndependentResources(); err != nil {
		return err
	}

	if err := s.host.RegisterClass(s.cfg.Class, s); err != nil {
		return &PlatformError{Op: "register class", Err: err}
	}

	win, err := s.host.CreateWindow(s.cfg, s.renderer)
	if err != nil {
		return &PlatformError{Op: "create window", Err: err}
	}
	s.win = win
	s.log.Info("shell: window created", "window", uintptr(win), "title", s.cfg.Title,
		"width", s.cfg.Width, "height", s.cfg.Height)

	s.host.Show(win)
	s.host.Update(win)
	return nil
}

// RunMessageLoop pumps window events until the window is destroyed and
// returns the quit code.
func (s *Shell) RunMessageLoop() int {
	code := s.host.Run()
	s.log.Info("shell: message loop finished", "code", code)
	return code
}

// HandleEvent implements EventHandler.
//
// Events for windows without an associated renderer, and events the shell
// does not act on, get the host's default handling.
func (s *Shell) HandleEvent(win WindowID, ev Event) Result {
	if c, ok := ev.(Created); ok {
		return s.onCreated(win, c)
	}

	r, ok := s.registry.Resolve(win)
	if !ok {
		return s.host.DefaultProc(win, ev)
	}

	switch e := ev.(type) {
	case Resized:
		if err := r.Resize(e.Width, e.Height); err != nil {
			s.log.Warn("shell: resize failed", "window", uintptr(win), "err", err)
		}
		return 0

	case DisplayChanged:
		s.host.Invalidate(win)
		return 0

	case PaintRequested:
		if err := r.Render(); err != nil {
			s.log.Warn("shell: render failed", "window", uintptr(win), "err", err)
		}
		s.host.Validate(win)
		return 0

	case Destroyed:
		s.registry.Detach(win)
		s.host.PostQuit(0)
		return 0

	default:
		return s.host.DefaultProc(win, ev)
	}
}

func (s *Shell) onCreated(win WindowID, c Created) Result {
	r, ok := c.Payload.(*render.Renderer)
	if !ok || r == nil {
		s.log.Warn("shell: window created without renderer", "window", uintptr(win))
		return s.host.DefaultProc(win, c)
	}
	s.registry.Attach(win, r)
	r.Bind(s.host.Target(win))
	return 0
}

// Window returns the window created by Initialize.
func (s *Shell) Window() WindowID {
	return s.win
}

// Registry returns the window registry.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Renderer returns the renderer driven by the shell.
func (s *Shell) Renderer() *render.Renderer {
	return s.renderer
}
