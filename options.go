package gghello

import (
	"errors"
	"fmt"

	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("gghello: invalid config")

// Config holds the application settings.
type Config struct {
	// Title is the window caption.
	Title string

	// ClassName is the window class registered with the host.
	ClassName string

	// Width and Height are the initial window size in pixels.
	Width, Height int

	// Backend names the graphics backend. Empty selects the best available.
	Backend string

	// Host replaces the native windowing host, e.g. with a headless one.
	// An injected host is not closed by App.Close.
	Host shell.Host

	// Registry resolves graphics backends. Nil means the global registry.
	Registry *render.Registry
}

// Option configures an App during creation.
//
// Example:
//
//	app, err := gghello.New(
//	    gghello.WithTitle("Grid"),
//	    gghello.WithSize(800, 600),
//	)
type Option func(*Config)

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	w := shell.DefaultWindowConfig()
	return Config{
		Title:     w.Title,
		ClassName: w.Class,
		Width:     w.Width,
		Height:    w.Height,
	}
}

// WithTitle sets the window caption.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithSize sets the initial window size in pixels.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width, c.Height = width, height
	}
}

// WithClassName sets the window class name.
func WithClassName(name string) Option {
	return func(c *Config) {
		c.ClassName = name
	}
}

// WithBackend selects a graphics backend by registered name.
func WithBackend(name string) Option {
	return func(c *Config) {
		c.Backend = name
	}
}

// WithHost injects the windowing host.
func WithHost(h shell.Host) Option {
	return func(c *Config) {
		c.Host = h
	}
}

// WithRegistry resolves graphics backends from reg.
func WithRegistry(reg *render.Registry) Option {
	return func(c *Config) {
		c.Registry = reg
	}
}

// Validate reports whether c can create a window.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.ClassName == "" {
		return fmt.Errorf("%w: empty class name", ErrInvalidConfig)
	}
	return nil
}

func (c Config) window() shell.WindowConfig {
	return shell.WindowConfig{
		Class:  c.ClassName,
		Title:  c.Title,
		Width:  c.Width,
		Height: c.Height,
	}
}
