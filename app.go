package gghello

import (
	"errors"
	"fmt"

	"github.com/gogpu/gghello/platform"
	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

// App wires a Renderer and a Shell to a windowing host.
//
// App is NOT safe for concurrent use; call every method from the goroutine
// that created it.
type App struct {
	cfg      Config
	host     shell.Host
	ownsHost bool

	renderer *render.Renderer
	shell    *shell.Shell
}

// New validates the options and returns an App. No window or graphics
// resource exists until Initialize.
func New(opts ...Option) (*App, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &App{cfg: cfg, host: cfg.Host}, nil
}

// Initialize opens the native host unless one was injected, creates the
// graphics factory and shows the window.
func (a *App) Initialize() error {
	if a.shell != nil && a.shell.Window() != 0 {
		return nil
	}
	if a.renderer != nil {
		_ = a.renderer.Close()
	}
	log := Logger()

	if a.host == nil {
		h, err := platform.NewNative()
		if err != nil {
			return fmt.Errorf("gghello: open host: %w", err)
		}
		a.host = h
		a.ownsHost = true
	}

	ropts := []render.Option{
		render.WithBackend(a.cfg.Backend),
		render.WithLogger(log),
	}
	if a.cfg.Registry != nil {
		ropts = append(ropts, render.WithRegistry(a.cfg.Registry))
	}
	a.renderer = render.New(ropts...)
	a.shell = shell.New(a.host, a.renderer,
		shell.WithWindow(a.cfg.window()),
		shell.WithLogger(log),
	)

	if err := a.shell.Initialize(); err != nil {
		return err
	}
	log.Info("gghello: initialized", "backend", a.renderer.Factory().Name())
	return nil
}

// Run pumps events until the window is destroyed and returns the quit code.
// Run returns 0 without pumping when Initialize did not succeed.
func (a *App) Run() int {
	if a.shell == nil || a.shell.Window() == 0 {
		return 0
	}
	return a.shell.RunMessageLoop()
}

// Close releases graphics resources and, if App opened it, the host.
func (a *App) Close() error {
	var errs []error
	if a.renderer != nil {
		errs = append(errs, a.renderer.Close())
	}
	if a.ownsHost && a.host != nil {
		errs = append(errs, a.host.Close())
		a.host = nil
		a.ownsHost = false
	}
	return errors.Join(errs...)
}

// Config returns the settings the App was created with.
func (a *App) Config() Config { return a.cfg }

// Renderer returns the renderer, or nil before Initialize.
func (a *App) Renderer() *render.Renderer { return a.renderer }

// Shell returns the window shell, or nil before Initialize.
func (a *App) Shell() *shell.Shell { return a.shell }

// Host returns the windowing host, or nil before Initialize when none was
// injected.
func (a *App) Host() shell.Host { return a.host }
