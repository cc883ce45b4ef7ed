// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux

package platform

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

// x11Host drives top-level windows on an X server. The window class maps
// to WM_CLASS; there is no server-side registration.
type x11Host struct {
	xu *xgbutil.XUtil

	classes map[string]shell.EventHandler
	windows map[xproto.Window]*x11Window
	code    int
	closed  bool
}

type x11Window struct {
	win     *xwindow.Window
	handler shell.EventHandler
	target  *x11Target
	width   int
	height  int
}

// NewNative connects to the X server named by $DISPLAY.
func NewNative() (shell.Host, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("platform: connect to X server: %w", err)
	}

	h := &x11Host{
		xu:      xu,
		classes: make(map[string]shell.EventHandler),
		windows: make(map[xproto.Window]*x11Window),
	}

	// A root window reconfiguration is a screen mode change.
	root := xwindow.New(xu, xu.RootWin())
	if err := root.Listen(xproto.EventMaskStructureNotify); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("platform: listen on root window: %w", err)
	}
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, _ xevent.ConfigureNotifyEvent) {
		for _, w := range h.windows {
			w.handler.HandleEvent(shell.WindowID(w.win.Id), shell.DisplayChanged{})
		}
	}).Connect(xu, xu.RootWin())

	return h, nil
}

func (h *x11Host) RegisterClass(name string, handler shell.EventHandler) error {
	if h.closed {
		return ErrClosed
	}
	h.classes[name] = handler
	return nil
}

func (h *x11Host) CreateWindow(cfg shell.WindowConfig, payload any) (shell.WindowID, error) {
	if h.closed {
		return 0, ErrClosed
	}
	handler, ok := h.classes[cfg.Class]
	if !ok {
		return 0, unknownClass(cfg.Class)
	}

	conn := h.xu.Conn()
	screen := h.xu.Screen()
	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	// No background: invalidation must not erase the last frame.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		h.xu.RootWin(),
		0, 0,
		uint16(cfg.Width), uint16(cfg.Height),
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixmap|xproto.CwEventMask,
		[]uint32{
			xproto.BackPixmapNone,
			uint32(xproto.EventMaskExposure | xproto.EventMaskStructureNotify),
		},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("create window: %w", err)
	}

	win := xwindow.New(h.xu, wid)
	if err := icccm.WmNameSet(h.xu, wid, cfg.Title); err != nil {
		return 0, fmt.Errorf("set WM_NAME: %w", err)
	}
	if err := icccm.WmClassSet(h.xu, wid, &icccm.WmClass{Instance: cfg.Class, Class: cfg.Class}); err != nil {
		return 0, fmt.Errorf("set WM_CLASS: %w", err)
	}
	// Destroy the window ourselves so DestroyNotify still reaches the handler.
	win.WMGracefulClose(func(w *xwindow.Window) {
		xproto.DestroyWindow(conn, w.Id)
	})

	w := &x11Window{
		win:     win,
		handler: handler,
		target:  &x11Target{xu: h.xu, win: win},
		width:   cfg.Width,
		height:  cfg.Height,
	}
	h.windows[wid] = w
	h.connect(w)

	handler.HandleEvent(shell.WindowID(wid), shell.Created{Payload: payload})
	return shell.WindowID(wid), nil
}

func (h *x11Host) connect(w *x11Window) {
	id := shell.WindowID(w.win.Id)

	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			w.handler.HandleEvent(id, shell.PaintRequested{})
		}
	}).Connect(h.xu, w.win.Id)

	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		width, height := int(ev.Width), int(ev.Height)
		if width == w.width && height == w.height {
			return
		}
		w.width, w.height = width, height
		w.handler.HandleEvent(id, shell.Resized{Width: width, Height: height})
	}).Connect(h.xu, w.win.Id)

	xevent.DestroyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.DestroyNotifyEvent) {
		w.handler.HandleEvent(id, shell.Destroyed{})
		xevent.Detach(h.xu, w.win.Id)
		delete(h.windows, w.win.Id)
	}).Connect(h.xu, w.win.Id)
}

func (h *x11Host) Show(win shell.WindowID) {
	if w, ok := h.windows[xproto.Window(win)]; ok {
		w.win.Map()
	}
}

// Update is a no-op: the server sends Expose once the window is mapped.
func (h *x11Host) Update(shell.WindowID) {}

func (h *x11Host) Target(win shell.WindowID) render.Target {
	if w, ok := h.windows[xproto.Window(win)]; ok {
		return w.target
	}
	return nil
}

func (h *x11Host) Invalidate(win shell.WindowID) {
	xproto.ClearArea(h.xu.Conn(), true, xproto.Window(win), 0, 0, 0, 0)
}

// Validate is a no-op: X has no pending update region.
func (h *x11Host) Validate(shell.WindowID) {}

func (h *x11Host) PostQuit(code int) {
	h.code = code
	xevent.Quit(h.xu)
}

func (h *x11Host) Run() int {
	xevent.Main(h.xu)
	return h.code
}

func (h *x11Host) DefaultProc(shell.WindowID, shell.Event) shell.Result {
	return 0
}

func (h *x11Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.xu.Conn().Close()
	return nil
}

// x11Target uploads RGBA frames through an xgraphics pixmap.
type x11Target struct {
	xu  *xgbutil.XUtil
	win *xwindow.Window
}

func (t *x11Target) ClientSize() (width, height int, err error) {
	geom, err := t.win.Geometry()
	if err != nil {
		return 0, 0, err
	}
	return geom.Width(), geom.Height(), nil
}

func (t *x11Target) Scale() float64 { return 1 }

func (t *x11Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

func (t *x11Target) Present(f render.Frame) error {
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	img := &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Stride,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
	ximg := xgraphics.NewConvert(t.xu, img)
	defer ximg.Destroy()

	if err := ximg.XSurfaceSet(t.win.Id); err != nil {
		return fmt.Errorf("platform: x11 surface: %w: %w", render.ErrRecreateTarget, err)
	}
	ximg.XDraw()
	ximg.XPaint(t.win.Id)
	return nil
}
