// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

// HeadlessOption configures a Headless host.
type HeadlessOption func(*Headless)

// WithScale sets the pixels-per-unit scale reported by headless targets.
func WithScale(scale float64) HeadlessOption {
	return func(h *Headless) {
		if scale > 0 {
			h.scale = scale
		}
	}
}

// WithFormat sets the pixel format headless targets ask for.
func WithFormat(f gputypes.TextureFormat) HeadlessOption {
	return func(h *Headless) {
		h.format = f
	}
}

// Headless is a shell.Host without a display.
//
// Events are queued with Post and the helper methods, and dispatched by Run.
// Like a native pump, Run synthesizes a PaintRequested for every visible
// window with a pending repaint once the queue is empty. Run returns after
// PostQuit, or when no events and no repaints are left.
type Headless struct {
	scale  float64
	format gputypes.TextureFormat

	classes map[string]shell.EventHandler
	windows map[shell.WindowID]*headlessWindow
	order   []shell.WindowID
	next    shell.WindowID
	queue   []queuedEvent

	quit   bool
	code   int
	closed bool

	failClass  error
	failCreate error
}

type queuedEvent struct {
	win shell.WindowID
	ev  shell.Event
}

type headlessWindow struct {
	id        shell.WindowID
	cfg       shell.WindowConfig
	handler   shell.EventHandler
	target    *HeadlessTarget
	visible   bool
	dirty     bool
	destroyed bool
}

// NewHeadless creates a headless host.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{
		scale:   1,
		format:  gputypes.TextureFormatRGBA8Unorm,
		classes: make(map[string]shell.EventHandler),
		windows: make(map[shell.WindowID]*headlessWindow),
		next:    1,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FailRegisterClass makes the next RegisterClass return err.
func (h *Headless) FailRegisterClass(err error) { h.failClass = err }

// FailCreateWindow makes the next CreateWindow return err.
func (h *Headless) FailCreateWindow(err error) { h.failCreate = err }

// RegisterClass implements shell.Host.
func (h *Headless) RegisterClass(name string, handler shell.EventHandler) error {
	if h.closed {
		return ErrClosed
	}
	if err := h.failClass; err != nil {
		h.failClass = nil
		return err
	}
	h.classes[name] = handler
	return nil
}

// CreateWindow implements shell.Host.
func (h *Headless) CreateWindow(cfg shell.WindowConfig, payload any) (shell.WindowID, error) {
	if h.closed {
		return 0, ErrClosed
	}
	if err := h.failCreate; err != nil {
		h.failCreate = nil
		return 0, err
	}
	handler, ok := h.classes[cfg.Class]
	if !ok {
		return 0, unknownClass(cfg.Class)
	}

	w := &headlessWindow{
		id:      h.next,
		cfg:     cfg,
		handler: handler,
		target: &HeadlessTarget{
			width:  cfg.Width,
			height: cfg.Height,
			scale:  h.scale,
			format: h.format,
		},
		dirty: true,
	}
	h.next++
	h.windows[w.id] = w
	h.order = append(h.order, w.id)

	handler.HandleEvent(w.id, shell.Created{Payload: payload})
	return w.id, nil
}

// Show implements shell.Host.
func (h *Headless) Show(win shell.WindowID) {
	if w := h.window(win); w != nil {
		w.visible = true
	}
}

// Update implements shell.Host.
func (h *Headless) Update(win shell.WindowID) {
	if w := h.window(win); w != nil && w.visible && w.dirty {
		h.dispatch(w, shell.PaintRequested{})
	}
}

// Target implements shell.Host.
func (h *Headless) Target(win shell.WindowID) render.Target {
	if w := h.window(win); w != nil {
		return w.target
	}
	return nil
}

// Invalidate implements shell.Host.
func (h *Headless) Invalidate(win shell.WindowID) {
	if w := h.window(win); w != nil {
		w.dirty = true
	}
}

// Validate implements shell.Host.
func (h *Headless) Validate(win shell.WindowID) {
	if w := h.window(win); w != nil {
		w.dirty = false
	}
}

// PostQuit implements shell.Host.
func (h *Headless) PostQuit(code int) {
	h.quit = true
	h.code = code
}

// Run implements shell.Host.
func (h *Headless) Run() int {
	for !h.quit {
		if len(h.queue) > 0 {
			q := h.queue[0]
			h.queue = h.queue[1:]
			if w := h.window(q.win); w != nil {
				h.dispatch(w, q.ev)
			}
			continue
		}
		w := h.nextDirty()
		if w == nil {
			break
		}
		h.dispatch(w, shell.PaintRequested{})
		// A handler that neither validates nor defers to DefaultProc would
		// otherwise be asked to paint forever.
		w.dirty = false
	}
	return h.code
}

// DefaultProc implements shell.Host. A paint request is validated; every
// other event is ignored.
func (h *Headless) DefaultProc(win shell.WindowID, ev shell.Event) shell.Result {
	if _, ok := ev.(shell.PaintRequested); ok {
		h.Validate(win)
	}
	return 0
}

// Close implements shell.Host.
func (h *Headless) Close() error {
	h.closed = true
	return nil
}

// Post queues ev for win.
func (h *Headless) Post(win shell.WindowID, ev shell.Event) {
	h.queue = append(h.queue, queuedEvent{win: win, ev: ev})
}

// Resize changes the client area of win and queues the matching Resized
// event. The window needs a repaint afterwards.
func (h *Headless) Resize(win shell.WindowID, width, height int) {
	w := h.window(win)
	if w == nil {
		return
	}
	w.target.width, w.target.height = width, height
	w.dirty = true
	h.Post(win, shell.Resized{Width: width, Height: height})
}

// ChangeDisplay queues DisplayChanged for every live window.
func (h *Headless) ChangeDisplay() {
	for _, id := range h.order {
		if h.window(id) != nil {
			h.Post(id, shell.DisplayChanged{})
		}
	}
}

// Destroy queues Destroyed for win. The window is gone once it is handled.
func (h *Headless) Destroy(win shell.WindowID) {
	h.Post(win, shell.Destroyed{})
}

// LoseDevice makes the next Present on win fail with render.ErrRecreateTarget.
func (h *Headless) LoseDevice(win shell.WindowID) {
	if w := h.window(win); w != nil {
		w.target.lose = true
	}
}

// Pending reports whether win has a repaint pending.
func (h *Headless) Pending(win shell.WindowID) bool {
	w := h.window(win)
	return w != nil && w.dirty
}

// Visible reports whether win was shown.
func (h *Headless) Visible(win shell.WindowID) bool {
	w := h.window(win)
	return w != nil && w.visible
}

// Quit reports whether PostQuit was called, and with which code.
func (h *Headless) Quit() (code int, ok bool) {
	return h.code, h.quit
}

// HeadlessTarget returns the target of win, or nil.
func (h *Headless) HeadlessTarget(win shell.WindowID) *HeadlessTarget {
	if w := h.window(win); w != nil {
		return w.target
	}
	return nil
}

func (h *Headless) window(win shell.WindowID) *headlessWindow {
	w, ok := h.windows[win]
	if !ok || w.destroyed {
		return nil
	}
	return w
}

func (h *Headless) nextDirty() *headlessWindow {
	for _, id := range h.order {
		if w := h.window(id); w != nil && w.visible && w.dirty {
			return w
		}
	}
	return nil
}

func (h *Headless) dispatch(w *headlessWindow, ev shell.Event) {
	w.handler.HandleEvent(w.id, ev)
	if _, ok := ev.(shell.Destroyed); ok {
		w.destroyed = true
	}
}

// HeadlessTarget is an in-memory render.Target that keeps the last frame.
type HeadlessTarget struct {
	width, height int
	scale         float64
	format        gputypes.TextureFormat

	last     render.Frame
	presents int
	lose     bool
}

// ClientSize implements render.Target.
func (t *HeadlessTarget) ClientSize() (width, height int, err error) {
	return t.width, t.height, nil
}

// Scale implements render.Target.
func (t *HeadlessTarget) Scale() float64 { return t.scale }

// Format implements render.Target.
func (t *HeadlessTarget) Format() gputypes.TextureFormat { return t.format }

// Present implements render.Target. The frame is copied.
func (t *HeadlessTarget) Present(f render.Frame) error {
	if t.lose {
		t.lose = false
		return fmt.Errorf("platform: headless present: %w", render.ErrRecreateTarget)
	}
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	f.Pix = pix
	t.last = f
	t.presents++
	return nil
}

// Presents returns how many frames were presented.
func (t *HeadlessTarget) Presents() int { return t.presents }

// LastFrame returns the last presented frame.
func (t *HeadlessTarget) LastFrame() render.Frame { return t.last }

// Image returns the last presented frame as an RGBA image, or nil before the
// first frame.
func (t *HeadlessTarget) Image() *image.RGBA {
	f := t.last
	if f.Pix == nil {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*f.Stride : y*f.Stride+f.Width*4]
		dst := img.Pix[y*img.Stride : y*img.Stride+f.Width*4]
		copy(dst, src)
		if f.Format == gputypes.TextureFormatBGRA8Unorm {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img
}
