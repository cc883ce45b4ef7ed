// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package platform

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/gputypes"
	"golang.org/x/sys/windows"

	"github.com/gogpu/gghello/render"
	"github.com/gogpu/gghello/shell"
)

const (
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlappedWindow = 0x00CF0000
	cwUseDefault       = 0x80000000
	swShowNormal       = 1
	idcArrow           = 32512

	wmCreate        = 0x0001
	wmDestroy       = 0x0002
	wmSize          = 0x0005
	wmPaint         = 0x000F
	wmDisplayChange = 0x007E

	biRGB        = 0
	dibRGBColors = 0

	baseDPI = 96
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")

	procRegisterClassEx  = user32.NewProc("RegisterClassExW")
	procUnregisterClass  = user32.NewProc("UnregisterClassW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procShowWindow       = user32.NewProc("ShowWindow")
	procUpdateWindow     = user32.NewProc("UpdateWindow")
	procGetMessage       = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procPostQuitMessage  = user32.NewProc("PostQuitMessage")
	procInvalidateRect   = user32.NewProc("InvalidateRect")
	procValidateRect     = user32.NewProc("ValidateRect")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procGetDpiForWindow  = user32.NewProc("GetDpiForWindow")
	procLoadCursor       = user32.NewProc("LoadCursorW")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")

	procSetDIBitsToDevice = gdi32.NewProc("SetDIBitsToDevice")
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       windows.Handle
}

type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       struct{ x, y int32 }
	lPrivate uint32
}

type rect struct {
	left, top, right, bottom int32
}

// createStruct mirrors the leading field of CREATESTRUCTW.
type createStruct struct {
	createParams uintptr
}

type bitmapInfoHeader struct {
	biSize          uint32
	biWidth         int32
	biHeight        int32
	biPlanes        uint16
	biBitCount      uint16
	biCompression   uint32
	biSizeImage     uint32
	biXPelsPerMeter int32
	biYPelsPerMeter int32
	biClrUsed       uint32
	biClrImportant  uint32
}

type pendingWindow struct {
	handler shell.EventHandler
	payload any
}

type win32Window struct {
	hwnd    windows.HWND
	handler shell.EventHandler
	target  *win32Target
}

type rawMessage struct {
	hwnd, msg, wParam, lParam uintptr
}

// win32Host drives windows through user32. All calls must come from the
// goroutine that called NewNative.
type win32Host struct {
	instance windows.Handle
	wndProc  uintptr

	classes map[string]shell.EventHandler
	windows map[windows.HWND]*win32Window
	pending map[uintptr]pendingWindow
	token   uintptr

	current rawMessage
	closed  bool
}

// NewNative returns the Win32 host. The calling goroutine is locked to its
// OS thread until Close.
func NewNative() (shell.Host, error) {
	if err := procRegisterClassEx.Find(); err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	runtime.LockOSThread()

	h := &win32Host{
		instance: moduleHandle(),
		classes:  make(map[string]shell.EventHandler),
		windows:  make(map[windows.HWND]*win32Window),
		pending:  make(map[uintptr]pendingWindow),
	}
	h.wndProc = windows.NewCallback(h.windowProc)
	return h, nil
}

func moduleHandle() windows.Handle {
	var mod windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &mod); err != nil {
		return 0
	}
	return mod
}

func loadCursor() windows.Handle {
	ret, _, _ := procLoadCursor.Call(0, uintptr(idcArrow))
	return windows.Handle(ret)
}

func (h *win32Host) RegisterClass(name string, handler shell.EventHandler) error {
	if h.closed {
		return ErrClosed
	}
	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	wc := wndClassEx{
		style:         csHRedraw | csVRedraw,
		lpfnWndProc:   h.wndProc,
		hInstance:     h.instance,
		hCursor:       loadCursor(),
		lpszClassName: className,
	}
	wc.cbSize = uint32(unsafe.Sizeof(wc))

	ret, _, callErr := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 && !errors.Is(callErr, windows.ERROR_CLASS_ALREADY_EXISTS) {
		return fmt.Errorf("RegisterClassExW: %w", callErr)
	}
	h.classes[name] = handler
	return nil
}

func (h *win32Host) CreateWindow(cfg shell.WindowConfig, payload any) (shell.WindowID, error) {
	if h.closed {
		return 0, ErrClosed
	}
	handler, ok := h.classes[cfg.Class]
	if !ok {
		return 0, unknownClass(cfg.Class)
	}
	className, err := windows.UTF16PtrFromString(cfg.Class)
	if err != nil {
		return 0, err
	}
	title, err := windows.UTF16PtrFromString(cfg.Title)
	if err != nil {
		return 0, err
	}

	// Go pointers cannot travel through lpParam, so the payload waits in
	// pending under an integer token until WM_CREATE claims it.
	h.token++
	token := h.token
	h.pending[token] = pendingWindow{handler: handler, payload: payload}
	defer delete(h.pending, token)

	ret, _, callErr := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		wsOverlappedWindow,
		cwUseDefault, cwUseDefault,
		uintptr(cfg.Width), uintptr(cfg.Height),
		0, 0,
		uintptr(h.instance),
		token,
	)
	if ret == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %w", callErr)
	}
	return shell.WindowID(ret), nil
}

func (h *win32Host) windowProc(hwnd, message, wParam, lParam uintptr) uintptr {
	prev := h.current
	h.current = rawMessage{hwnd: hwnd, msg: message, wParam: wParam, lParam: lParam}
	defer func() { h.current = prev }()

	id := shell.WindowID(hwnd)
	if message == wmCreate {
		cs := (*createStruct)(unsafe.Pointer(lParam))
		if p, ok := h.pending[cs.createParams]; ok {
			w := &win32Window{
				hwnd:    windows.HWND(hwnd),
				handler: p.handler,
				target:  &win32Target{hwnd: windows.HWND(hwnd)},
			}
			h.windows[w.hwnd] = w
			return uintptr(w.handler.HandleEvent(id, shell.Created{Payload: p.payload}))
		}
	}

	w, ok := h.windows[windows.HWND(hwnd)]
	if !ok {
		ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
		return ret
	}

	res := w.handler.HandleEvent(id, translate(message, wParam, lParam))
	if message == wmDestroy {
		delete(h.windows, w.hwnd)
	}
	return uintptr(res)
}

func translate(message, wParam, lParam uintptr) shell.Event {
	switch message {
	case wmSize:
		return shell.Resized{Width: int(lParam & 0xFFFF), Height: int((lParam >> 16) & 0xFFFF)}
	case wmDisplayChange:
		return shell.DisplayChanged{}
	case wmPaint:
		return shell.PaintRequested{}
	case wmDestroy:
		return shell.Destroyed{}
	default:
		return shell.Native{Message: uint32(message), WParam: wParam, LParam: lParam}
	}
}

func (h *win32Host) Show(win shell.WindowID) {
	procShowWindow.Call(uintptr(win), swShowNormal)
}

func (h *win32Host) Update(win shell.WindowID) {
	procUpdateWindow.Call(uintptr(win))
}

func (h *win32Host) Target(win shell.WindowID) render.Target {
	if w, ok := h.windows[windows.HWND(win)]; ok {
		return w.target
	}
	return nil
}

func (h *win32Host) Invalidate(win shell.WindowID) {
	procInvalidateRect.Call(uintptr(win), 0, 0)
}

func (h *win32Host) Validate(win shell.WindowID) {
	procValidateRect.Call(uintptr(win), 0)
}

func (h *win32Host) PostQuit(code int) {
	procPostQuitMessage.Call(uintptr(code))
}

func (h *win32Host) Run() int {
	var m msg
	for {
		ret, _, _ := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case 0:
			return int(m.wParam)
		case -1:
			return -1
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// DefaultProc forwards the message being dispatched to DefWindowProcW.
// Events posted outside a dispatch are rebuilt from their fields.
func (h *win32Host) DefaultProc(win shell.WindowID, ev shell.Event) shell.Result {
	var m rawMessage
	switch e := ev.(type) {
	case shell.Native:
		m = rawMessage{hwnd: uintptr(win), msg: uintptr(e.Message), wParam: e.WParam, lParam: e.LParam}
	case shell.Created:
		return 0
	default:
		if h.current.hwnd == uintptr(win) {
			m = h.current
		} else {
			m = rebuild(win, ev)
		}
	}
	ret, _, _ := procDefWindowProc.Call(m.hwnd, m.msg, m.wParam, m.lParam)
	return shell.Result(ret)
}

func rebuild(win shell.WindowID, ev shell.Event) rawMessage {
	m := rawMessage{hwnd: uintptr(win)}
	switch e := ev.(type) {
	case shell.Resized:
		m.msg = wmSize
		m.lParam = uintptr(e.Width&0xFFFF) | uintptr(e.Height&0xFFFF)<<16
	case shell.DisplayChanged:
		m.msg = wmDisplayChange
	case shell.PaintRequested:
		m.msg = wmPaint
	case shell.Destroyed:
		m.msg = wmDestroy
	}
	return m
}

func (h *win32Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	for name := range h.classes {
		if p, err := windows.UTF16PtrFromString(name); err == nil {
			procUnregisterClass.Call(uintptr(unsafe.Pointer(p)), uintptr(h.instance))
		}
	}
	runtime.UnlockOSThread()
	return nil
}

// win32Target presents BGRA frames to a window's client area with GDI.
type win32Target struct {
	hwnd windows.HWND
	pix  []byte
}

func (t *win32Target) ClientSize() (width, height int, err error) {
	var r rect
	ret, _, callErr := procGetClientRect.Call(uintptr(t.hwnd), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return 0, 0, fmt.Errorf("GetClientRect: %w", callErr)
	}
	return int(r.right - r.left), int(r.bottom - r.top), nil
}

func (t *win32Target) Scale() float64 {
	if procGetDpiForWindow.Find() != nil {
		return 1
	}
	dpi, _, _ := procGetDpiForWindow.Call(uintptr(t.hwnd))
	if dpi == 0 {
		return 1
	}
	return float64(dpi) / baseDPI
}

func (t *win32Target) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (t *win32Target) Present(f render.Frame) error {
	if f.Width <= 0 || f.Height <= 0 {
		return nil
	}
	pix := f.Pix
	if f.Stride != f.Width*4 {
		n := f.Width * 4 * f.Height
		if cap(t.pix) < n {
			t.pix = make([]byte, n)
		}
		pix = t.pix[:n]
		for y := 0; y < f.Height; y++ {
			copy(pix[y*f.Width*4:(y+1)*f.Width*4], f.Pix[y*f.Stride:])
		}
	}

	hdc, _, _ := procGetDC.Call(uintptr(t.hwnd))
	if hdc == 0 {
		return fmt.Errorf("platform: GetDC: %w", render.ErrRecreateTarget)
	}
	defer procReleaseDC.Call(uintptr(t.hwnd), hdc)

	bi := bitmapInfoHeader{
		biWidth:       int32(f.Width),
		biHeight:      -int32(f.Height), // top-down
		biPlanes:      1,
		biBitCount:    32,
		biCompression: biRGB,
	}
	bi.biSize = uint32(unsafe.Sizeof(bi))

	lines, _, _ := procSetDIBitsToDevice.Call(
		hdc,
		0, 0,
		uintptr(f.Width), uintptr(f.Height),
		0, 0,
		0, uintptr(f.Height),
		uintptr(unsafe.Pointer(&pix[0])),
		uintptr(unsafe.Pointer(&bi)),
		dibRGBColors,
	)
	if lines == 0 {
		return fmt.Errorf("platform: SetDIBitsToDevice: %w", render.ErrRecreateTarget)
	}
	return nil
}
