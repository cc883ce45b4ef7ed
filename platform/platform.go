// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform provides shell.Host implementations.
//
// [NewNative] returns the host for the running operating system: a Win32
// host on Windows and an X11 host on Linux. [NewHeadless] returns an
// in-memory host that needs no display, for tests and CI.
package platform

import (
	"errors"
	"fmt"
)

// Common errors returned by hosts.
var (
	// ErrUnsupported is returned by NewNative on systems without a native host.
	ErrUnsupported = errors.New("platform: no native host for this system")

	// ErrUnknownClass is returned when a window of an unregistered class is
	// created.
	ErrUnknownClass = errors.New("platform: unknown window class")

	// ErrClosed is returned when a closed host is used.
	ErrClosed = errors.New("platform: host closed")
)

func unknownClass(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownClass, name)
}
