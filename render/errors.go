// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

// Common errors returned by render operations.
var (
	// ErrRecreateTarget reports that the device behind a surface became
	// invalid and every device-dependent resource must be recreated.
	ErrRecreateTarget = errors.New("render: target must be recreated")

	// ErrNoFactory is returned when device resources are requested before
	// CreateDeviceIndependentResources succeeded.
	ErrNoFactory = errors.New("render: no graphics factory")

	// ErrNoTarget is returned when device resources are requested before a
	// window target was bound.
	ErrNoTarget = errors.New("render: no target bound")

	// ErrNoBackend is returned when no backend is registered or available.
	ErrNoBackend = errors.New("render: no backend available")
)

// GraphicsError describes a failed graphics operation.
type GraphicsError struct {
	Op  string
	Err error
}

func (e *GraphicsError) Error() string {
	return "render: " + e.Op + ": " + e.Err.Error()
}

func (e *GraphicsError) Unwrap() error { return e.Err }

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "render: backend not found: " + e.Name + " (forgotten import?)"
}

// BackendUnavailableError indicates a backend exists but cannot run here.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "render: backend unavailable: " + e.Name
}
