// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shell

// PlatformError describes a failed windowing operation.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return "shell: " + e.Op + ": " + e.Err.Error()
}

func (e *PlatformError) Unwrap() error { return e.Err }
