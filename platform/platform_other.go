// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !windows && !linux

package platform

import "github.com/gogpu/gghello/shell"

// NewNative reports ErrUnsupported; use NewHeadless instead.
func NewNative() (shell.Host, error) {
	return nil, ErrUnsupported
}
