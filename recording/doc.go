// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package recording provides a graphics backend that records drawing
// operations instead of rasterizing them.
//
// Every batch between BeginDraw and EndDraw becomes a [Recording]: an ordered
// list of typed commands that can be inspected. Commands are plain structs,
// which keeps recordings comparable and easy to print.
//
// The backend registers itself as "recording" with priority 0, so it is only
// chosen by name or when nothing else is available:
//
//	import _ "github.com/gogpu/gghello/recording"
//
//	r := render.New(render.WithBackend("recording"))
//
// A [Factory] can inject failures into surface creation, brush creation and
// frame submission, which makes it the backend of choice for exercising the
// renderer's resource lifecycle.
package recording
