// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shell

import "github.com/gogpu/gghello/render"

// Registry maps windows to the renderers drawing them.
//
// Only the creation event carries the renderer, so every later event
// resolves it here. The registry does not own renderers: Detach forgets the
// association without closing anything.
type Registry struct {
	renderers map[WindowID]*render.Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[WindowID]*render.Renderer)}
}

// Attach associates r with win, replacing any previous association.
func (reg *Registry) Attach(win WindowID, r *render.Renderer) {
	reg.renderers[win] = r
}

// Resolve returns the renderer associated with win.
func (reg *Registry) Resolve(win WindowID) (*render.Renderer, bool) {
	r, ok := reg.renderers[win]
	return r, ok
}

// Detach removes the association of win, if any.
func (reg *Registry) Detach(win WindowID) {
	delete(reg.renderers, win)
}

// Len returns the number of associated windows.
func (reg *Registry) Len() int {
	return len(reg.renderers)
}
