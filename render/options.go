// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "log/slog"

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	backend  string
	registry *Registry
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		registry: globalRegistry,
		logger:   slog.New(slog.DiscardHandler),
	}
}

// WithBackend selects a backend by name.
// An empty name selects the best available backend.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithRegistry resolves backends from r instead of the global registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the logger used for lifecycle and device-loss messages.
// A nil logger keeps the renderer silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
