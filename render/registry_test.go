// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gogpu/gghello/recording"
	"github.com/gogpu/gghello/render"
)

// namedFactory is a recording factory with a configurable name.
type namedFactory struct {
	*recording.Factory
	name string
}

func (f namedFactory) Name() string { return f.name }

func newNamed(name string) render.FactoryFunc {
	return func() (render.Factory, error) {
		return namedFactory{Factory: recording.NewFactory(), name: name}, nil
	}
}

func TestRegistryPriority(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("low", 1, newNamed("low"), nil)
	reg.Register("high", 20, newNamed("high"), nil)
	reg.Register("mid", 10, newNamed("mid"), nil)

	if got, want := reg.List(), []string{"high", "mid", "low"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	f, err := reg.NewFactory()
	if err != nil {
		t.Fatalf("NewFactory() = %v", err)
	}
	if f.Name() != "high" {
		t.Errorf("NewFactory() picked %q, want %q", f.Name(), "high")
	}
}

func TestRegistryTieBrokenByName(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("b", 5, newNamed("b"), nil)
	reg.Register("a", 5, newNamed("a"), nil)

	if got, want := reg.List(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestRegistryAvailability(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("gpu", 100, newNamed("gpu"), func() bool { return false })
	reg.Register("cpu", 10, newNamed("cpu"), nil)

	if got, want := reg.Available(), []string{"cpu"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}

	f, err := reg.NewFactory()
	if err != nil {
		t.Fatalf("NewFactory() = %v", err)
	}
	if f.Name() != "cpu" {
		t.Errorf("NewFactory() picked %q, want %q", f.Name(), "cpu")
	}

	_, err = reg.NewFactoryByName("gpu")
	var unavailable *render.BackendUnavailableError
	if !errors.As(err, &unavailable) || unavailable.Name != "gpu" {
		t.Errorf("NewFactoryByName(gpu) = %v, want *BackendUnavailableError", err)
	}
}

func TestRegistryFallsBackOnError(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("broken", 100, func() (render.Factory, error) {
		return nil, errors.New("init failed")
	}, nil)
	reg.Register("ok", 1, newNamed("ok"), nil)

	f, err := reg.NewFactory()
	if err != nil {
		t.Fatalf("NewFactory() = %v", err)
	}
	if f.Name() != "ok" {
		t.Errorf("NewFactory() picked %q, want %q", f.Name(), "ok")
	}
}

func TestRegistryErrors(t *testing.T) {
	reg := render.NewRegistry()

	if _, err := reg.NewFactory(); !errors.Is(err, render.ErrNoBackend) {
		t.Errorf("NewFactory() on empty registry = %v, want ErrNoBackend", err)
	}

	_, err := reg.NewFactoryByName("nope")
	var notFound *render.BackendNotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "nope" {
		t.Errorf("NewFactoryByName(nope) = %v, want *BackendNotFoundError", err)
	}

	failure := errors.New("init failed")
	reg.Register("broken", 0, func() (render.Factory, error) { return nil, failure }, nil)
	if _, err := reg.NewFactory(); !errors.Is(err, failure) {
		t.Errorf("NewFactory() = %v, want last backend error", err)
	}
}

func TestRegistryReplaceAndUnregister(t *testing.T) {
	reg := render.NewRegistry()
	reg.Register("x", 1, newNamed("first"), nil)
	reg.Register("x", 2, newNamed("second"), nil)

	e, ok := reg.Get("x")
	if !ok || e.Priority != 2 {
		t.Fatalf("Get(x) = %+v, %v, want priority 2", e, ok)
	}
	e.Priority = 99
	if again, _ := reg.Get("x"); again.Priority != 2 {
		t.Error("Get returned an entry aliasing the registry")
	}

	reg.Unregister("x")
	if _, ok := reg.Get("x"); ok {
		t.Error("Get(x) after Unregister should fail")
	}
	if got := reg.List(); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestRegisterNilFactoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register with nil factory did not panic")
		}
	}()
	render.NewRegistry().Register("nil", 0, nil, nil)
}

func TestGlobalRegistryHasRecording(t *testing.T) {
	// The recording package registers itself from init.
	if _, ok := render.DefaultRegistry().Get(recording.Name); !ok {
		t.Fatalf("%q not registered; List() = %v", recording.Name, render.List())
	}

	render.Register("global-test", -1, newNamed("global-test"), nil)
	t.Cleanup(func() { render.Unregister("global-test") })

	f, err := render.NewFactoryByName("global-test")
	if err != nil {
		t.Fatalf("NewFactoryByName() = %v", err)
	}
	if f.Name() != "global-test" {
		t.Errorf("Name() = %q", f.Name())
	}
	found := false
	for _, name := range render.Available() {
		if name == "global-test" {
			found = true
		}
	}
	if !found {
		t.Errorf("Available() = %v, missing global-test", render.Available())
	}
}
