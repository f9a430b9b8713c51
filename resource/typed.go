package resource

import (
	"fmt"

	"github.com/wippyai/dropguard/errors"
)

// TypedRegistry is a type-safe facade over a Registry for entries of a
// single type. It narrows the any-typed surface to T on the way in and out;
// everything else (observers, Clear, Close, borrows) stays on the
// underlying registry, reachable through Registry().
type TypedRegistry[T any] struct {
	registry *Registry
}

// NewTypedRegistry creates a typed facade over an existing registry.
// Entries stored through other views are skipped by Each and rejected by
// the typed accessors.
func NewTypedRegistry[T any](r *Registry) *TypedRegistry[T] {
	return &TypedRegistry[T]{registry: r}
}

// Put stores a value and returns its handle.
func (t *TypedRegistry[T]) Put(value T) (Handle, error) {
	return t.registry.Put(value)
}

// Get retrieves a value by handle if it has the expected type.
func (t *TypedRegistry[T]) Get(handle Handle) (T, bool) {
	var zero T
	value, ok := t.registry.Get(handle)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Discharge removes the entry and runs its cleanup.
func (t *TypedRegistry[T]) Discharge(handle Handle) error {
	return t.registry.Discharge(handle)
}

// Release removes the entry and returns the value with no cleanup, if it
// has the expected type. A mismatched entry stays in the registry.
func (t *TypedRegistry[T]) Release(handle Handle) (T, error) {
	var zero T

	value, ok := t.registry.Get(handle)
	if !ok {
		return zero, errors.InvalidHandle(errors.OpRegistry, uint32(handle))
	}
	typed, ok := value.(T)
	if !ok {
		return zero, errors.InvalidInput(errors.OpRegistry,
			fmt.Sprintf("entry is %T, not the expected type", value))
	}

	if _, err := t.registry.Release(handle); err != nil {
		return zero, err
	}
	return typed, nil
}

// Len returns the number of live entries in the underlying registry,
// including entries stored through other views.
func (t *TypedRegistry[T]) Len() int {
	return t.registry.Len()
}

// Each iterates over all live entries of the expected type.
func (t *TypedRegistry[T]) Each(fn func(Handle, T) bool) {
	t.registry.Each(func(h Handle, value any) bool {
		typed, ok := value.(T)
		if !ok {
			return true
		}
		return fn(h, typed)
	})
}

// Registry returns the underlying registry.
func (t *TypedRegistry[T]) Registry() *Registry {
	return t.registry
}
