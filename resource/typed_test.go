package resource

import (
	"errors"
	"testing"

	dgerrors "github.com/wippyai/dropguard/errors"
)

type session struct {
	id     int
	closed bool
}

func (s *session) Drop() {
	s.closed = true
}

func TestTypedRegistry_Basic(t *testing.T) {
	reg := NewRegistry()
	typed := NewTypedRegistry[*session](reg)

	h, err := typed.Put(&session{id: 1})
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := typed.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if got.id != 1 {
		t.Fatalf("Expected session 1, got %d", got.id)
	}

	// An entry of another type is invisible to the typed view.
	other, _ := reg.Put("not a session")
	if _, ok := typed.Get(other); ok {
		t.Fatal("Get should reject mismatched entries")
	}
}

func TestTypedRegistry_Release(t *testing.T) {
	reg := NewRegistry()
	typed := NewTypedRegistry[*session](reg)

	h, _ := typed.Put(&session{id: 2})
	got, err := typed.Release(h)
	if err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if got.id != 2 || got.closed {
		t.Fatal("Release should hand back the untouched session")
	}

	// Mismatched entries stay in the registry.
	other, _ := reg.Put(42)
	if _, err := typed.Release(other); err == nil {
		t.Fatal("Release should fail for mismatched entries")
	}
	if _, ok := reg.Get(other); !ok {
		t.Fatal("Mismatched entry should survive a failed Release")
	}

	// Unknown handles report invalid handle.
	_, err = typed.Release(999)
	if !errors.Is(err, &dgerrors.Error{Op: dgerrors.OpRegistry, Kind: dgerrors.KindInvalidHandle}) {
		t.Fatalf("Expected invalid handle error, got %v", err)
	}
}

func TestTypedRegistry_Discharge(t *testing.T) {
	reg := NewRegistry()
	typed := NewTypedRegistry[*session](reg)

	s := &session{id: 3}
	h, _ := typed.Put(s)

	if err := typed.Discharge(h); err != nil {
		t.Fatalf("Discharge failed: %v", err)
	}
	if !s.closed {
		t.Fatal("Discharge should run the session's cleanup")
	}
}

func TestTypedRegistry_Each(t *testing.T) {
	reg := NewRegistry()
	typed := NewTypedRegistry[*session](reg)

	typed.Put(&session{id: 1})
	typed.Put(&session{id: 2})
	reg.Put("interloper")

	count := 0
	typed.Each(func(h Handle, s *session) bool {
		count++
		return true
	})

	if count != 2 {
		t.Fatalf("Expected 2 typed entries, got %d", count)
	}

	// Len counts everything in the shared registry.
	if typed.Len() != 3 {
		t.Fatalf("Expected Len 3, got %d", typed.Len())
	}

	if typed.Registry() != reg {
		t.Fatal("Registry() should return the underlying registry")
	}
}
