package dropguard

import (
	"strings"
	"testing"
)

type cleanupCounter struct {
	drops     int
	finalizes int
}

func (c *cleanupCounter) Drop() {
	c.drops++
}

func (c *cleanupCounter) Finalize() {
	c.finalizes++
}

func TestGuard_DropRunsFinalizeOnce(t *testing.T) {
	c := &cleanupCounter{}
	g := New(c)
	g.Drop()

	if c.finalizes != 1 {
		t.Fatalf("Expected Finalize to run once, ran %d times", c.finalizes)
	}
	if c.drops != 0 {
		t.Fatalf("Expected ordinary Drop to be suppressed, ran %d times", c.drops)
	}
}

func TestGuard_DropIdempotent(t *testing.T) {
	c := &cleanupCounter{}
	g := New(c)

	g.Drop()
	g.Drop()
	g.Drop()

	if c.finalizes != 1 {
		t.Fatalf("Expected Finalize to run once across repeated Drop, ran %d times", c.finalizes)
	}
}

func TestGuard_DeferredDrop(t *testing.T) {
	c := &cleanupCounter{}

	func() {
		g := New(c)
		defer g.Drop()

		if c.finalizes != 0 {
			t.Fatal("Finalize ran before scope exit")
		}
	}()

	if c.finalizes != 1 {
		t.Fatalf("Expected Finalize to run once at scope exit, ran %d times", c.finalizes)
	}
	if c.drops != 0 {
		t.Fatal("Ordinary Drop should never run for a guarded value")
	}
}

func TestGuard_ExtractCancelsDischarge(t *testing.T) {
	c := &cleanupCounter{}
	g := New(c)

	got := g.Extract()
	if got != c {
		t.Fatal("Extract returned a different value")
	}

	// The guard is spent: discharging it must not touch the value.
	g.Drop()
	if c.finalizes != 0 {
		t.Fatalf("Expected no Finalize after extraction, ran %d times", c.finalizes)
	}

	// Ownership is back with the caller: the ordinary convention applies.
	got.Drop()
	if c.drops != 1 {
		t.Fatalf("Expected ordinary Drop to run once, ran %d times", c.drops)
	}
	if c.finalizes != 0 {
		t.Fatal("Ordinary Drop must not trigger Finalize")
	}
}

type payload struct {
	n int
}

func (p *payload) Finalize() {}

func TestGuard_ValueTransparency(t *testing.T) {
	p := &payload{n: 7}
	g := New(p)

	if got := (*g.Value()).n; got != 7 {
		t.Fatalf("Expected 7 through the guard, got %d", got)
	}

	// Mutation through the guard is mutation of the value itself.
	(*g.Value()).n = 42
	if p.n != 42 {
		t.Fatalf("Expected mutation to reach the value, got %d", p.n)
	}

	if got := g.Extract(); got.n != 42 {
		t.Fatalf("Expected extracted value to carry 42, got %d", got.n)
	}
}

type cellWriter struct {
	cell *int
}

func (w *cellWriter) Drop() {
	*w.cell = 1
}

func (w *cellWriter) Finalize() {
	*w.cell = 5
}

func TestGuard_CellDischarge(t *testing.T) {
	// Guarded discard runs the substituted cleanup.
	cell := 0
	g := New(&cellWriter{cell: &cell})
	g.Drop()
	if cell != 5 {
		t.Fatalf("Expected cell 5 after guarded discharge, got %d", cell)
	}

	// The unwrapped value cleans up ordinarily.
	cell = 0
	w := &cellWriter{cell: &cell}
	w.Drop()
	if cell != 1 {
		t.Fatalf("Expected cell 1 after ordinary Drop, got %d", cell)
	}
}

func TestDropNow(t *testing.T) {
	cell := 0
	DropNow(&cellWriter{cell: &cell})
	if cell != 5 {
		t.Fatalf("Expected cell 5 after DropNow, got %d", cell)
	}
}

func TestNoop(t *testing.T) {
	// Must not fail or produce any side effect.
	DropNow(Noop{})

	g := New(Noop{})
	g.Drop()
}

func TestGuard_FromSlot(t *testing.T) {
	c := &cleanupCounter{}
	slot := NewSlot(c)

	g := FromSlot(slot)
	g.Drop()

	if c.finalizes != 1 {
		t.Fatalf("Expected Finalize once via FromSlot guard, ran %d times", c.finalizes)
	}
	if c.drops != 0 {
		t.Fatal("Ordinary Drop should stay suppressed for slot-built guards")
	}
}

func TestGuard_String(t *testing.T) {
	g := New(&payload{n: 3})

	if s := g.String(); !strings.HasPrefix(s, "Guard(") || s == "Guard(spent)" {
		t.Fatalf("Unexpected String for holding guard: %q", s)
	}

	g.Drop()
	if s := g.String(); s != "Guard(spent)" {
		t.Fatalf("Expected Guard(spent) after discharge, got %q", s)
	}
}

func TestGuard_SpentExtractWithoutChecks(t *testing.T) {
	g := New(&cleanupCounter{})
	g.Drop()

	// Checks are off by default: misuse degrades to the zero value.
	if got := g.Extract(); got != nil {
		t.Fatalf("Expected nil from Extract on spent guard, got %v", got)
	}
}

func TestGuard_ChecksPanicOnSpentExtract(t *testing.T) {
	SetChecks(true)
	defer SetChecks(false)

	g := New(&cleanupCounter{})
	g.Drop()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic from Extract on spent guard with checks on")
		}
	}()
	g.Extract()
}

func TestGuard_ChecksPanicOnSpentValue(t *testing.T) {
	SetChecks(true)
	defer SetChecks(false)

	g := New(&cleanupCounter{})
	_ = g.Extract()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic from Value on spent guard with checks on")
		}
	}()
	_ = g.Value()
}

func TestGuard_ChecksLeaveDropIdempotent(t *testing.T) {
	SetChecks(true)
	defer SetChecks(false)

	c := &cleanupCounter{}
	g := New(c)
	g.Drop()
	g.Drop() // must stay silent even with checks on

	if c.finalizes != 1 {
		t.Fatalf("Expected one Finalize, got %d", c.finalizes)
	}
}
