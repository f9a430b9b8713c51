package dropguard

import "testing"

type countedClone struct {
	finalized *int
}

func (c *countedClone) Finalize() {
	*c.finalized++
}

func (c *countedClone) Clone() *countedClone {
	return &countedClone{finalized: c.finalized}
}

func TestClone_IndependentObligations(t *testing.T) {
	finalized := 0
	g := New(&countedClone{finalized: &finalized})
	dup := Clone(g)

	// Discharging the duplicate leaves the original armed.
	dup.Drop()
	if finalized != 1 {
		t.Fatalf("Expected 1 finalization after dropping the clone, got %d", finalized)
	}

	g.Drop()
	if finalized != 2 {
		t.Fatalf("Expected 2 finalizations after dropping both, got %d", finalized)
	}
}

func TestClone_OriginalExtractLeavesCloneArmed(t *testing.T) {
	finalized := 0
	g := New(&countedClone{finalized: &finalized})
	dup := Clone(g)

	v := g.Extract()
	if v == nil {
		t.Fatal("Extract returned nil")
	}
	if finalized != 0 {
		t.Fatal("Extraction must not finalize anything")
	}

	dup.Drop()
	if finalized != 1 {
		t.Fatalf("Expected the clone's own finalization, got %d", finalized)
	}
}

func TestClone_DistinctValues(t *testing.T) {
	finalized := 0
	g := New(&countedClone{finalized: &finalized})
	dup := Clone(g)

	if *g.Value() == *dup.Value() {
		t.Fatal("Expected the clone to hold a distinct value")
	}
}

func TestClone_ChecksPanicOnSpentClone(t *testing.T) {
	SetChecks(true)
	defer SetChecks(false)

	finalized := 0
	g := New(&countedClone{finalized: &finalized})
	g.Drop()

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic from Clone on spent guard with checks on")
		}
	}()
	Clone(g)
}
