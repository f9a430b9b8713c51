package dropguard

import (
	"reflect"
	"testing"
)

// inner and outer mirror the classic nested-cleanup setup: the outer value
// owns the inner one, each has both an ordinary Drop and a replacement
// Finalize, and every side effect lands in a shared log.

type inner struct {
	log *[]string
}

func (i *inner) Drop() {
	*i.log = append(*i.log, "Inner")
}

func (i *inner) Finalize() {
	*i.log = append(*i.log, "Inner2")
}

type outer struct {
	log   *[]string
	inner *inner
}

// Drop is the ordinary cleanup: log, then drop the owned field.
func (o *outer) Drop() {
	*o.log = append(*o.log, "Outer")
	o.inner.Drop()
}

// Finalize exercises every forced-cleanup combination by hand: the field's
// ordinary drop, the field's replacement cleanup, and finally the outer's
// own ordinary drop.
func (o *outer) Finalize() {
	*o.log = append(*o.log, "Outer2")
	o.inner.Drop()
	o.inner.Finalize()
	o.Drop()
}

func TestGuard_NestedSubstitutionOrder(t *testing.T) {
	var log []string
	o := &outer{log: &log, inner: &inner{log: &log}}

	g := New(o)
	g.Drop()

	want := []string{"Outer2", "Inner", "Inner2", "Outer", "Inner"}
	if !reflect.DeepEqual(log, want) {
		t.Fatalf("Expected cleanup order %v, got %v", want, log)
	}
}

type silentParent struct {
	child *cleanupCounter
}

// Finalize deliberately ignores the child field.
func (p *silentParent) Finalize() {}

func TestGuard_NoAutomaticFieldCleanup(t *testing.T) {
	child := &cleanupCounter{}
	g := New(&silentParent{child: child})
	g.Drop()

	if child.drops != 0 || child.finalizes != 0 {
		t.Fatalf("Expected untouched child, got drops=%d finalizes=%d",
			child.drops, child.finalizes)
	}
}
