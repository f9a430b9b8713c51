package dropguard

import "fmt"

// Guard owns a value and substitutes its cleanup. While the guard holds the
// value, the value's ordinary Drop is suppressed entirely; discharging the
// guard with Drop runs the value's Finalize instead, exactly once. Extract
// cancels the substitution and hands the value back to the caller under the
// ordinary cleanup convention.
//
// A guard is in exactly one of three states: holding (fresh), discharged
// (Drop ran Finalize), or extracted (the value moved out). The last two are
// terminal and collectively "spent". Drop on a spent guard is a no-op in
// every mode; Extract, Value, and Clone on a spent guard are misuse, which
// SetChecks(true) turns into panics.
//
// The zero value of Guard holds the zero value of T with the obligation
// armed. A nil *Guard must not be used.
type Guard[T Finalizer] struct {
	slot  Slot[T]
	spent bool
}

var _ Dropper = (*Guard[Noop])(nil)

// New wraps value in a guard, arming the substituted cleanup obligation.
// From this point the value's ordinary Drop convention no longer applies;
// the guard's Drop runs value.Finalize in its place.
func New[T Finalizer](value T) *Guard[T] {
	return &Guard[T]{slot: NewSlot(value)}
}

// FromSlot wraps a value that already lives in cleanup-exempt storage,
// taking over the slot's contents. Intended for container code that manages
// slots directly and wants to arm a substituted cleanup for one of them.
func FromSlot[T Finalizer](slot Slot[T]) *Guard[T] {
	return &Guard[T]{slot: slot}
}

// Drop discharges the guard: the held value's Finalize runs, exactly once
// across the guard's lifetime. The value's own Drop method is never called,
// and none of its fields are cleaned beyond what Finalize does itself.
// Drop on a spent guard does nothing, so unconditional `defer g.Drop()`
// is always safe.
func (g *Guard[T]) Drop() {
	if g.spent {
		return
	}
	g.spent = true
	g.slot.Take().Finalize()
}

// Extract neutralizes the guard and moves the value out. The substituted
// cleanup is cancelled for good: the guard's Drop becomes a no-op and the
// caller owns the value under its ordinary Drop convention again.
//
// The guard is marked spent before the value moves, so a guard can never
// be observed holding a value it has already given up. Extract on a spent
// guard returns the zero value, or panics with checks on.
func (g *Guard[T]) Extract() T {
	if g.spent {
		if checksOn {
			panic("dropguard: Extract on spent guard")
		}
		var zero T
		return zero
	}
	g.spent = true
	return g.slot.Take()
}

// Value returns a pointer to the held value for reading and mutation in
// place. The pointer is valid until the guard is discharged or the value
// extracted. Value on a spent guard points at residual storage, or panics
// with checks on.
func (g *Guard[T]) Value() *T {
	if g.spent && checksOn {
		panic("dropguard: Value on spent guard")
	}
	return g.slot.Value()
}

// String describes the guard for debugging without disturbing its state.
func (g *Guard[T]) String() string {
	if g.spent {
		return "Guard(spent)"
	}
	return fmt.Sprintf("Guard(%v)", *g.slot.Value())
}

// Clone duplicates the held value into a new guard. The duplicate carries
// its own independent obligation: discharging or extracting one guard has
// no effect on the other, and each value's Finalize runs once. Clone on a
// spent guard clones residual storage, or panics with checks on.
func Clone[T CloneFinalizer[T]](g *Guard[T]) *Guard[T] {
	if g.spent && checksOn {
		panic("dropguard: Clone on spent guard")
	}
	return New((*g.slot.Value()).Clone())
}
