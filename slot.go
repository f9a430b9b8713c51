package dropguard

// Slot is a storage cell whose contents are exempt from automatic cleanup.
// Code holding a Slot never runs the stored value's Drop or Finalize on its
// own; the value only moves or gets cleaned when the holder says so, via
// Take or an explicit method call through Value.
//
// Slots are the storage layer under Guard and are useful on their own in
// container code that manages cleanup out of band, such as the resource
// registry's entry table.
type Slot[T any] struct {
	value T
}

// NewSlot stores value in a fresh slot.
func NewSlot[T any](value T) Slot[T] {
	return Slot[T]{value: value}
}

// Value returns a pointer to the stored value for reading and mutation
// in place.
func (s *Slot[T]) Value() *T {
	return &s.value
}

// Take moves the value out of the slot, leaving the zero value behind.
// Cleanup responsibility moves with it: once taken, the value is the
// caller's to drop or finalize.
func (s *Slot[T]) Take() T {
	value := s.value
	var zero T
	s.value = zero
	return value
}
