package dropguard

// Finalizer is the replacement-cleanup capability. Implementing it declares
// what happens to a value when a guard holding it is discharged, in place of
// the value's ordinary cleanup.
//
// Finalize is trusted to stand in for the value's Drop method: any cleanup
// that matters in Drop must be covered here too. Nothing calls Finalize on
// the value's fields; implementations clean their own fields explicitly,
// with Drop or Finalize per field as appropriate.
type Finalizer interface {
	Finalize()
}

// Dropper is the ordinary-cleanup convention: the owner calls Drop exactly
// once when it is done with a value. Guards exist to suppress this call for
// the value they hold and run Finalize in its place. A *Guard is itself a
// Dropper, so owners dispose of guards the same way they dispose of any
// other resource.
type Dropper interface {
	Drop()
}

// Cloner is implemented by values that can duplicate themselves.
type Cloner[T any] interface {
	Clone() T
}

// CloneFinalizer is the constraint for Clone: a value that both carries the
// replacement-cleanup capability and can duplicate itself.
type CloneFinalizer[T any] interface {
	Finalizer
	Cloner[T]
}

// Noop is a Finalizer whose replacement cleanup does nothing. Guarding a
// value alongside a Noop substitution suppresses the ordinary cleanup
// without running anything in its place, which amounts to discarding the
// cleanup obligation on purpose.
type Noop struct{}

// Finalize does nothing.
func (Noop) Finalize() {}

// DropNow runs the value's replacement cleanup immediately: the value is
// wrapped in a guard and the guard is discharged on the spot. The value's
// ordinary Drop method is not called.
func DropNow[T Finalizer](value T) {
	New(value).Drop()
}
