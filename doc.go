// Package dropguard replaces a value's ordinary cleanup with a substituted
// finalizer, run exactly once when the owning guard is discharged.
//
// A Guard takes exclusive ownership of a value and suppresses the value's
// ordinary cleanup entirely: while the value sits inside a guard, nothing
// will call its Drop method or clean up its fields, not even the guard's
// own discharge path. Discharging the guard runs the value's Finalize
// method instead. Extracting the value hands ownership back to the caller
// and cancels the substitution, restoring the ordinary cleanup convention
// for the value from then on.
//
// # Architecture Overview
//
// The library is organized into a small core plus supporting packages:
//
//	dropguard/       Root package: Finalizer capability, Guard, Slot
//	├── resource/    Handle registry routing cleanup through guards
//	├── errors/      Structured error types for the registry layer
//	├── cmd/trace/   Lifecycle demo binary with interactive TUI
//	└── examples/    Nested substitution and wazero teardown examples
//
// # Quick Start
//
// Declare replacement cleanup by implementing Finalizer, then hand the
// value to a guard:
//
//	type Session struct {
//		conn net.Conn
//	}
//
//	// Drop is the ordinary cleanup: close abruptly.
//	func (s *Session) Drop() { s.conn.Close() }
//
//	// Finalize replaces Drop while the session is guarded.
//	func (s *Session) Finalize() {
//		s.conn.SetDeadline(time.Now().Add(time.Second))
//		io.Copy(io.Discard, s.conn) // drain before closing
//		s.conn.Close()
//	}
//
//	g := dropguard.New(&Session{conn: conn})
//	defer g.Drop() // runs Finalize, never Session.Drop
//
// Take the session back out when the substitution should not apply:
//
//	s := g.Extract() // guard is spent; ordinary cleanup applies to s again
//	defer s.Drop()
//
// # The Finalizer Contract
//
// Implementing Finalizer is a promise, not just a callback:
//
//   - Finalize must be safe to run in place of Drop. Cleanup that matters
//     in Drop must be covered by Finalize as well.
//   - Finalize runs at most once per value on the guard's discharge path.
//     Calling Finalize by hand around the guard's back is the caller's
//     responsibility to get right.
//   - None of the value's fields are cleaned automatically. A Finalize
//     implementation that wants field cleanup must call each field's Drop
//     or Finalize itself, in whatever order it needs.
//
// Misuse (extracting twice, reading a spent guard) is not detected in
// production builds; SetChecks(true) turns these into panics for tests.
//
// # Thread Safety
//
// A Guard is exclusively owned, like any local value: it may be handed
// from one goroutine to another, but concurrent use of one guard requires
// external synchronization. The resource.Registry is safe for concurrent
// use.
package dropguard
