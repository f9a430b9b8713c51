// Package resource provides handle-based registration for values whose
// cleanup obligations the registry manages.
//
// The registry is for hosts that hand out opaque integer handles instead of
// Go references: plugin systems, embedded interpreters, RPC surfaces. The
// host keeps the values, the far side keeps the handles, and cleanup runs
// on exactly one of two removal paths.
//
// # Entry Lifecycle
//
// Every live entry ends in one of two ways:
//
//	Discharge - removal with cleanup (dropguard.Dropper values get Drop)
//	Release   - removal without cleanup (ownership returns to the caller)
//
// Entries sit in cleanup-exempt slots (dropguard.Slot) while registered, so
// nothing runs a value's cleanup behind the registry's back.
//
// # Handle Registry
//
// The Registry maps integer handles to Go values:
//
//	reg := resource.NewRegistry()
//
//	// Store a value, get a handle
//	handle, err := reg.Put(myValue)
//
//	// Retrieve value by handle
//	value, ok := reg.Get(handle)
//
//	// Remove with cleanup
//	err = reg.Discharge(handle)
//
//	// Or remove without cleanup (ownership transfer)
//	value, err = reg.Release(handle)
//
// # Guarded Entries
//
// Storing a *dropguard.Guard composes the two layers: the guard satisfies
// dropguard.Dropper, so Discharge runs the guard's substituted finalizer,
// never the held value's ordinary cleanup. Release hands the still-armed
// guard back to the caller.
//
// # Borrows
//
// Borrow marks an entry as lent out; Discharge and Release fail while
// borrows are outstanding. Borrows are a removal gate, not reference
// counting: returning the last borrow never triggers cleanup.
//
//	reg.Borrow(handle)
//	defer reg.Return(handle)
//
// # Observers
//
// Register observers to track entry lifecycle events:
//
//	reg.Subscribe(obs) // obs.OnRegistryEvent(Event) gets stored, borrowed,
//	                   // returned, discharged, released notifications
//
// # Teardown
//
// Clear discharges everything it can and leaves borrowed entries live.
// Close discharges everything unconditionally and shuts the registry down;
// both report entries with outstanding borrows via
// *errors.BorrowedHandlesError.
//
// # Logging
//
// The package logs lifecycle transitions at debug level through a
// package-level zap logger. It defaults to a no-op logger; wire a real one
// with SetLogger before registry use.
package resource
