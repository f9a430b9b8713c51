package resource

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/dropguard"
	"github.com/wippyai/dropguard/errors"
)

// Registry hands out integer handles for values whose cleanup it manages.
// Values sit in cleanup-exempt slots until one of two removal paths runs:
//
//   - Discharge removes the entry and runs its cleanup. A value implementing
//     dropguard.Dropper gets Drop; a stored *dropguard.Guard therefore runs
//     its substituted finalizer, never the held value's ordinary cleanup.
//   - Release removes the entry and returns the value untouched. Ownership
//     and the cleanup obligation move back to the caller.
//
// Cleanup runs at most once per entry and only ever on the Discharge path.
// Borrows gate removal but never trigger cleanup.
type Registry struct {
	store     *SlotStore
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
}

// NewRegistry creates a new registry backed by a SlotStore.
func NewRegistry() *Registry {
	return &Registry{
		store: NewSlotStore(),
	}
}

// Put stores a value and returns its handle.
func (r *Registry) Put(value any) (Handle, error) {
	r.closeMu.RLock()
	if r.closed {
		r.closeMu.RUnlock()
		return 0, errors.Closed(errors.OpRegistry)
	}
	r.closeMu.RUnlock()

	if value == nil {
		return 0, errors.InvalidInput(errors.OpRegistry, "nil value")
	}

	handle, err := r.store.Put(value)
	if err != nil {
		return 0, err
	}

	Logger().Debug("stored value",
		zap.Uint32("handle", uint32(handle)),
		zap.String("type", fmt.Sprintf("%T", value)))

	r.notify(Event{
		Type:   EventStored,
		Handle: handle,
		Value:  value,
	})

	return handle, nil
}

// Get retrieves a value by handle.
func (r *Registry) Get(handle Handle) (any, bool) {
	return r.store.Get(handle)
}

// Borrow marks the entry as temporarily lent out. A borrowed entry cannot
// be discharged or released until every borrow is returned.
func (r *Registry) Borrow(handle Handle) bool {
	if !r.store.Borrow(handle) {
		return false
	}

	r.notify(Event{
		Type:   EventBorrowed,
		Handle: handle,
	})
	return true
}

// Return gives back one borrow for the entry.
func (r *Registry) Return(handle Handle) bool {
	if !r.store.Return(handle) {
		return false
	}

	r.notify(Event{
		Type:   EventReturned,
		Handle: handle,
	})
	return true
}

// Discharge removes the entry and runs its cleanup exactly once. Fails
// without touching the entry if the handle is invalid, the entry is
// borrowed, or the registry is closed.
func (r *Registry) Discharge(handle Handle) error {
	value, err := r.store.Remove(handle)
	if err != nil {
		return err
	}

	if d, ok := value.(dropguard.Dropper); ok {
		d.Drop()
	}

	Logger().Debug("discharged entry",
		zap.Uint32("handle", uint32(handle)))

	r.notify(Event{
		Type:   EventDischarged,
		Handle: handle,
		Value:  value,
	})

	return nil
}

// Release removes the entry and returns the value with no cleanup at all.
// The caller takes the value back under its ordinary ownership rules.
func (r *Registry) Release(handle Handle) (any, error) {
	value, err := r.store.Remove(handle)
	if err != nil {
		return nil, err
	}

	Logger().Debug("released entry",
		zap.Uint32("handle", uint32(handle)))

	r.notify(Event{
		Type:   EventReleased,
		Handle: handle,
		Value:  value,
	})

	return value, nil
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	return r.store.Len()
}

// Each iterates over all live entries.
func (r *Registry) Each(fn func(Handle, any) bool) {
	r.store.Each(fn)
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

// Clear discharges every entry without outstanding borrows. Borrowed
// entries survive; if any did, Clear reports them in a
// *errors.BorrowedHandlesError. The registry stays open.
func (r *Registry) Clear() error {
	var handles []Handle
	r.store.Each(func(h Handle, _ any) bool {
		handles = append(handles, h)
		return true
	})

	var skipped []uint32
	for _, h := range handles {
		if err := r.Discharge(h); err != nil {
			skipped = append(skipped, uint32(h))
		}
	}

	if len(skipped) > 0 {
		return errors.NewBorrowedHandlesError(skipped)
	}
	return nil
}

// Close discharges every remaining entry and shuts the registry down.
// Teardown overrides borrows: entries whose borrows were never returned are
// discharged anyway and reported in a *errors.BorrowedHandlesError.
func (r *Registry) Close() error {
	r.closeMu.Lock()
	if r.closed {
		r.closeMu.Unlock()
		return nil
	}
	r.closed = true
	r.closeMu.Unlock()

	var borrowed []uint32
	for _, d := range r.store.Drain() {
		if d.Borrows > 0 {
			borrowed = append(borrowed, uint32(d.Handle))
			Logger().Warn("discharging entry with outstanding borrows",
				zap.Uint32("handle", uint32(d.Handle)),
				zap.Uint32("borrows", d.Borrows))
		}

		if dr, ok := d.Value.(dropguard.Dropper); ok {
			dr.Drop()
		}

		r.notify(Event{
			Type:   EventDischarged,
			Handle: d.Handle,
			Value:  d.Value,
		})
	}

	if err := r.store.Close(); err != nil {
		return err
	}

	if len(borrowed) > 0 {
		return errors.NewBorrowedHandlesError(borrowed)
	}
	return nil
}

// Store returns the underlying store for direct slot operations.
func (r *Registry) Store() BorrowStore {
	return r.store
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnRegistryEvent(e)
	}
}
