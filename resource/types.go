package resource

// Handle is an opaque reference to a value in a registry.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Event types for entry lifecycle notifications.
type EventType uint8

const (
	EventStored EventType = iota
	EventDischarged
	EventReleased
	EventBorrowed
	EventReturned
)

var eventNames = [...]string{
	EventStored:     "stored",
	EventDischarged: "discharged",
	EventReleased:   "released",
	EventBorrowed:   "borrowed",
	EventReturned:   "returned",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents an entry lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about entry lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

// Store provides the underlying storage mechanism for registry entries.
// Removal at this level never runs cleanup: the value always comes back to
// the caller, who decides whether to discharge it.
type Store interface {
	// Put stores a value and returns a handle.
	Put(value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Remove takes the value out of its slot without cleaning it.
	// Fails if the handle is invalid, borrowed, or the store is closed.
	Remove(handle Handle) (any, error)

	// Len returns the number of live entries.
	Len() int

	// Close frees the storage and stops accepting operations.
	Close() error
}

// BorrowStore extends Store with borrow bookkeeping. Borrows gate removal:
// an entry with outstanding borrows cannot be removed until every borrow is
// returned. Borrows never trigger cleanup.
type BorrowStore interface {
	Store

	// Borrow increments the borrow count for a handle.
	Borrow(handle Handle) bool

	// Return decrements the borrow count for a handle.
	Return(handle Handle) bool

	// Borrows reports the current borrow count for a handle.
	Borrows(handle Handle) (uint32, bool)
}
