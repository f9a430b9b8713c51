package resource

import (
	"sync"

	"github.com/wippyai/dropguard"
	"github.com/wippyai/dropguard/errors"
)

// SlotStore is an in-memory store with borrow tracking and free-list handle
// reuse. Entries live in cleanup-exempt slots: the store never runs Drop or
// Finalize on anything it holds, removal always hands the value back intact.
// Whoever removes a value owns its cleanup from that point.
type SlotStore struct {
	entries  []slotEntry
	freeList []Handle
	mu       sync.RWMutex
	closed   bool
}

type slotEntry struct {
	slot    dropguard.Slot[any]
	borrows uint32
	live    bool
}

var _ BorrowStore = (*SlotStore)(nil)

// NewSlotStore creates a new in-memory store.
func NewSlotStore() *SlotStore {
	return &SlotStore{
		entries:  make([]slotEntry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Put stores a value and returns a handle.
func (s *SlotStore) Put(value any) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, errors.Closed(errors.OpSlot)
	}

	e := slotEntry{
		slot: dropguard.NewSlot(value),
		live: true,
	}

	if len(s.freeList) > 0 {
		handle := s.freeList[len(s.freeList)-1]
		s.freeList = s.freeList[:len(s.freeList)-1]
		s.entries[handle-1] = e
		return handle, nil
	}

	s.entries = append(s.entries, e)
	return Handle(len(s.entries)), nil
}

// Get retrieves a value by handle.
func (s *SlotStore) Get(handle Handle) (any, bool) {
	if handle == 0 {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return nil, false
	}

	e := &s.entries[idx]
	if !e.live {
		return nil, false
	}
	return *e.slot.Value(), true
}

// Remove takes the value out of its slot without cleaning it. Fails if the
// handle is invalid, the entry has outstanding borrows, or the store is
// closed.
func (s *SlotStore) Remove(handle Handle) (any, error) {
	if handle == 0 {
		return nil, errors.InvalidHandle(errors.OpSlot, uint32(handle))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.Closed(errors.OpSlot)
	}

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return nil, errors.InvalidHandle(errors.OpSlot, uint32(handle))
	}

	e := &s.entries[idx]
	if !e.live {
		return nil, errors.InvalidHandle(errors.OpSlot, uint32(handle))
	}

	if e.borrows > 0 {
		return nil, errors.OutstandingBorrow(errors.OpBorrow, uint32(handle), int(e.borrows))
	}

	value := e.slot.Take()
	e.live = false
	s.freeList = append(s.freeList, handle)

	return value, nil
}

// Borrow increments the borrow count for a handle.
func (s *SlotStore) Borrow(handle Handle) bool {
	if handle == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return false
	}

	e := &s.entries[idx]
	if !e.live {
		return false
	}

	e.borrows++
	return true
}

// Return decrements the borrow count for a handle.
func (s *SlotStore) Return(handle Handle) bool {
	if handle == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return false
	}

	e := &s.entries[idx]
	if !e.live || e.borrows == 0 {
		return false
	}

	e.borrows--
	return true
}

// Borrows reports the current borrow count for a handle.
func (s *SlotStore) Borrows(handle Handle) (uint32, bool) {
	if handle == 0 {
		return 0, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(s.entries) {
		return 0, false
	}

	e := &s.entries[idx]
	if !e.live {
		return 0, false
	}
	return e.borrows, true
}

// Len returns the number of live entries.
func (s *SlotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.entries {
		if s.entries[i].live {
			count++
		}
	}
	return count
}

// Each iterates over all live entries.
func (s *SlotStore) Each(fn func(Handle, any) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entries {
		e := &s.entries[i]
		if e.live {
			if !fn(Handle(i+1), *e.slot.Value()) {
				break
			}
		}
	}
}

// Drained is one entry taken out of the store by Drain.
type Drained struct {
	Value   any
	Handle  Handle
	Borrows uint32
}

// Drain removes every live entry regardless of borrows and returns them.
// Used for terminal teardown, where pending borrows no longer gate removal.
// No cleanup runs; the entries are the caller's to discharge.
func (s *SlotStore) Drain() []Drained {
	s.mu.Lock()
	defer s.mu.Unlock()

	var drained []Drained
	for i := range s.entries {
		e := &s.entries[i]
		if !e.live {
			continue
		}
		drained = append(drained, Drained{
			Handle:  Handle(i + 1),
			Value:   e.slot.Take(),
			Borrows: e.borrows,
		})
		e.live = false
		e.borrows = 0
	}
	s.freeList = s.freeList[:0]
	return drained
}

// Close frees the storage and stops accepting operations. No cleanup runs
// on remaining entries; callers that care drain first.
func (s *SlotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.entries = nil
	s.freeList = nil
	return nil
}
