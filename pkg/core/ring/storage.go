package ring

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is the error returned when the requested ring state
// is missing in the storage.
var ErrNotFound = errors.New("ring state not found")

// Storage is an in-memory Source implementation which keeps the history
// of ring states ordered by version.
//
// For correct operation, Storage must be created via NewStorage.
//
// Storage is safe for concurrent use.
type Storage struct {
	mtx sync.RWMutex

	history []*State
}

// NewStorage creates, initializes and returns empty Storage instance.
func NewStorage() *Storage {
	return new(Storage)
}

// Add appends the next ring state to the history.
//
// Returns an error if the state is nil or its version does not exceed
// the version of the latest stored state.
func (s *Storage) Add(st *State) error {
	if st == nil {
		return errors.New("nil ring state")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	if ln := len(s.history); ln > 0 {
		if last := s.history[ln-1].Version(); st.Version() <= last {
			return fmt.Errorf("ring state version %d is not greater than the latest stored %d",
				st.Version(), last)
		}
	}

	s.history = append(s.history, st)

	return nil
}

// RingState implements Source.
func (s *Storage) RingState(diff uint64) (*State, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ln := uint64(len(s.history))
	if diff >= ln {
		return nil, ErrNotFound
	}

	return s.history[ln-1-diff], nil
}

// RingStateByVersion implements Source.
func (s *Storage) RingStateByVersion(version uint64) (*State, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].Version() == version {
			return s.history[i], nil
		}
	}

	return nil, ErrNotFound
}

// Version implements Source.
func (s *Storage) Version() (uint64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if len(s.history) == 0 {
		return 0, ErrNotFound
	}

	return s.history[len(s.history)-1].Version(), nil
}
