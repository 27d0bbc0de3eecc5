package ring

// Source is an interface that wraps
// basic ring state receiving method.
type Source interface {
	// RingState reads the diff-th past ring state from the storage.
	// Calling with zero diff returns the latest ring state.
	// It returns the pointer to the requested ring state and any error encountered.
	//
	// RingState must return exactly one non-nil value.
	// RingState must return ErrNotFound if the ring state is not in storage.
	//
	// Implementations must not retain the ring state pointer and modify
	// the ring state through it.
	RingState(diff uint64) (*State, error)

	// RingStateByVersion reads ring state by the version number from the storage.
	// It returns the pointer to the requested ring state and any error encountered.
	//
	// Must return exactly one non-nil value.
	// Must return ErrNotFound if the ring state is not in storage.
	//
	// Implementations must not retain the ring state pointer and modify
	// the ring state through it.
	RingStateByVersion(version uint64) (*State, error)

	// Version reads the current ring state version from the storage.
	// It returns the version number and any error encountered.
	//
	// Must return exactly one non-default value.
	Version() (uint64, error)
}

// GetLatestRingState requests and returns the latest ring state from the storage.
func GetLatestRingState(src Source) (*State, error) {
	return src.RingState(0)
}

// GetPreviousRingState requests and returns the ring state preceding the latest one.
func GetPreviousRingState(src Source) (*State, error) {
	return src.RingState(1)
}
