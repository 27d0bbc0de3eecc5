package keyspace

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/molyee/scylladb/pkg/locator"
)

// Keyspace is an immutable snapshot of the replication schema of a
// single logical data namespace: the name of the replica placement
// strategy and its options, stamped with a schema version.
//
// A new snapshot with a fresh version is produced on every schema
// change; snapshots are never mutated in place.
type Keyspace struct {
	name     string
	strategy string
	options  locator.Config
	version  uuid.UUID
}

// New constructs keyspace schema snapshot with a fresh version.
func New(name, strategy string, options locator.Config) *Keyspace {
	return Restore(name, strategy, options, uuid.New())
}

// Restore constructs keyspace schema snapshot with a known version.
// Used when reading persisted schema records.
func Restore(name, strategy string, options locator.Config, version uuid.UUID) *Keyspace {
	return &Keyspace{
		name:     name,
		strategy: strategy,
		options:  options,
		version:  version,
	}
}

// Name returns the keyspace name.
func (k *Keyspace) Name() string {
	return k.name
}

// Strategy returns the registered name of the replica placement
// strategy of the keyspace.
func (k *Keyspace) Strategy() string {
	return k.strategy
}

// Options returns the placement strategy configuration of the
// keyspace.
func (k *Keyspace) Options() locator.Config {
	return k.options
}

// Version returns the schema version of the snapshot.
func (k *Keyspace) Version() uuid.UUID {
	return k.version
}

// maximum keyspace name length accepted by schema operations
const maxNameLength = 48

var nameRegexp = regexp.MustCompile(`^\w+$`)

// ValidateName checks if the string is usable as a keyspace name:
// non-empty, at most 48 characters, made of latin letters, digits and
// underscores.
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New("empty keyspace name")
	case len(name) > maxNameLength:
		return fmt.Errorf("keyspace name longer than %d characters", maxNameLength)
	case !nameRegexp.MatchString(name):
		return errors.New("keyspace name must contain only latin letters, digits and underscores")
	}

	return nil
}

// ErrNotFound is the error returned when the keyspace was not found.
var ErrNotFound = errors.New("keyspace not found")

// ErrExists is the error returned on an attempt to create a keyspace
// which already exists.
var ErrExists = errors.New("keyspace already exists")

// Storage is an interface that wraps
// basic keyspace schema record storage methods.
type Storage interface {
	// Put saves the keyspace schema record, overwriting the previous
	// version of the record if there is one.
	// It returns any error encountered that caused the saving to
	// interrupt.
	//
	// Implementations must not retain the keyspace pointer and modify
	// the keyspace through it.
	Put(*Keyspace) error

	// Get reads the keyspace schema record by name.
	// It returns the pointer to the requested keyspace and any error
	// encountered.
	//
	// Get must return exactly one non-nil value.
	// Get must return ErrNotFound if the record is not in storage.
	Get(name string) (*Keyspace, error)

	// Delete removes the keyspace schema record by name.
	// It returns any error encountered that caused the deletion to
	// interrupt.
	//
	// Delete must return nil if the record was successfully removed.
	// Removal of a missing record is not an error.
	Delete(name string) error

	// List returns all stored keyspace schema records sorted by name.
	//
	// List must return the empty list and no error in the absence of
	// records.
	List() ([]*Keyspace, error)
}

// EventType enumerates keyspace schema change event types.
type EventType uint8

// Keyspace schema change event types.
const (
	_ EventType = iota
	EventCreated
	EventAltered
	EventDropped
)

// String implements fmt.Stringer.
func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventAltered:
		return "altered"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event groups the details of a single keyspace schema change.
type Event struct {
	// Type of the schema change.
	Type EventType

	// Keyspace snapshot installed by the change. For EventDropped it is
	// the snapshot which was removed.
	Keyspace *Keyspace
}

// Handler is a keyspace schema change handler.
type Handler func(Event)
