package locator

import (
	"context"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/scylladb/go-set/strset"
)

// Kind enumerates the built-in replica placement strategy kinds.
type Kind uint8

// Supported replica placement strategy kinds.
const (
	KindUnspecified Kind = iota
	KindLocal
	KindSimple
	KindEverywhere
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindLocal:
		return "Local"
	case KindSimple:
		return "Simple"
	case KindEverywhere:
		return "Everywhere"
	default:
		return "Unspecified"
	}
}

// OptReplicationFactor is the name of the configuration option carrying
// the replication factor of a strategy.
const OptReplicationFactor = "replication_factor"

// Strategy is an interface of replica placement policies: given a ring
// position, a strategy computes the set of cluster members which must
// hold a replica of the data owned by that position.
//
// Implementations must be immutable after construction and safe for
// unsynchronized concurrent use. An instance is created once per
// keyspace schema version and discarded when the keyspace changes its
// strategy or options; it is never mutated in place.
type Strategy interface {
	// Kind returns the strategy kind tag.
	Kind() Kind

	// Configuration returns the immutable configuration the strategy
	// was constructed with.
	Configuration() Config

	// CalculateNaturalEndpoints computes the set of members which must
	// hold a replica of the data owned by the given token, against live
	// ring state.
	//
	// Ring-dependent strategies must respect the passed context and
	// must fail with an error wrapping ErrRingStateUnavailable when
	// called with nil ring state. Must not mutate the ring state.
	//
	// Must return exactly one non-nil value.
	CalculateNaturalEndpoints(ctx context.Context, tok ring.Token, rs *ring.State) (*EndpointSet, error)

	// GetNaturalEndpoints returns the replica set of the given token
	// from an already resolved replication view. Used on fast paths
	// where an up-to-date view exists.
	//
	// Returns an empty set if the view does not cover the token.
	GetNaturalEndpoints(tok ring.Token, rm *ReplicationMap) *EndpointSet

	// ReplicationFactor reports how many replicas the strategy places
	// per token for the given ring state. For configuration-derived
	// factors the result is consistent with what
	// CalculateNaturalEndpoints actually returns.
	//
	// Must return a non-negative value.
	ReplicationFactor(rs *ring.State) int

	// ValidateOptions checks the strategy configuration. Called once,
	// at keyspace creation or alteration time, before the strategy is
	// installed; never at per-request time.
	//
	// Returns *ConfigurationError if the configuration cannot be
	// honored by the strategy.
	ValidateOptions() error

	// RecognizedOptions declares which configuration option names are
	// meaningful for the strategy in the given topology. Nil result
	// means no restriction: any option may be supplied. Empty non-nil
	// set means the strategy expects no options, which is informational
	// only unless ValidateOptions enforces it.
	RecognizedOptions(top *ring.Topology) *strset.Set
}
