package locator

import (
	"context"
	"fmt"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/scylladb/go-set/strset"
)

// Everywhere is a replica placement strategy which replicates every
// token to all ring members: the replication factor tracks cluster
// size. Used for data which every member must hold a full copy of.
type Everywhere struct {
	cfg Config
}

// NewEverywhere constructs Everywhere strategy with the given
// configuration.
func NewEverywhere(cfg Config) *Everywhere {
	return &Everywhere{cfg: cfg}
}

// Kind implements Strategy.
func (s *Everywhere) Kind() Kind {
	return KindEverywhere
}

// Configuration implements Strategy.
func (s *Everywhere) Configuration() Config {
	return s.cfg
}

// CalculateNaturalEndpoints implements Strategy.
//
// Returns all distinct ring members regardless of the token.
func (s *Everywhere) CalculateNaturalEndpoints(ctx context.Context, _ ring.Token, rs *ring.State) (*EndpointSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rs == nil {
		return nil, fmt.Errorf("could not calculate natural endpoints: %w", ErrRingStateUnavailable)
	}

	return NewEndpointSet(rs.Endpoints()...), nil
}

// GetNaturalEndpoints implements Strategy.
func (s *Everywhere) GetNaturalEndpoints(tok ring.Token, rm *ReplicationMap) *EndpointSet {
	return rm.ReplicasFor(tok)
}

// ReplicationFactor implements Strategy.
//
// Returns the number of distinct ring members, zero without ring
// state.
func (s *Everywhere) ReplicationFactor(rs *ring.State) int {
	if rs == nil {
		return 0
	}

	return rs.EndpointCount()
}

// ValidateOptions implements Strategy.
//
// Always returns nil.
func (s *Everywhere) ValidateOptions() error {
	return nil
}

// RecognizedOptions implements Strategy.
//
// Returns nil: the strategy does not restrict the supplied options.
func (s *Everywhere) RecognizedOptions(*ring.Topology) *strset.Set {
	return nil
}
