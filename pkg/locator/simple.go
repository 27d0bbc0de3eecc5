package locator

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/scylladb/go-set/strset"
)

// Simple is a topology-unaware replica placement strategy: replicas of
// a token are placed on the owner of its primary ring position and the
// owners of the following positions, walking the ring clockwise until
// the configured replication factor of distinct members is collected.
type Simple struct {
	cfg Config

	rf int

	// deferred construction fault, surfaced by ValidateOptions and
	// placement computations
	cfgErr error
}

// NewSimple constructs Simple strategy with the given configuration.
//
// Configuration faults are not reported here: they surface through
// ValidateOptions and placement computations.
func NewSimple(cfg Config) *Simple {
	s := &Simple{cfg: cfg}
	s.rf, s.cfgErr = parseSimpleConfig(cfg)

	return s
}

func parseSimpleConfig(cfg Config) (int, error) {
	for _, name := range cfg.Names() {
		if name != OptReplicationFactor {
			return 0, NewConfigurationError(SimpleStrategyShortName, name, errors.New("unexpected option"))
		}
	}

	v, ok := cfg.Get(OptReplicationFactor)
	if !ok {
		return 0, NewConfigurationError(SimpleStrategyShortName, OptReplicationFactor, errors.New("option is required"))
	}

	rf, err := strconv.Atoi(v)
	if err != nil {
		return 0, NewConfigurationError(SimpleStrategyShortName, OptReplicationFactor, fmt.Errorf("not a number: %w", err))
	}

	if rf < 0 {
		return 0, NewConfigurationError(SimpleStrategyShortName, OptReplicationFactor, errors.New("negative value"))
	}

	return rf, nil
}

// Kind implements Strategy.
func (s *Simple) Kind() Kind {
	return KindSimple
}

// Configuration implements Strategy.
func (s *Simple) Configuration() Config {
	return s.cfg
}

// CalculateNaturalEndpoints implements Strategy.
//
// Walks the ring clockwise from the primary position of the token and
// collects distinct owners until the replication factor is reached or
// all claimed positions are visited.
func (s *Simple) CalculateNaturalEndpoints(ctx context.Context, tok ring.Token, rs *ring.State) (*EndpointSet, error) {
	if s.cfgErr != nil {
		return nil, s.cfgErr
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if rs == nil {
		return nil, fmt.Errorf("could not calculate natural endpoints: %w", ErrRingStateUnavailable)
	}

	res := NewEndpointSet()

	if rs.Empty() || s.rf == 0 {
		return res, nil
	}

	start := rs.PrimaryIndex(tok)

	for i := 0; i < rs.Len() && res.Len() < s.rf; i++ {
		res.Add(rs.Owner((start + i) % rs.Len()))
	}

	return res, nil
}

// GetNaturalEndpoints implements Strategy.
func (s *Simple) GetNaturalEndpoints(tok ring.Token, rm *ReplicationMap) *EndpointSet {
	return rm.ReplicasFor(tok)
}

// ReplicationFactor implements Strategy.
//
// Returns the configured replication factor, zero if the configuration
// is invalid. The factor may exceed the number of ring members, the
// placement then degrades to all distinct members.
func (s *Simple) ReplicationFactor(*ring.State) int {
	return s.rf
}

// ValidateOptions implements Strategy.
//
// Requires the replication factor option to be present and hold a
// non-negative integer, and rejects any other option.
func (s *Simple) ValidateOptions() error {
	return s.cfgErr
}

// RecognizedOptions implements Strategy.
func (s *Simple) RecognizedOptions(*ring.Topology) *strset.Set {
	return strset.New(OptReplicationFactor)
}
