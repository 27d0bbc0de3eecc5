package locator

import (
	"context"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/scylladb/go-set/strset"
)

// Local is a replica placement strategy which pins all data to the
// member performing the call: every token maps to the singleton
// replica set containing the local endpoint, regardless of ring state
// and cluster membership. Used for member-local bookkeeping data which
// must never be redistributed.
//
// Supplied configuration is kept but never interpreted: option
// validation is a deliberate no-op, so schema records carrying
// arbitrary options install successfully.
type Local struct {
	cfg Config

	localSrc network.LocalAddressSource
}

// NewLocal constructs Local strategy with the given configuration.
//
// Local address source must not be nil; it is queried on every
// placement computation.
func NewLocal(cfg Config, localSrc network.LocalAddressSource) *Local {
	return &Local{
		cfg:      cfg,
		localSrc: localSrc,
	}
}

// Kind implements Strategy.
func (s *Local) Kind() Kind {
	return KindLocal
}

// Configuration implements Strategy.
func (s *Local) Configuration() Config {
	return s.cfg
}

// CalculateNaturalEndpoints implements Strategy.
//
// Both the token and the ring state are ignored, the result is always
// the singleton set with the local endpoint. Completes immediately and
// can not fail, so the context is not inspected.
func (s *Local) CalculateNaturalEndpoints(_ context.Context, _ ring.Token, _ *ring.State) (*EndpointSet, error) {
	return NewEndpointSet(s.localSrc.LocalAddress()), nil
}

// GetNaturalEndpoints implements Strategy.
//
// Both the token and the replication view are ignored, the result is
// always the singleton set with the local endpoint.
func (s *Local) GetNaturalEndpoints(_ ring.Token, _ *ReplicationMap) *EndpointSet {
	return NewEndpointSet(s.localSrc.LocalAddress())
}

// ReplicationFactor implements Strategy.
//
// Always returns 1.
func (s *Local) ReplicationFactor(*ring.State) int {
	return 1
}

// ValidateOptions implements Strategy.
//
// Always returns nil: any supplied options, including unexpected ones,
// are silently inert.
func (s *Local) ValidateOptions() error {
	return nil
}

// RecognizedOptions implements Strategy.
//
// Always returns an empty non-nil set: the strategy expects no
// options, but ValidateOptions does not enforce this.
func (s *Local) RecognizedOptions(*ring.Topology) *strset.Set {
	return strset.New()
}
