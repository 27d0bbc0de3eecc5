package placement

import (
	"context"
	"fmt"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/network"
)

// EndpointsSource is an interface of the replica set provider.
//
// Implemented by the keyspace manager.
type EndpointsSource interface {
	// NaturalEndpoints computes the replica set of the token in the
	// named keyspace.
	//
	// Must return exactly one non-nil value.
	NaturalEndpoints(ctx context.Context, keyspace string, tok ring.Token) (*locator.EndpointSet, error)
}

// Builder is an interface of the replica placement vector builder.
type Builder interface {
	// BuildPlacement returns the ordered list of replica addresses
	// of the token in the keyspace.
	BuildPlacement(ctx context.Context, keyspace string, tok ring.Token) ([]network.Address, error)
}

type keyspaceBuilder struct {
	src EndpointsSource
}

// NewKeyspaceBuilder returns Builder computing replica vectors from
// the natural endpoints of the keyspace.
func NewKeyspaceBuilder(src EndpointsSource) Builder {
	return &keyspaceBuilder{
		src: src,
	}
}

func (b *keyspaceBuilder) BuildPlacement(ctx context.Context, keyspace string, tok ring.Token) ([]network.Address, error) {
	es, err := b.src.NaturalEndpoints(ctx, keyspace, tok)
	if err != nil {
		return nil, fmt.Errorf("could not compute natural endpoints: %w", err)
	}

	return es.Endpoints(), nil
}
