package locator

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/util"
)

// ReplicationMap is a versioned, fully resolved view of replica
// placement: the replica set of every claimed ring position, computed
// once by a strategy and reused for fast synchronous lookups.
//
// ReplicationMap is immutable after construction and safe for
// concurrent use.
type ReplicationMap struct {
	version uint64

	tokens   []ring.Token
	replicas []*EndpointSet
}

// Version returns the version of the ring state the view was built
// from.
func (m *ReplicationMap) Version() uint64 {
	if m == nil {
		return 0
	}

	return m.version
}

// Len returns the number of resolved ring positions.
func (m *ReplicationMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.tokens)
}

// ReplicasFor returns the replica set of the ring segment owning the
// given token: the set resolved for the first claimed position not
// less than the token, wrapping past the highest one.
//
// Returns an empty set if the view is nil or covers no positions.
func (m *ReplicationMap) ReplicasFor(tok ring.Token) *EndpointSet {
	if m == nil || len(m.tokens) == 0 {
		return NewEndpointSet()
	}

	i := sort.Search(len(m.tokens), func(i int) bool {
		return m.tokens[i].Compare(tok) >= 0
	})

	if i == len(m.tokens) {
		i = 0
	}

	return m.replicas[i]
}

// BuildOption sets an optional parameter of BuildReplicationMap.
type BuildOption func(*buildCfg)

type buildCfg struct {
	pool util.WorkerPool

	progress func()
}

func defaultBuildCfg() *buildCfg {
	return &buildCfg{
		pool: util.NewPseudoWorkerPool(),
	}
}

// WithWorkerPool returns an option to resolve replica sets in the
// given worker pool instead of the caller's routine.
func WithWorkerPool(p util.WorkerPool) BuildOption {
	return func(c *buildCfg) {
		c.pool = p
	}
}

// WithBuildProgress returns an option to call f after every resolved
// ring position. With a concurrent worker pool f may be called from
// multiple routines at once.
func WithBuildProgress(f func()) BuildOption {
	return func(c *buildCfg) {
		c.progress = f
	}
}

// BuildReplicationMap resolves the replica sets of all claimed ring
// positions with the given strategy and packs them into a versioned
// fast lookup view.
//
// Returns ErrRingStateUnavailable on nil ring state. Returns the first
// placement computation error encountered, if any.
func BuildReplicationMap(ctx context.Context, s Strategy, rs *ring.State, opts ...BuildOption) (*ReplicationMap, error) {
	if rs == nil {
		return nil, ErrRingStateUnavailable
	}

	c := defaultBuildCfg()

	for i := range opts {
		opts[i](c)
	}

	m := &ReplicationMap{
		version:  rs.Version(),
		tokens:   rs.Tokens(),
		replicas: make([]*EndpointSet, rs.Len()),
	}

	var (
		wg sync.WaitGroup

		errOnce  sync.Once
		firstErr error
	)

	for i := range m.tokens {
		i := i

		wg.Add(1)

		if err := c.pool.Submit(func() {
			defer wg.Done()

			res, err := s.CalculateNaturalEndpoints(ctx, m.tokens[i], rs)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}

			m.replicas[i] = res

			if c.progress != nil {
				c.progress()
			}
		}); err != nil {
			wg.Done()

			errOnce.Do(func() {
				firstErr = fmt.Errorf("could not submit placement task to worker pool: %w", err)
			})

			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return m, nil
}
