package placement

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/nspcc-dev/hrw"
)

// Option represents placement traverser option.
type Option func(*cfg)

// Traverser represents utility for controlling
// traversal of replica placement vectors.
type Traverser struct {
	mtx *sync.RWMutex

	rem int

	next int

	vector []network.Address
}

type cfg struct {
	rem int

	quorum, all bool

	keyspace string

	tok ring.Token

	spread bool

	builder Builder
}

var (
	errNilBuilder = errors.New("placement builder is nil")

	errNoKeyspace = errors.New("keyspace is not specified")
)

func defaultCfg() *cfg {
	return &cfg{
		rem: 1,
	}
}

// NewTraverser creates, initializes with options and returns Traverser instance.
func NewTraverser(ctx context.Context, opts ...Option) (*Traverser, error) {
	cfg := defaultCfg()

	for i := range opts {
		if opts[i] != nil {
			opts[i](cfg)
		}
	}

	switch {
	case cfg.builder == nil:
		return nil, fmt.Errorf("incomplete traverser options: %w", errNilBuilder)
	case cfg.keyspace == "":
		return nil, fmt.Errorf("incomplete traverser options: %w", errNoKeyspace)
	}

	vec, err := cfg.builder.BuildPlacement(ctx, cfg.keyspace, cfg.tok)
	if err != nil {
		return nil, fmt.Errorf("could not build placement: %w", err)
	}

	if cfg.spread {
		vec = spreadVector(vec, cfg.tok)
	}

	rem := cfg.rem

	switch {
	case cfg.all:
		rem = len(vec)
	case cfg.quorum:
		rem = len(vec)/2 + 1
	}

	return &Traverser{
		mtx:    new(sync.RWMutex),
		rem:    rem,
		vector: vec,
	}, nil
}

// spreadVector orders replicas by rendezvous hashing of the token,
// detaching the contact order from ring positions. Endpoint addresses
// are distinct within a vector.
func spreadVector(vec []network.Address, tok ring.Token) []network.Address {
	binTok := make([]byte, 8)
	binary.BigEndian.PutUint64(binTok, uint64(tok))

	ss := make([]string, len(vec))
	byStr := make(map[string]network.Address, len(vec))

	for i := range vec {
		ss[i] = vec[i].String()
		byStr[ss[i]] = vec[i]
	}

	hrw.SortSliceByValue(ss, hrw.Hash(binTok))

	res := make([]network.Address, len(ss))
	for i := range ss {
		res[i] = byStr[ss[i]]
	}

	return res
}

// Next returns next unprocessed address of the replica placement.
//
// Returns false if no replicas left or traversal operation succeeded.
func (t *Traverser) Next() (network.Address, bool) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if t.rem == 0 || t.next == len(t.vector) {
		return network.Address{}, false
	}

	addr := t.vector[t.next]
	t.next++

	return addr, true
}

// SubmitSuccess writes single succeeded replica operation.
func (t *Traverser) SubmitSuccess() {
	t.mtx.Lock()
	t.rem--
	t.mtx.Unlock()
}

// Success returns true if traversal operation succeeded.
func (t *Traverser) Success() bool {
	t.mtx.RLock()
	s := t.rem <= 0
	t.mtx.RUnlock()

	return s
}

// UseBuilder is a placement builder setting option.
//
// Overlaps UseSource option.
func UseBuilder(b Builder) Option {
	return func(c *cfg) {
		c.builder = b
	}
}

// UseSource is a placement builder based on the natural endpoints
// provider setting option.
//
// Overlaps UseBuilder option.
func UseSource(src EndpointsSource) Option {
	return func(c *cfg) {
		c.builder = NewKeyspaceBuilder(src)
	}
}

// ForKeyspace is a traversal keyspace setting option.
func ForKeyspace(name string) Option {
	return func(c *cfg) {
		c.keyspace = name
	}
}

// ForToken is a processing token setting option.
func ForToken(tok ring.Token) Option {
	return func(c *cfg) {
		c.tok = tok
	}
}

// SuccessAfter is a success number setting option.
//
// Option has no effect if the number is not positive.
func SuccessAfter(v int) Option {
	return func(c *cfg) {
		if v > 0 {
			c.rem = v
		}
	}
}

// SuccessAfterQuorum requires a majority of the replica vector
// to succeed.
func SuccessAfterQuorum() Option {
	return func(c *cfg) {
		c.quorum, c.all = true, false
	}
}

// SuccessForAll requires the whole replica vector to succeed.
func SuccessForAll() Option {
	return func(c *cfg) {
		c.all, c.quorum = true, false
	}
}

// WithoutSuccessTracking disables success tracking in traversal.
func WithoutSuccessTracking() Option {
	return func(c *cfg) {
		c.rem = -1
		c.all, c.quorum = false, false
	}
}

// SpreadByToken orders the replica vector by rendezvous hash of the
// token instead of ring order.
func SpreadByToken() Option {
	return func(c *cfg) {
		c.spread = true
	}
}
