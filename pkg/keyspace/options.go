package keyspace

import (
	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/util"
	"go.uber.org/zap"
)

// Option is an option for Manager constructor.
type Option func(*cfg)

type cfg struct {
	log *zap.Logger

	reg *locator.Registry

	store Storage

	ringSrc ring.Source

	top *ring.Topology

	maps *locator.MapFactory

	metrics MetricRegister

	handlers []Handler

	handlerPool util.WorkerPool
}

func defaultCfg() *cfg {
	return &cfg{
		log: zap.L(),
	}
}

// WithLogger returns option to set logging component of Manager.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithRegistry returns option to set the replica placement strategy
// registry used to resolve schema-declared strategy names.
func WithRegistry(r *locator.Registry) Option {
	return func(c *cfg) {
		c.reg = r
	}
}

// WithStorage returns option to set the persistent keyspace schema
// record storage. Without it the schema lives in memory only.
func WithStorage(s Storage) Option {
	return func(c *cfg) {
		c.store = s
	}
}

// WithRingSource returns option to set the ring state provider used
// to compute placements without a prebuilt replication view.
func WithRingSource(src ring.Source) Option {
	return func(c *cfg) {
		c.ringSrc = src
	}
}

// WithTopology returns option to set the cluster topology passed to
// strategies when declaring their recognized options.
func WithTopology(top *ring.Topology) Option {
	return func(c *cfg) {
		c.top = top
	}
}

// WithMapFactory returns option to set the replication map factory
// which serves precomputed placement views.
func WithMapFactory(f *locator.MapFactory) Option {
	return func(c *cfg) {
		c.maps = f
	}
}

// WithMetrics returns option to set the keyspace schema metrics.
func WithMetrics(m MetricRegister) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}

// WithEventHandler returns option to add a schema change handler.
//
// Without a worker pool, handlers run in the routine applying the
// change and must not call back into the Manager.
func WithEventHandler(h Handler) Option {
	return func(c *cfg) {
		c.handlers = append(c.handlers, h)
	}
}

// WithEventPool returns option to run schema change handlers in the
// given worker pool instead of the routine applying the change.
func WithEventPool(p util.WorkerPool) Option {
	return func(c *cfg) {
		c.handlerPool = p
	}
}
