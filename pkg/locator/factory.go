package locator

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/molyee/scylladb/pkg/core/ring"
	"go.uber.org/zap"
)

const defaultMapCacheSize = 100

// MetricRegister is an interface of the replication map build metrics.
type MetricRegister interface {
	// AddMapBuildDuration adds the time taken by a single replication
	// map construction.
	AddMapBuildDuration(d time.Duration)
}

// MapFactory builds replication maps against the latest known ring
// state and caches them per strategy configuration and ring version.
//
// MapFactory is safe for concurrent use.
type MapFactory struct {
	log *zap.Logger

	reg *Registry

	ringSrc ring.Source

	metrics MetricRegister

	buildOpts []BuildOption

	cache *lru.Cache[string, *ReplicationMap]
}

// FactoryOption is an option of MapFactory's constructor.
type FactoryOption func(*factoryCfg)

type factoryCfg struct {
	log *zap.Logger

	cacheSize int

	reg *Registry

	ringSrc ring.Source

	metrics MetricRegister

	buildOpts []BuildOption
}

func defaultFactoryCfg() *factoryCfg {
	return &factoryCfg{
		log:       zap.NewNop(),
		cacheSize: defaultMapCacheSize,
	}
}

// WithRegistry returns an option to set the strategy registry used to
// construct strategies by schema-declared name.
func WithRegistry(r *Registry) FactoryOption {
	return func(c *factoryCfg) {
		c.reg = r
	}
}

// WithRingSource returns an option to set the ring state provider.
func WithRingSource(src ring.Source) FactoryOption {
	return func(c *factoryCfg) {
		c.ringSrc = src
	}
}

// WithLogger returns an option to set the logging component.
func WithLogger(l *zap.Logger) FactoryOption {
	return func(c *factoryCfg) {
		c.log = l
	}
}

// WithCacheSize returns an option to set the replication map cache
// capacity.
func WithCacheSize(sz int) FactoryOption {
	return func(c *factoryCfg) {
		c.cacheSize = sz
	}
}

// WithMetrics returns an option to set the build metrics register.
func WithMetrics(m MetricRegister) FactoryOption {
	return func(c *factoryCfg) {
		c.metrics = m
	}
}

// WithBuildOptions returns an option to apply the given options to
// every replication map construction.
func WithBuildOptions(opts ...BuildOption) FactoryOption {
	return func(c *factoryCfg) {
		c.buildOpts = opts
	}
}

// NewMapFactory creates, initializes and returns MapFactory instance.
// The returned structure is ready to use.
//
// Panics if the strategy registry or the ring source is missing, or
// the cache capacity is not positive.
func NewMapFactory(oo ...FactoryOption) *MapFactory {
	cfg := defaultFactoryCfg()

	for _, o := range oo {
		o(cfg)
	}

	panicOnNil := func(v any, name string) {
		if v == nil {
			panic(fmt.Sprintf("replication map factory constructor: %s is nil", name))
		}
	}

	panicOnNil(cfg.reg, "strategy registry")
	panicOnNil(cfg.ringSrc, "ring source")

	cache, err := lru.New[string, *ReplicationMap](cfg.cacheSize)
	if err != nil {
		panic(fmt.Errorf("could not create LRU cache with %d size: %w", cfg.cacheSize, err))
	}

	return &MapFactory{
		log:       cfg.log.With(zap.String("component", "Replication Map Factory")),
		reg:       cfg.reg,
		ringSrc:   cfg.ringSrc,
		metrics:   cfg.metrics,
		buildOpts: cfg.buildOpts,
		cache:     cache,
	}
}

// ReplicationMapFor returns the replication view of the named strategy
// with the given configuration, built against the latest known ring
// state. Serves the cached view while the ring version and the
// configuration stay unchanged.
func (f *MapFactory) ReplicationMapFor(ctx context.Context, name string, cfg Config) (*ReplicationMap, error) {
	rs, err := ring.GetLatestRingState(f.ringSrc)
	if err != nil {
		return nil, fmt.Errorf("could not get latest ring state: %w", err)
	}

	key := fmt.Sprintf("%s|%s|%d", name, cfg.fingerprint(), rs.Version())

	if m, ok := f.cache.Get(key); ok {
		return m, nil
	}

	s, err := f.reg.Create(name, cfg)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	m, err := BuildReplicationMap(ctx, s, rs, f.buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not build replication map: %w", err)
	}

	if f.metrics != nil {
		f.metrics.AddMapBuildDuration(time.Since(start))
	}

	f.cache.Add(key, m)

	f.log.Debug("replication map built",
		zap.String("strategy", name),
		zap.Uint64("ring_version", rs.Version()),
		zap.Int("positions", m.Len()))

	return m, nil
}
