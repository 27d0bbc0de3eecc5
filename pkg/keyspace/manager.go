package keyspace

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/locator"
	"go.uber.org/zap"
)

// MetricRegister is an interface of the keyspace schema metrics.
type MetricRegister interface {
	// SetKeyspaceCount sets the number of installed keyspaces.
	SetKeyspaceCount(n uint64)

	// SetKeyspaceReplicationFactor sets the replication factor of the
	// named keyspace.
	SetKeyspaceReplicationFactor(name string, rf uint64)

	// DeleteKeyspaceReplicationFactor drops the replication factor
	// metric of the named keyspace.
	DeleteKeyspaceReplicationFactor(name string)

	// IncSchemaChanges counts a successfully applied schema change.
	IncSchemaChanges()

	// IncMapsRebuilt counts a completed replication view refresh.
	IncMapsRebuilt()
}

// Manager maintains the keyspace schema registry: it validates and
// installs replica placement strategies at schema change time,
// persists schema records and serves the installed strategy instances
// to placement consumers.
//
// For correct operation, Manager must be created via NewManager.
//
// Manager is safe for concurrent use.
type Manager struct {
	*cfg

	mtx sync.RWMutex

	mKeyspaces map[string]*installed
}

type installed struct {
	ks *Keyspace

	strategy locator.Strategy
}

// NewManager creates, initializes and returns Manager instance.
// The returned structure is ready to use.
//
// Panics if the strategy registry is missing.
func NewManager(oo ...Option) *Manager {
	cfg := defaultCfg()

	for _, o := range oo {
		o(cfg)
	}

	if cfg.reg == nil {
		panic("keyspace manager constructor: strategy registry is nil")
	}

	cfg.log = cfg.log.With(zap.String("component", "Keyspace Manager"))

	return &Manager{
		cfg:        cfg,
		mKeyspaces: make(map[string]*installed),
	}
}

// install resolves and validates the strategy of the schema snapshot.
//
// Validation failures surface here, before the strategy serves any
// placement request. Options outside the strategy's recognized set are
// logged but do not fail the installation: strategies which accept
// everything at validation time stay installable with any options.
func (m *Manager) install(ks *Keyspace) (locator.Strategy, error) {
	s, err := m.reg.Create(ks.Strategy(), ks.Options())
	if err != nil {
		return nil, err
	}

	if err := s.ValidateOptions(); err != nil {
		return nil, err
	}

	if recognized := s.RecognizedOptions(m.top); recognized != nil {
		for _, name := range ks.Options().Names() {
			if !recognized.Has(name) {
				m.log.Warn("option not recognized by the placement strategy",
					zap.String("keyspace", ks.Name()),
					zap.String("strategy", ks.Strategy()),
					zap.String("option", name))
			}
		}
	}

	return s, nil
}

// setRFMetric reports the replication factor of the installed
// keyspace. Ring-derived factors are computed against the latest known
// ring state; without one the strategy answers for the nil state.
func (m *Manager) setRFMetric(ks *Keyspace, s locator.Strategy) {
	if m.metrics == nil {
		return
	}

	var rs *ring.State

	if m.ringSrc != nil {
		if st, err := ring.GetLatestRingState(m.ringSrc); err == nil {
			rs = st
		}
	}

	m.metrics.SetKeyspaceReplicationFactor(ks.Name(), uint64(s.ReplicationFactor(rs)))
}

// Create validates and installs a new keyspace with the named replica
// placement strategy.
//
// Returns ErrExists if the keyspace is already installed. Returns
// *locator.ConfigurationError if the strategy rejects the options.
func (m *Manager) Create(name, strategy string, options locator.Config) (*Keyspace, error) {
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid keyspace name: %w", err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if _, ok := m.mKeyspaces[name]; ok {
		return nil, fmt.Errorf("keyspace %s: %w", name, ErrExists)
	}

	ks := New(name, strategy, options)

	s, err := m.install(ks)
	if err != nil {
		return nil, err
	}

	if m.store != nil {
		if err := m.store.Put(ks); err != nil {
			return nil, fmt.Errorf("could not persist keyspace %s: %w", name, err)
		}
	}

	m.mKeyspaces[name] = &installed{ks: ks, strategy: s}

	m.setRFMetric(ks, s)

	m.log.Info("keyspace created",
		zap.String("keyspace", name),
		zap.String("strategy", strategy),
		zap.Stringer("version", ks.Version()))

	m.onSchemaChange(Event{Type: EventCreated, Keyspace: ks})

	return ks, nil
}

// Alter replaces the placement strategy and options of an installed
// keyspace with a fresh schema version. The previous strategy instance
// keeps serving concurrent readers until the swap and is discarded
// afterwards.
//
// Returns ErrNotFound if the keyspace is not installed. Returns
// *locator.ConfigurationError if the strategy rejects the options.
func (m *Manager) Alter(name, strategy string, options locator.Config) (*Keyspace, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	prev, ok := m.mKeyspaces[name]
	if !ok {
		return nil, fmt.Errorf("keyspace %s: %w", name, ErrNotFound)
	}

	ks := New(name, strategy, options)

	s, err := m.install(ks)
	if err != nil {
		return nil, err
	}

	if m.store != nil {
		if err := m.store.Put(ks); err != nil {
			return nil, fmt.Errorf("could not persist keyspace %s: %w", name, err)
		}
	}

	m.mKeyspaces[name] = &installed{ks: ks, strategy: s}

	m.setRFMetric(ks, s)

	m.log.Info("keyspace altered",
		zap.String("keyspace", name),
		zap.String("strategy", strategy),
		zap.Stringer("old_version", prev.ks.Version()),
		zap.Stringer("version", ks.Version()))

	m.onSchemaChange(Event{Type: EventAltered, Keyspace: ks})

	return ks, nil
}

// Drop uninstalls the keyspace and removes its persistent schema
// record.
//
// Returns ErrNotFound if the keyspace is not installed.
func (m *Manager) Drop(name string) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	prev, ok := m.mKeyspaces[name]
	if !ok {
		return fmt.Errorf("keyspace %s: %w", name, ErrNotFound)
	}

	if m.store != nil {
		if err := m.store.Delete(name); err != nil {
			return fmt.Errorf("could not remove keyspace record %s: %w", name, err)
		}
	}

	delete(m.mKeyspaces, name)

	if m.metrics != nil {
		m.metrics.DeleteKeyspaceReplicationFactor(name)
	}

	m.log.Info("keyspace dropped",
		zap.String("keyspace", name))

	m.onSchemaChange(Event{Type: EventDropped, Keyspace: prev.ks})

	return nil
}

// Get returns the installed keyspace schema snapshot by name.
//
// Returns ErrNotFound if the keyspace is not installed.
func (m *Manager) Get(name string) (*Keyspace, error) {
	e, err := m.get(name)
	if err != nil {
		return nil, err
	}

	return e.ks, nil
}

// Strategy returns the strategy instance installed for the keyspace.
// The instance is immutable and stays valid after subsequent schema
// changes.
//
// Returns ErrNotFound if the keyspace is not installed.
func (m *Manager) Strategy(name string) (locator.Strategy, error) {
	e, err := m.get(name)
	if err != nil {
		return nil, err
	}

	return e.strategy, nil
}

func (m *Manager) get(name string) (*installed, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	e, ok := m.mKeyspaces[name]
	if !ok {
		return nil, fmt.Errorf("keyspace %s: %w", name, ErrNotFound)
	}

	return e, nil
}

// List returns the installed keyspace schema snapshots sorted by name.
func (m *Manager) List() []*Keyspace {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	kss := make([]*Keyspace, 0, len(m.mKeyspaces))
	for _, e := range m.mKeyspaces {
		kss = append(kss, e.ks)
	}

	sort.Slice(kss, func(i, j int) bool { return kss[i].Name() < kss[j].Name() })

	return kss
}

// Load installs all keyspace schema records from the persistent
// storage. Used at application startup, before the schema serves any
// request.
//
// Fails on the first record whose strategy can not be resolved or
// validated: a partially restored schema must not be served.
func (m *Manager) Load() error {
	if m.store == nil {
		return nil
	}

	kss, err := m.store.List()
	if err != nil {
		return fmt.Errorf("could not list keyspace records: %w", err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	for _, ks := range kss {
		s, err := m.install(ks)
		if err != nil {
			return fmt.Errorf("could not restore keyspace %s: %w", ks.Name(), err)
		}

		m.mKeyspaces[ks.Name()] = &installed{ks: ks, strategy: s}

		m.setRFMetric(ks, s)
	}

	m.log.Info("keyspace schema restored",
		zap.Int("count", len(kss)))

	if m.metrics != nil {
		m.metrics.SetKeyspaceCount(uint64(len(m.mKeyspaces)))
	}

	return nil
}

// RefreshMaps rebuilds the replication view of every installed
// keyspace against the latest known ring state.
//
// Requires the replication map factory.
func (m *Manager) RefreshMaps(ctx context.Context) error {
	if m.maps == nil {
		return errors.New("replication map factory is not configured")
	}

	for _, ks := range m.List() {
		if _, err := m.maps.ReplicationMapFor(ctx, ks.Strategy(), ks.Options()); err != nil {
			return fmt.Errorf("could not refresh replication view of keyspace %s: %w", ks.Name(), err)
		}
	}

	if m.metrics != nil {
		m.metrics.IncMapsRebuilt()
	}

	return nil
}

// NaturalEndpoints computes the replica set of the token in the named
// keyspace. The precomputed replication view is used when the map
// factory is configured and ring state is known; otherwise the
// placement is computed directly, with the latest ring state when the
// provider has one.
//
// Returns ErrNotFound if the keyspace is not installed.
func (m *Manager) NaturalEndpoints(ctx context.Context, name string, tok ring.Token) (*locator.EndpointSet, error) {
	e, err := m.get(name)
	if err != nil {
		return nil, err
	}

	if m.maps != nil {
		rm, err := m.maps.ReplicationMapFor(ctx, e.ks.Strategy(), e.ks.Options())
		if err == nil {
			return e.strategy.GetNaturalEndpoints(tok, rm), nil
		}

		// ring-independent strategies answer without any ring state, so
		// a missing state is not a failure yet
		if !errors.Is(err, ring.ErrNotFound) {
			return nil, err
		}
	}

	var rs *ring.State

	if m.ringSrc != nil {
		st, err := ring.GetLatestRingState(m.ringSrc)
		if err != nil && !errors.Is(err, ring.ErrNotFound) {
			return nil, fmt.Errorf("could not get latest ring state: %w", err)
		}

		if err == nil {
			rs = st
		}
	}

	return e.strategy.CalculateNaturalEndpoints(ctx, tok, rs)
}

func (m *Manager) onSchemaChange(e Event) {
	if m.metrics != nil {
		m.metrics.SetKeyspaceCount(uint64(len(m.mKeyspaces)))
		m.metrics.IncSchemaChanges()
	}

	for i := range m.handlers {
		h := m.handlers[i]

		if m.handlerPool != nil {
			err := m.handlerPool.Submit(func() { h(e) })
			if err != nil {
				m.log.Warn("could not submit schema event handler to worker pool",
					zap.Error(err))
			}

			continue
		}

		h(e)
	}
}
