package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/molyee/scylladb/misc"
	"github.com/molyee/scylladb/pkg/agent/config"
	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/keyspace"
	"github.com/molyee/scylladb/pkg/keyspace/persistent"
	"github.com/molyee/scylladb/pkg/locator"
	"github.com/molyee/scylladb/pkg/metrics"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/molyee/scylladb/pkg/util"
	"github.com/molyee/scylladb/pkg/util/state"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// HealthStatus represents the life cycle stage of the agent. Reported
// through the state metrics.
type HealthStatus int32

const (
	// HealthStatusUndefined is set once at the very beginning of the
	// agent construction.
	HealthStatusUndefined HealthStatus = iota

	// HealthStatusStarting is set while local resources are ready but
	// external interactions have not finished yet.
	HealthStatusStarting

	// HealthStatusReady is set when the agent serves placement.
	HealthStatusReady

	// HealthStatusShuttingDown is set on Stop.
	HealthStatusShuttingDown
)

// Agent is the locator application structure that wires the keyspace
// manager, the ring snapshot watcher and the schema change notifications
// together.
type Agent struct {
	log *zap.Logger

	cfg *config.Config

	metrics *metrics.AgentMetrics

	// ring state feed
	ringStorage     *ring.Storage
	lastRingVersion *atomic.Uint64

	persistate  *state.PersistentStorage
	schemaStore *persistent.Store

	manager *keyspace.Manager

	notifications *notifications

	// background routines
	workers []func(context.Context)

	// Set of local resources that must be
	// released at Agent's work completion
	// (e.g closing files).
	//
	// Closer's wrong outcome shouldn't be critical.
	//
	// Errors are logged.
	closers []func() error
}

// New creates the agent from the parsed configuration: opens the local
// databases, restores the keyspace schema and seeds the ring state from
// the snapshot file if it is already available.
//
// Resources opened by New must be released with Stop.
func New(log *zap.Logger, cfg *config.Config) (*Agent, error) {
	if cfg.Ring.Snapshot == "" {
		return nil, errors.New("path to the ring snapshot file is not configured")
	}

	a := &Agent{
		log:             log,
		cfg:             cfg,
		metrics:         metrics.NewAgentMetrics(misc.Version),
		ringStorage:     ring.NewStorage(),
		lastRingVersion: atomic.NewUint64(0),
	}

	a.setHealthStatus(HealthStatusUndefined)

	localAddr, err := network.AddressFromString(cfg.Node.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid local node address: %w", err)
	}

	reg := locator.NewDefaultRegistry(network.NewStaticLocalAddress(localAddr))

	a.persistate, err = state.NewPersistentStorage(cfg.Node.PersistentState.Path)
	if err != nil {
		return nil, fmt.Errorf("could not open persistent state: %w", err)
	}
	a.registerCloser(a.persistate.Close)

	top := a.seedRingState()

	a.schemaStore, err = persistent.NewStore(cfg.Schema.Path,
		persistent.WithLogger(log),
		persistent.WithTimeout(cfg.Schema.OpenTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("could not open keyspace schema database: %w", err)
	}
	a.registerCloser(a.schemaStore.Close)

	placementPool, err := util.NewWorkerPool(cfg.Placement.Workers)
	if err != nil {
		return nil, fmt.Errorf("could not create placement worker pool: %w", err)
	}
	a.registerNoErrCloser(placementPool.Release)

	// a single worker keeps the schema change order for subscribers
	eventPool, err := util.NewWorkerPool(1)
	if err != nil {
		return nil, fmt.Errorf("could not create event worker pool: %w", err)
	}
	a.registerNoErrCloser(eventPool.Release)

	factory := locator.NewMapFactory(
		locator.WithRegistry(reg),
		locator.WithRingSource(a.ringStorage),
		locator.WithLogger(log),
		locator.WithCacheSize(cfg.Placement.CacheSize),
		locator.WithMetrics(a.metrics),
		locator.WithBuildOptions(locator.WithWorkerPool(placementPool)),
	)

	managerOpts := []keyspace.Option{
		keyspace.WithLogger(log),
		keyspace.WithRegistry(reg),
		keyspace.WithStorage(a.schemaStore),
		keyspace.WithRingSource(a.ringStorage),
		keyspace.WithTopology(top),
		keyspace.WithMapFactory(factory),
		keyspace.WithMetrics(a.metrics),
		keyspace.WithEventPool(eventPool),
	}

	if cfg.Notifications.Enabled {
		a.notifications, err = newNotifications(log, cfg.Notifications)
		if err != nil {
			return nil, fmt.Errorf("could not init schema notifications: %w", err)
		}

		managerOpts = append(managerOpts, keyspace.WithEventHandler(a.notifications.n.Handler()))
	}

	a.manager = keyspace.NewManager(managerOpts...)

	if err := a.manager.Load(); err != nil {
		return nil, fmt.Errorf("could not restore keyspace schema: %w", err)
	}

	a.workers = append(a.workers, a.runRingWatcher)

	return a, nil
}

// Manager returns the keyspace manager of the agent.
func (a *Agent) Manager() *keyspace.Manager {
	return a.manager
}

// Start connects to the notification server if it is configured, warms
// up the replication views of the restored schema and launches the
// background workers.
func (a *Agent) Start(ctx context.Context) (err error) {
	a.setHealthStatus(HealthStatusStarting)
	defer func() {
		if err == nil {
			a.setHealthStatus(HealthStatusReady)
		}
	}()

	if a.notifications != nil {
		if err = a.notifications.connect(ctx); err != nil {
			return fmt.Errorf("could not connect to the notification server: %w", err)
		}

		a.log.Info("connected to the notification server",
			zap.String("endpoint", a.cfg.Notifications.Endpoint))

		// replay the restored schema so late subscribers catch up
		a.notifications.n.ProcessSchema(schemaSource{m: a.manager})
	}

	if _, err := a.ringStorage.Version(); err == nil {
		if err := a.manager.RefreshMaps(ctx); err != nil {
			a.log.Warn("could not warm up replication views", zap.Error(err))
		}
	}

	a.startWorkers(ctx)

	a.log.Info("agent started", zap.String("version", misc.Version))

	return nil
}

func (a *Agent) startWorkers(ctx context.Context) {
	for _, w := range a.workers {
		go w(ctx)
	}
}

// Stop releases all resources of the agent.
func (a *Agent) Stop() {
	a.setHealthStatus(HealthStatusShuttingDown)

	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("closer error",
				zap.Error(err),
			)
		}
	}
}

func (a *Agent) registerNoErrCloser(c func()) {
	a.registerCloser(func() error {
		c()
		return nil
	})
}

func (a *Agent) registerCloser(f func() error) {
	a.closers = append(a.closers, f)
}

func (a *Agent) setHealthStatus(st HealthStatus) {
	a.metrics.SetHealth(int32(st))
}
