package agent

import (
	"context"
	"time"

	"github.com/molyee/scylladb/pkg/core/ring"
	"go.uber.org/zap"
)

// Key of the last applied ring state version in the persistent state.
var ringVersionStateKey = []byte("ring_last_seen_version")

// seedRingState reads the configured snapshot file and feeds the ring
// storage before the agent starts serving. A missing or broken snapshot
// is not fatal: the watcher picks it up later, and ring-independent
// strategies answer without any ring state.
//
// Returns the topology of the seeded state, nil if nothing was seeded.
func (a *Agent) seedRingState() *ring.Topology {
	persisted, err := a.persistate.UInt64(ringVersionStateKey)
	if err != nil {
		a.log.Warn("can't get last seen ring version", zap.Error(err))
	}

	snap, err := ring.ReadSnapshotFile(a.cfg.Ring.Snapshot)
	if err != nil {
		a.log.Warn("ring snapshot is not available yet", zap.Error(err))
		return nil
	}

	st, top, err := snap.Build()
	if err != nil {
		a.log.Warn("invalid ring snapshot", zap.Error(err))
		return nil
	}

	if st.Version() < persisted {
		a.log.Warn("ring snapshot is older than the last seen state",
			zap.Uint64("version", st.Version()),
			zap.Uint64("last_seen", persisted))
	}

	if err := a.ringStorage.Add(st); err != nil {
		a.log.Warn("could not store ring state", zap.Error(err))
		return nil
	}

	a.applyRingVersion(st.Version())

	a.log.Info("ring state seeded from snapshot",
		zap.Uint64("version", st.Version()),
		zap.Int("entries", st.Len()))

	return top
}

// runRingWatcher polls the snapshot file and applies newer ring states
// to the agent, refreshing the replication views of the schema.
func (a *Agent) runRingWatcher(ctx context.Context) {
	t := time.NewTicker(a.cfg.Ring.PollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.pollRingSnapshot(ctx)
		}
	}
}

func (a *Agent) pollRingSnapshot(ctx context.Context) {
	snap, err := ring.ReadSnapshotFile(a.cfg.Ring.Snapshot)
	if err != nil {
		a.log.Warn("could not read ring snapshot", zap.Error(err))
		return
	}

	// cheap check before building the full state
	if snap.Version <= a.lastRingVersion.Load() {
		return
	}

	st, _, err := snap.Build()
	if err != nil {
		a.log.Warn("invalid ring snapshot", zap.Error(err))
		return
	}

	if err := a.ringStorage.Add(st); err != nil {
		a.log.Warn("could not store ring state", zap.Error(err))
		return
	}

	a.applyRingVersion(st.Version())

	a.log.Info("ring state updated",
		zap.Uint64("version", st.Version()),
		zap.Int("entries", st.Len()))

	if err := a.manager.RefreshMaps(ctx); err != nil {
		a.log.Warn("could not refresh replication views", zap.Error(err))
	}
}

func (a *Agent) applyRingVersion(v uint64) {
	a.lastRingVersion.Store(v)
	a.metrics.SetRingVersion(v)

	if err := a.persistate.SetUInt64(ringVersionStateKey, v); err != nil {
		a.log.Warn("can't update persistent state",
			zap.Uint64("ring_version", v))
	}
}
