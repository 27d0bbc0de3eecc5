package locator

import (
	"context"
	"testing"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/stretchr/testify/require"
)

func TestMapFactory(t *testing.T) {
	local := testAddr(t, "192.168.5.5:9042")
	reg := NewDefaultRegistry(network.NewStaticLocalAddress(local))

	storage := ring.NewStorage()

	factory := NewMapFactory(
		WithRegistry(reg),
		WithRingSource(storage),
		WithCacheSize(4),
	)

	ctx := context.Background()
	cfg := simpleCfg("2")

	t.Run("no ring state", func(t *testing.T) {
		_, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, cfg)
		require.ErrorIs(t, err, ring.ErrNotFound)
	})

	require.NoError(t, storage.Add(testRingState(t, 1, "10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042")))

	t.Run("caches per ring version", func(t *testing.T) {
		m1, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, cfg)
		require.NoError(t, err)
		require.EqualValues(t, 1, m1.Version())

		again, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, cfg)
		require.NoError(t, err)
		require.Same(t, m1, again)

		require.NoError(t, storage.Add(testRingState(t, 2, "10.0.0.1:9042", "10.0.0.2:9042")))

		m2, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, cfg)
		require.NoError(t, err)
		require.NotSame(t, m1, m2)
		require.EqualValues(t, 2, m2.Version())
	})

	t.Run("distinct configurations", func(t *testing.T) {
		m2, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, cfg)
		require.NoError(t, err)

		m1, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, simpleCfg("1"))
		require.NoError(t, err)
		require.NotSame(t, m2, m1)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, err := factory.ReplicationMapFor(ctx, "NetworkTopologyStrategy", cfg)
		require.Error(t, err)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := factory.ReplicationMapFor(ctx, SimpleStrategyShortName, NewConfig(map[string]string{OptReplicationFactor: "nan"}))

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})
}
