package locator

import (
	"context"
	"testing"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestBuildReplicationMap(t *testing.T) {
	rs := testRingStateWith(t, 3,
		[]ring.Token{-1000, 0, 1000, 2000, 3000},
		[]string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042", "10.0.0.1:9042", "10.0.0.4:9042"},
	)

	s := NewSimple(simpleCfg("2"))
	ctx := context.Background()

	rm, err := BuildReplicationMap(ctx, s, rs)
	require.NoError(t, err)

	require.EqualValues(t, 3, rm.Version())
	require.Equal(t, rs.Len(), rm.Len())

	t.Run("matches direct computation", func(t *testing.T) {
		for _, tok := range []ring.Token{ring.MinToken, -1000, -500, 0, 500, 2500, 3000, 3500, ring.MaxToken} {
			direct, err := s.CalculateNaturalEndpoints(ctx, tok, rs)
			require.NoError(t, err)

			require.True(t, rm.ReplicasFor(tok).Equal(direct), tok)

			// the synchronous fast path serves the same sets
			require.True(t, s.GetNaturalEndpoints(tok, rm).Equal(direct), tok)
		}
	})

	t.Run("segment sharing", func(t *testing.T) {
		require.Equal(t, rm.ReplicasFor(500), rm.ReplicasFor(1000))
		require.Equal(t, rm.ReplicasFor(5000), rm.ReplicasFor(-2000))
	})

	t.Run("empty view", func(t *testing.T) {
		var nilMap *ReplicationMap

		require.Zero(t, nilMap.Len())
		require.Zero(t, nilMap.Version())
		require.Zero(t, nilMap.ReplicasFor(0).Len())
	})

	t.Run("no ring state", func(t *testing.T) {
		_, err := BuildReplicationMap(ctx, s, nil)
		require.ErrorIs(t, err, ErrRingStateUnavailable)
	})

	t.Run("strategy failure", func(t *testing.T) {
		_, err := BuildReplicationMap(ctx, NewSimple(NewConfig(nil)), rs)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("progress callback", func(t *testing.T) {
		var done int

		_, err := BuildReplicationMap(ctx, s, rs, WithBuildProgress(func() { done++ }))
		require.NoError(t, err)
		require.Equal(t, rs.Len(), done)
	})

	t.Run("concurrent worker pool", func(t *testing.T) {
		pool, err := util.NewWorkerPool(4)
		require.NoError(t, err)

		defer pool.Release()

		concurrent, err := BuildReplicationMap(ctx, s, rs, WithWorkerPool(pool))
		require.NoError(t, err)

		for _, tok := range rs.Tokens() {
			require.True(t, concurrent.ReplicasFor(tok).Equal(rm.ReplicasFor(tok)))
		}
	})

	t.Run("closed worker pool", func(t *testing.T) {
		pool, err := util.NewWorkerPool(1)
		require.NoError(t, err)

		pool.Release()

		_, err = BuildReplicationMap(ctx, s, rs, WithWorkerPool(pool))
		require.ErrorIs(t, err, util.ErrPoolClosed)
	})
}
