package locator

import (
	"context"
	"testing"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/stretchr/testify/require"
)

func TestEverywhere(t *testing.T) {
	members := []string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042"}
	rs := testRingState(t, 1, members...)

	s := NewEverywhere(NewConfig(nil))

	require.Equal(t, KindEverywhere, s.Kind())

	t.Run("all members regardless of token", func(t *testing.T) {
		for _, tok := range []ring.Token{ring.MinToken, -1, 0, 777, ring.MaxToken} {
			res, err := s.CalculateNaturalEndpoints(context.Background(), tok, rs)
			require.NoError(t, err)

			require.Equal(t, len(members), res.Len())
			for _, m := range members {
				require.True(t, res.Contains(testAddr(t, m)), m)
			}
		}
	})

	t.Run("replication factor tracks cluster size", func(t *testing.T) {
		require.Equal(t, len(members), s.ReplicationFactor(rs))
		require.Zero(t, s.ReplicationFactor(testRingState(t, 1)))
		require.Zero(t, s.ReplicationFactor(nil))
	})

	t.Run("no ring state", func(t *testing.T) {
		_, err := s.CalculateNaturalEndpoints(context.Background(), 0, nil)
		require.ErrorIs(t, err, ErrRingStateUnavailable)
	})

	t.Run("unrestricted options", func(t *testing.T) {
		require.Nil(t, s.RecognizedOptions(nil))
		require.NoError(t, NewEverywhere(NewConfig(map[string]string{"anything": "goes"})).ValidateOptions())
	})
}
