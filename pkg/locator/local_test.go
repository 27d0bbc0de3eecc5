package locator

import (
	"context"
	"testing"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/molyee/scylladb/pkg/network"
	"github.com/stretchr/testify/require"
)

func testAddr(t *testing.T, s string) network.Address {
	addr, err := network.AddressFromString(s)
	require.NoError(t, err)

	return addr
}

// testRingState builds ring state where the i-th endpoint owns the
// single token i*1000.
func testRingState(t *testing.T, version uint64, endpoints ...string) *ring.State {
	ee := make([]ring.Entry, 0, len(endpoints))

	for i := range endpoints {
		ee = append(ee, ring.Entry{
			Token:    ring.Token(int64(i) * 1000),
			Endpoint: testAddr(t, endpoints[i]),
		})
	}

	st, err := ring.NewState(version, ee)
	require.NoError(t, err)

	return st
}

func testRingStateWith(t *testing.T, version uint64, tokens []ring.Token, endpoints []string) *ring.State {
	require.Equal(t, len(tokens), len(endpoints))

	ee := make([]ring.Entry, 0, len(tokens))

	for i := range tokens {
		ee = append(ee, ring.Entry{
			Token:    tokens[i],
			Endpoint: testAddr(t, endpoints[i]),
		})
	}

	st, err := ring.NewState(version, ee)
	require.NoError(t, err)

	return st
}

func TestLocal(t *testing.T) {
	local := testAddr(t, "192.168.5.5:9042")
	other := testAddr(t, "10.0.0.1:9042")

	s := NewLocal(NewConfig(nil), network.NewStaticLocalAddress(local))

	require.Equal(t, KindLocal, s.Kind())

	rings := map[string]*ring.State{
		"nil ring":      nil,
		"empty ring":    testRingState(t, 1),
		"5 member ring": testRingState(t, 2, "10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042", "10.0.0.4:9042", "10.0.0.5:9042"),
	}

	tokens := []ring.Token{ring.MinToken, -1, 0, 12345, ring.MaxToken}

	t.Run("calculate natural endpoints", func(t *testing.T) {
		for name, rs := range rings {
			for _, tok := range tokens {
				res, err := s.CalculateNaturalEndpoints(context.Background(), tok, rs)
				require.NoError(t, err, name)

				require.Equal(t, 1, res.Len(), name)
				require.True(t, res.Contains(local), name)
				require.False(t, res.Contains(other), name)
			}
		}
	})

	t.Run("get natural endpoints", func(t *testing.T) {
		rm, err := BuildReplicationMap(context.Background(),
			NewEverywhere(NewConfig(nil)), rings["5 member ring"])
		require.NoError(t, err)

		for _, m := range []*ReplicationMap{nil, rm} {
			for _, tok := range tokens {
				res := s.GetNaturalEndpoints(tok, m)

				require.Equal(t, 1, res.Len())
				require.True(t, res.Contains(local))
			}
		}
	})

	t.Run("replication factor", func(t *testing.T) {
		for name, rs := range rings {
			require.Equal(t, 1, s.ReplicationFactor(rs), name)
		}
	})

	t.Run("recognized options", func(t *testing.T) {
		located := ring.NewTopology()
		located.SetLocation(local, ring.Location{Datacenter: "dc1", Rack: "r1"})

		for _, top := range []*ring.Topology{nil, ring.NewTopology(), located} {
			opts := s.RecognizedOptions(top)

			require.NotNil(t, opts)
			require.Zero(t, opts.Size())
		}
	})

	// no options are recognized, yet none are ever rejected: the laxity
	// is intentional, existing schema records rely on it
	t.Run("validate options", func(t *testing.T) {
		for _, m := range []map[string]string{
			nil,
			{"replication_factor": "3"},
			{"bogus": "value", "another": ""},
		} {
			require.NoError(t, NewLocal(NewConfig(m), network.NewStaticLocalAddress(local)).ValidateOptions())
		}
	})

	t.Run("inert replication factor option", func(t *testing.T) {
		s := NewLocal(
			NewConfig(map[string]string{OptReplicationFactor: "3"}),
			network.NewStaticLocalAddress(local),
		)

		require.NoError(t, s.ValidateOptions())
		require.Equal(t, 1, s.ReplicationFactor(rings["5 member ring"]))

		res, err := s.CalculateNaturalEndpoints(context.Background(), 42, rings["5 member ring"])
		require.NoError(t, err)

		require.Equal(t, 1, res.Len())
		require.True(t, res.Contains(local))

		v, ok := s.Configuration().Get(OptReplicationFactor)
		require.True(t, ok)
		require.Equal(t, "3", v)
	})
}
