package locator

import (
	"testing"

	"github.com/molyee/scylladb/pkg/network"
	"github.com/stretchr/testify/require"
)

func TestEndpointSet(t *testing.T) {
	e1 := testAddr(t, "10.0.0.1:9042")
	e2 := testAddr(t, "10.0.0.2:9042")
	e3 := testAddr(t, "10.0.0.3:9042")

	t.Run("uniqueness and order", func(t *testing.T) {
		s := NewEndpointSet(e2, e1, e2, e1)

		require.Equal(t, 2, s.Len())
		require.Equal(t, []network.Address{e2, e1}, s.Endpoints())

		require.False(t, s.Add(e1))
		require.True(t, s.Add(e3))
		require.Equal(t, 3, s.Len())
	})

	t.Run("contains", func(t *testing.T) {
		s := NewEndpointSet(e1)

		require.True(t, s.Contains(e1))
		require.False(t, s.Contains(e2))
	})

	t.Run("equal ignores order", func(t *testing.T) {
		require.True(t, NewEndpointSet(e1, e2).Equal(NewEndpointSet(e2, e1)))
		require.False(t, NewEndpointSet(e1, e2).Equal(NewEndpointSet(e1, e3)))
		require.False(t, NewEndpointSet(e1).Equal(NewEndpointSet(e1, e2)))
	})

	t.Run("nil set", func(t *testing.T) {
		var s *EndpointSet

		require.Zero(t, s.Len())
		require.False(t, s.Contains(e1))
		require.Nil(t, s.Endpoints())
		require.True(t, s.Equal(NewEndpointSet()))
		require.Equal(t, "[]", s.String())

		s.Iterate(func(network.Address) bool {
			t.Fatal("unexpected iteration over nil set")
			return true
		})
	})

	t.Run("iterate stops on demand", func(t *testing.T) {
		s := NewEndpointSet(e1, e2, e3)

		var visited int
		s.Iterate(func(network.Address) bool {
			visited++
			return visited == 2
		})

		require.Equal(t, 2, visited)
	})
}

func TestConfig(t *testing.T) {
	t.Run("copies the source mapping", func(t *testing.T) {
		m := map[string]string{OptReplicationFactor: "3"}
		cfg := NewConfig(m)

		m[OptReplicationFactor] = "5"

		v, ok := cfg.Get(OptReplicationFactor)
		require.True(t, ok)
		require.Equal(t, "3", v)
	})

	t.Run("names are sorted", func(t *testing.T) {
		cfg := NewConfig(map[string]string{"b": "2", "a": "1", "c": "3"})

		require.Equal(t, []string{"a", "b", "c"}, cfg.Names())
		require.Equal(t, 3, cfg.Len())
	})

	t.Run("fingerprint is order independent", func(t *testing.T) {
		c1 := NewConfig(map[string]string{"a": "1", "b": "2"})
		c2 := NewConfig(map[string]string{"b": "2", "a": "1"})

		require.Equal(t, c1.fingerprint(), c2.fingerprint())
		require.NotEqual(t, c1.fingerprint(), NewConfig(map[string]string{"a": "1", "b": "3"}).fingerprint())
	})

	t.Run("zero value", func(t *testing.T) {
		var cfg Config

		require.Zero(t, cfg.Len())
		require.Empty(t, cfg.Names())
		require.Empty(t, cfg.Map())

		_, ok := cfg.Get(OptReplicationFactor)
		require.False(t, ok)
	})
}
