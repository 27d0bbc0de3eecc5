package ring

import (
	"testing"

	"github.com/molyee/scylladb/pkg/network"
	"github.com/stretchr/testify/require"
)

func testAddress(t *testing.T, s string) network.Address {
	addr, err := network.AddressFromString(s)
	require.NoError(t, err)

	return addr
}

func testEntries(t *testing.T, tokens []Token, endpoints []string) []Entry {
	require.Equal(t, len(tokens), len(endpoints))

	ee := make([]Entry, 0, len(tokens))

	for i := range tokens {
		ee = append(ee, Entry{
			Token:    tokens[i],
			Endpoint: testAddress(t, endpoints[i]),
		})
	}

	return ee
}

func TestNewState(t *testing.T) {
	t.Run("sorts entries by token", func(t *testing.T) {
		s, err := NewState(1, testEntries(t,
			[]Token{300, -100, 200},
			[]string{"10.0.0.3:9042", "10.0.0.1:9042", "10.0.0.2:9042"},
		))
		require.NoError(t, err)

		require.Equal(t, []Token{-100, 200, 300}, s.Tokens())
		require.True(t, s.Owner(0).Equal(testAddress(t, "10.0.0.1:9042")))
		require.True(t, s.Owner(2).Equal(testAddress(t, "10.0.0.3:9042")))
	})

	t.Run("duplicate token", func(t *testing.T) {
		_, err := NewState(1, testEntries(t,
			[]Token{100, 100},
			[]string{"10.0.0.1:9042", "10.0.0.2:9042"},
		))
		require.Error(t, err)
	})

	t.Run("distinct endpoints", func(t *testing.T) {
		s, err := NewState(1, testEntries(t,
			[]Token{-500, 100, 700},
			[]string{"10.0.0.2:9042", "10.0.0.1:9042", "10.0.0.2:9042"},
		))
		require.NoError(t, err)

		require.Equal(t, 3, s.Len())
		require.Equal(t, 2, s.EndpointCount())

		ee := s.Endpoints()
		require.Len(t, ee, 2)
		require.True(t, ee[0].Equal(testAddress(t, "10.0.0.2:9042")))
		require.True(t, ee[1].Equal(testAddress(t, "10.0.0.1:9042")))
	})

	t.Run("empty", func(t *testing.T) {
		s, err := NewState(1, nil)
		require.NoError(t, err)

		require.True(t, s.Empty())
		require.Zero(t, s.Len())
		require.Zero(t, s.EndpointCount())
	})
}

func TestState_PrimaryIndex(t *testing.T) {
	s, err := NewState(1, testEntries(t,
		[]Token{-1000, 0, 1000},
		[]string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042"},
	))
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		tok  Token
		exp  int
	}{
		{name: "exact hit", tok: 0, exp: 1},
		{name: "between tokens", tok: 1, exp: 2},
		{name: "below lowest", tok: -5000, exp: 0},
		{name: "lower ring bound", tok: MinToken, exp: 0},
		{name: "wrap past highest", tok: 1001, exp: 0},
		{name: "upper ring bound", tok: MaxToken, exp: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.exp, s.PrimaryIndex(tc.tok))
		})
	}

	t.Run("empty ring", func(t *testing.T) {
		s, err := NewState(1, nil)
		require.NoError(t, err)

		require.Equal(t, -1, s.PrimaryIndex(0))
	})
}

func TestState_Tokens(t *testing.T) {
	s, err := NewState(1, testEntries(t,
		[]Token{100, 200},
		[]string{"10.0.0.1:9042", "10.0.0.2:9042"},
	))
	require.NoError(t, err)

	tt := s.Tokens()
	tt[0] = 0

	require.Equal(t, Token(100), s.Token(0))
}
