package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToken_Compare(t *testing.T) {
	require.Equal(t, -1, Token(-5).Compare(5))
	require.Equal(t, 0, Token(5).Compare(5))
	require.Equal(t, 1, Token(5).Compare(-5))

	require.Equal(t, -1, MinToken.Compare(MaxToken))
}

func TestParseToken(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		for _, tok := range []Token{MinToken, -1, 0, 1, MaxToken} {
			got, err := ParseToken(tok.String())
			require.NoError(t, err)
			require.Equal(t, tok, got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, s := range []string{"", "abc", "92233720368547758080"} {
			_, err := ParseToken(s)
			require.Error(t, err)
		}
	})
}

func TestMurmur3Partitioner(t *testing.T) {
	var p Murmur3Partitioner

	require.Equal(t, Murmur3PartitionerName, p.Name())

	t.Run("deterministic", func(t *testing.T) {
		key := []byte("partition-key")
		require.Equal(t, p.TokenForKey(key), p.TokenForKey(key))
	})

	t.Run("spreads keys", func(t *testing.T) {
		require.NotEqual(t, p.TokenForKey([]byte("key-a")), p.TokenForKey([]byte("key-b")))
	})

	t.Run("never lower bound", func(t *testing.T) {
		for _, key := range [][]byte{nil, {}, []byte("x"), []byte("partition-key")} {
			require.NotEqual(t, MinToken, p.TokenForKey(key))
		}
	})
}
