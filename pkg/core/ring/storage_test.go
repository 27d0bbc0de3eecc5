package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testStateVersion(t *testing.T, version uint64) *State {
	s, err := NewState(version, testEntries(t,
		[]Token{Token(version)},
		[]string{"10.0.0.1:9042"},
	))
	require.NoError(t, err)

	return s
}

func TestStorage(t *testing.T) {
	s := NewStorage()

	_, err := s.Version()
	require.ErrorIs(t, err, ErrNotFound)

	_, err = GetLatestRingState(s)
	require.ErrorIs(t, err, ErrNotFound)

	st1 := testStateVersion(t, 1)
	st2 := testStateVersion(t, 2)

	require.NoError(t, s.Add(st1))
	require.NoError(t, s.Add(st2))

	t.Run("version", func(t *testing.T) {
		v, err := s.Version()
		require.NoError(t, err)
		require.EqualValues(t, 2, v)
	})

	t.Run("latest and previous", func(t *testing.T) {
		latest, err := GetLatestRingState(s)
		require.NoError(t, err)
		require.Equal(t, st2, latest)

		prev, err := GetPreviousRingState(s)
		require.NoError(t, err)
		require.Equal(t, st1, prev)

		_, err = s.RingState(2)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("by version", func(t *testing.T) {
		st, err := s.RingStateByVersion(1)
		require.NoError(t, err)
		require.Equal(t, st1, st)

		_, err = s.RingStateByVersion(10)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("stale version", func(t *testing.T) {
		require.Error(t, s.Add(testStateVersion(t, 2)))
		require.Error(t, s.Add(nil))
	})
}
