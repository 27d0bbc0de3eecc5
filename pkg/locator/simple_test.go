package locator

import (
	"context"
	"testing"

	"github.com/molyee/scylladb/pkg/core/ring"
	"github.com/stretchr/testify/require"
)

func simpleCfg(rf string) Config {
	return NewConfig(map[string]string{OptReplicationFactor: rf})
}

func TestSimple_ValidateOptions(t *testing.T) {
	for _, tc := range []struct {
		name string
		m    map[string]string
		opt  string // offending option of the expected failure, empty for success
	}{
		{name: "valid", m: map[string]string{OptReplicationFactor: "3"}},
		{name: "zero factor", m: map[string]string{OptReplicationFactor: "0"}},
		{name: "missing factor", m: nil, opt: OptReplicationFactor},
		{name: "not a number", m: map[string]string{OptReplicationFactor: "abc"}, opt: OptReplicationFactor},
		{name: "negative", m: map[string]string{OptReplicationFactor: "-1"}, opt: OptReplicationFactor},
		{name: "unexpected option", m: map[string]string{OptReplicationFactor: "3", "extra": "x"}, opt: "extra"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := NewSimple(NewConfig(tc.m)).ValidateOptions()

			if tc.opt == "" {
				require.NoError(t, err)
				return
			}

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			require.Equal(t, tc.opt, cfgErr.Option())
			require.Equal(t, SimpleStrategyShortName, cfgErr.Strategy())
		})
	}
}

func TestSimple_CalculateNaturalEndpoints(t *testing.T) {
	// four distinct members, one owning two tokens
	rs := testRingStateWith(t, 1,
		[]ring.Token{-1000, 0, 1000, 2000, 3000},
		[]string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042", "10.0.0.1:9042", "10.0.0.4:9042"},
	)

	ctx := context.Background()

	for _, tc := range []struct {
		name string
		rf   string
		tok  ring.Token
		exp  []string
	}{
		{name: "primary at lowest token", rf: "2", tok: -1500, exp: []string{"10.0.0.1:9042", "10.0.0.2:9042"}},
		{name: "between tokens", rf: "2", tok: 500, exp: []string{"10.0.0.3:9042", "10.0.0.1:9042"}},
		{name: "wrap within walk", rf: "2", tok: 2500, exp: []string{"10.0.0.4:9042", "10.0.0.1:9042"}},
		{name: "wrap at lookup", rf: "2", tok: 3500, exp: []string{"10.0.0.1:9042", "10.0.0.2:9042"}},
		{name: "skips duplicate owner", rf: "3", tok: 1500, exp: []string{"10.0.0.1:9042", "10.0.0.4:9042", "10.0.0.2:9042"}},
		{name: "factor above cluster size", rf: "10", tok: 0, exp: []string{"10.0.0.1:9042", "10.0.0.2:9042", "10.0.0.3:9042", "10.0.0.4:9042"}},
		{name: "zero factor", rf: "0", tok: 0, exp: nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NewSimple(simpleCfg(tc.rf)).CalculateNaturalEndpoints(ctx, tc.tok, rs)
			require.NoError(t, err)

			require.Equal(t, len(tc.exp), res.Len())
			for _, e := range tc.exp {
				require.True(t, res.Contains(testAddr(t, e)), e)
			}
		})
	}

	t.Run("empty ring", func(t *testing.T) {
		res, err := NewSimple(simpleCfg("3")).CalculateNaturalEndpoints(ctx, 0, testRingState(t, 1))
		require.NoError(t, err)
		require.Zero(t, res.Len())
	})

	t.Run("no ring state", func(t *testing.T) {
		_, err := NewSimple(simpleCfg("3")).CalculateNaturalEndpoints(ctx, 0, nil)
		require.ErrorIs(t, err, ErrRingStateUnavailable)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := NewSimple(NewConfig(nil)).CalculateNaturalEndpoints(ctx, 0, rs)

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewSimple(simpleCfg("3")).CalculateNaturalEndpoints(ctx, 0, rs)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSimple_ReplicationFactor(t *testing.T) {
	rs := testRingState(t, 1, "10.0.0.1:9042", "10.0.0.2:9042")

	// the configured factor is reported even above cluster size
	require.Equal(t, 5, NewSimple(simpleCfg("5")).ReplicationFactor(rs))
	require.Equal(t, 5, NewSimple(simpleCfg("5")).ReplicationFactor(nil))

	require.Zero(t, NewSimple(NewConfig(nil)).ReplicationFactor(rs))
}

func TestSimple_RecognizedOptions(t *testing.T) {
	opts := NewSimple(simpleCfg("3")).RecognizedOptions(nil)

	require.NotNil(t, opts)
	require.Equal(t, 1, opts.Size())
	require.True(t, opts.Has(OptReplicationFactor))
}

func TestSimple_Kind(t *testing.T) {
	require.Equal(t, KindSimple, NewSimple(simpleCfg("3")).Kind())
}
