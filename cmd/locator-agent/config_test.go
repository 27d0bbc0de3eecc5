package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/molyee/scylladb/cmd/internal/configvalidator"
	"github.com/molyee/scylladb/pkg/agent/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaultConfig(t *testing.T) {
	v := viper.New()

	defaultConfiguration(v)

	var cfg config.Config
	require.NoError(t, v.Unmarshal(&cfg))
	require.NoError(t, configvalidator.CheckForUnknownFields(v.AllSettings(), cfg))
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := newConfig("")
		require.NoError(t, err)

		require.Equal(t, "info", cfg.Logger.Level)
		require.Equal(t, 15*time.Second, cfg.Ring.PollInterval)
		require.Equal(t, 10, cfg.Placement.Workers)
		require.Equal(t, "schema", cfg.Notifications.DefaultTopic)
		require.False(t, cfg.IsSet("logger.timestamp"))
	})

	t.Run("file overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
  timestamp: true
ring:
  snapshot: /var/lib/locator/ring.snapshot
  poll_interval: 5s
notifications:
  enabled: true
  endpoint: nats://localhost:4222
`), 0o600))

		cfg, err := newConfig(path)
		require.NoError(t, err)

		require.Equal(t, "debug", cfg.Logger.Level)
		require.Equal(t, "/var/lib/locator/ring.snapshot", cfg.Ring.Snapshot)
		require.Equal(t, 5*time.Second, cfg.Ring.PollInterval)
		require.True(t, cfg.Notifications.Enabled)
		require.Equal(t, "nats://localhost:4222", cfg.Notifications.Endpoint)

		// defaults merge with the file
		require.Equal(t, "schema", cfg.Notifications.DefaultTopic)
		require.Equal(t, ".locator-schema", cfg.Schema.Path)

		require.True(t, cfg.IsSet("logger.timestamp"))
		require.False(t, cfg.IsSet("schema.path"))
	})

	t.Run("unknown field", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
ring:
  snapshot: /tmp/ring.snapshot
  unknown_option: 42
`), 0o600))

		_, err := newConfig(path)
		require.ErrorIs(t, err, configvalidator.ErrUnknownField)
	})
}
