package main

import (
	"fmt"
	"strings"

	"github.com/molyee/scylladb/cmd/internal/configvalidator"
	"github.com/molyee/scylladb/misc"
	"github.com/molyee/scylladb/pkg/agent/config"
	"github.com/spf13/viper"
)

func newConfig(path string) (*config.Config, error) {
	var (
		err error
		v   = viper.New()
	)

	v.SetEnvPrefix(misc.Prefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	defaultConfiguration(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yml")

		if err = v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	var cfg config.Config

	if err = v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err = configvalidator.CheckForUnknownFields(v.AllSettings(), cfg); err != nil {
		return nil, err
	}

	for _, key := range v.AllKeys() {
		if v.InConfig(key) {
			cfg.Set(key)
		}
	}

	return &cfg, nil
}

func defaultConfiguration(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.sampling.enabled", false)

	v.SetDefault("ring.snapshot", "")
	v.SetDefault("ring.poll_interval", "15s")

	v.SetDefault("schema.path", ".locator-schema")
	v.SetDefault("schema.open_timeout", "1s")

	v.SetDefault("node.address", "/ip4/127.0.0.1/tcp/9042")
	v.SetDefault("node.persistent_state.path", ".locator-agent-state")

	v.SetDefault("placement.workers", 10)
	v.SetDefault("placement.cache_size", 100)

	v.SetDefault("notifications.enabled", false)
	v.SetDefault("notifications.endpoint", "")
	v.SetDefault("notifications.default_topic", "schema")
	v.SetDefault("notifications.timeout", "5s")

	v.SetDefault("pprof.enabled", false)
	v.SetDefault("pprof.address", "localhost:6060")
	v.SetDefault("pprof.shutdown_timeout", "30s")

	v.SetDefault("prometheus.enabled", false)
	v.SetDefault("prometheus.address", "localhost:9090")
	v.SetDefault("prometheus.shutdown_timeout", "30s")
}
