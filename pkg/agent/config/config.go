package config

import (
	"strings"
	"time"
)

// Config configures the locator agent.
type Config struct {
	Logger Logger `mapstructure:"logger"`

	// Token ring snapshot the agent serves placement from.
	//
	// Required.
	Ring Ring `mapstructure:"ring"`

	Schema Schema `mapstructure:"schema"`

	Node Node `mapstructure:"node"`

	Placement Placement `mapstructure:"placement"`

	Notifications Notifications `mapstructure:"notifications"`

	Pprof BasicService `mapstructure:"pprof"`

	Prometheus BasicService `mapstructure:"prometheus"`

	isSet map[string]struct{}
}

// Sampling configures log sampling.
type Sampling struct {
	Enabled bool `mapstructure:"enabled"`
}

// Logger configures logger settings.
type Logger struct {
	Level     string   `mapstructure:"level"`
	Encoding  string   `mapstructure:"encoding"`
	Timestamp bool     `mapstructure:"timestamp"`
	Sampling  Sampling `mapstructure:"sampling"`
}

// Ring configures the token ring snapshot source.
type Ring struct {
	Snapshot     string        `mapstructure:"snapshot"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Schema configures the keyspace schema database.
type Schema struct {
	Path        string        `mapstructure:"path"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

// Node configures the local node settings.
type Node struct {
	Address string `mapstructure:"address"`

	PersistentState struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"persistent_state"`
}

// Placement configures replication map building.
type Placement struct {
	Workers   int `mapstructure:"workers"`
	CacheSize int `mapstructure:"cache_size"`
}

// Notifications configures schema change notifications over NATS.
type Notifications struct {
	Enabled      bool          `mapstructure:"enabled"`
	Endpoint     string        `mapstructure:"endpoint"`
	DefaultTopic string        `mapstructure:"default_topic"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Certificate  string        `mapstructure:"certificate"`
	Key          string        `mapstructure:"key"`
	CA           []string      `mapstructure:"ca"`
}

// BasicService configures settings of basic external service like pprof or prometheus.
type BasicService struct {
	Enabled         bool          `mapstructure:"enabled"`
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// IsSet checks if the key is set in the config.
func (c *Config) IsSet(key string) bool {
	_, ok := c.isSet[key]
	return ok
}

// Set specifies that the key has been set in the config.
func (c *Config) Set(key string) {
	if c.isSet == nil {
		c.isSet = make(map[string]struct{})
	}
	keySplit := strings.Split(key, ".")
	s := keySplit[0]
	for i := 1; i < len(keySplit); i++ {
		c.isSet[s] = struct{}{}
		s += "." + keySplit[i]
	}
	c.isSet[key] = struct{}{}
}

// Unset ensures that the key is unset in the config.
func (c *Config) Unset(key string) {
	for k := range c.isSet {
		if strings.HasPrefix(k, key) {
			delete(c.isSet, k)
		}
	}
}

// UnsetAll unsets all keys from config.
func (c *Config) UnsetAll() {
	c.isSet = nil
}
