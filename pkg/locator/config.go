package locator

import (
	"sort"
	"strings"
)

// Config represents an immutable replica placement strategy
// configuration: a mapping of option names to option values supplied
// once at strategy construction and never mutated afterwards.
//
// The zero Config is empty and ready to use.
type Config struct {
	m map[string]string
}

// NewConfig constructs a Config from the given option mapping.
//
// The mapping is copied, the caller is free to modify it afterwards.
func NewConfig(m map[string]string) Config {
	if len(m) == 0 {
		return Config{}
	}

	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}

	return Config{m: cp}
}

// Get returns the value of the named option and a flag showing whether
// the option was supplied.
func (c Config) Get(name string) (string, bool) {
	v, ok := c.m[name]
	return v, ok
}

// Len returns the number of supplied options.
func (c Config) Len() int {
	return len(c.m)
}

// Names returns the sorted list of supplied option names.
func (c Config) Names() []string {
	names := make([]string, 0, len(c.m))
	for name := range c.m {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Map returns a copy of the option mapping.
func (c Config) Map() map[string]string {
	cp := make(map[string]string, len(c.m))
	for k, v := range c.m {
		cp[k] = v
	}

	return cp
}

// fingerprint returns a stable textual form of the configuration
// usable as a cache key component.
func (c Config) fingerprint() string {
	names := c.Names()

	var sb strings.Builder

	for i, name := range names {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(c.m[name])
	}

	return sb.String()
}
