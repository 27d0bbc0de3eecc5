package locator

import (
	"errors"
	"fmt"
)

// ErrRingStateUnavailable is the error returned by ring-dependent
// strategy operations called without an available ring state.
var ErrRingStateUnavailable = errors.New("ring state unavailable")

// ConfigurationError describes strategy configuration which cannot be
// honored by the strategy it was supplied to.
//
// Validation failures surface at keyspace creation or alteration time,
// never at per-request time.
type ConfigurationError struct {
	strategy string
	opt      string
	err      error
}

// NewConfigurationError constructs ConfigurationError of the named
// strategy. Option name may be empty if the fault is not bound to a
// particular option.
func NewConfigurationError(strategy, opt string, err error) *ConfigurationError {
	return &ConfigurationError{
		strategy: strategy,
		opt:      opt,
		err:      err,
	}
}

// Strategy returns the name of the strategy which rejected the
// configuration.
func (e *ConfigurationError) Strategy() string {
	return e.strategy
}

// Option returns the name of the offending option. May be empty.
func (e *ConfigurationError) Option() string {
	return e.opt
}

// Error implements error.
func (e *ConfigurationError) Error() string {
	if e.opt != "" {
		return fmt.Sprintf("invalid configuration of %s strategy: option %q: %v", e.strategy, e.opt, e.err)
	}

	return fmt.Sprintf("invalid configuration of %s strategy: %v", e.strategy, e.err)
}

// Unwrap returns the underlying reason.
func (e *ConfigurationError) Unwrap() error {
	return e.err
}
