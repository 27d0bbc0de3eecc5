package locator

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/molyee/scylladb/pkg/network"
)

// Registered names of the built-in strategies.
//
// Fully qualified forms exist for compatibility with legacy schema
// dumps; short aliases resolve to behaviorally identical instances.
const (
	LocalStrategyName      = "org.apache.cassandra.locator.LocalStrategy"
	LocalStrategyShortName = "LocalStrategy"

	SimpleStrategyName      = "org.apache.cassandra.locator.SimpleStrategy"
	SimpleStrategyShortName = "SimpleStrategy"

	EverywhereStrategyName      = "org.apache.cassandra.locator.EverywhereStrategy"
	EverywhereStrategyShortName = "EverywhereStrategy"
)

// Factory constructs a strategy instance from the given configuration.
type Factory func(Config) (Strategy, error)

// Registry maps replica placement strategy names to their factories,
// letting schema records select a strategy by string at runtime.
//
// Registry is populated explicitly during application startup and
// passed by reference to consumers.
//
// For correct operation, Registry must be created via NewRegistry.
//
// Registry is safe for concurrent use.
type Registry struct {
	mtx sync.RWMutex

	mFactories map[string]Factory
}

// NewRegistry creates, initializes and returns empty Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		mFactories: make(map[string]Factory),
	}
}

// Register associates the factory with every given name. All names
// resolve to the same factory and therefore to behaviorally identical
// instances.
//
// Returns an error if no name is given, a name is empty or already
// taken, or the factory is nil.
func (r *Registry) Register(f Factory, names ...string) error {
	if f == nil {
		return errors.New("nil strategy factory")
	}

	if len(names) == 0 {
		return errors.New("missing strategy names")
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, name := range names {
		if name == "" {
			return errors.New("empty strategy name")
		}

		if _, ok := r.mFactories[name]; ok {
			return fmt.Errorf("strategy name %q is already registered", name)
		}
	}

	for _, name := range names {
		r.mFactories[name] = f
	}

	return nil
}

// Create constructs a strategy instance registered under the given
// name with the given configuration.
//
// Returns *ConfigurationError if the name is not registered: selecting
// a nonexistent strategy is a schema configuration fault.
func (r *Registry) Create(name string, cfg Config) (Strategy, error) {
	r.mtx.RLock()
	f, ok := r.mFactories[name]
	r.mtx.RUnlock()

	if !ok {
		return nil, NewConfigurationError(name, "", errors.New("unknown replica placement strategy"))
	}

	return f(cfg)
}

// Registered checks if the name resolves to a registered strategy.
func (r *Registry) Registered(name string) bool {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	_, ok := r.mFactories[name]

	return ok
}

// Names returns the sorted list of registered strategy names.
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := make([]string, 0, len(r.mFactories))
	for name := range r.mFactories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// NewDefaultRegistry returns a Registry with all built-in strategies
// registered under both their fully qualified and short names.
//
// Local address source must not be nil.
func NewDefaultRegistry(localSrc network.LocalAddressSource) *Registry {
	r := NewRegistry()

	for _, item := range []struct {
		factory Factory
		names   []string
	}{
		{
			factory: func(cfg Config) (Strategy, error) { return NewLocal(cfg, localSrc), nil },
			names:   []string{LocalStrategyName, LocalStrategyShortName},
		},
		{
			factory: func(cfg Config) (Strategy, error) { return NewSimple(cfg), nil },
			names:   []string{SimpleStrategyName, SimpleStrategyShortName},
		},
		{
			factory: func(cfg Config) (Strategy, error) { return NewEverywhere(cfg), nil },
			names:   []string{EverywhereStrategyName, EverywhereStrategyShortName},
		},
	} {
		err := r.Register(item.factory, item.names...)
		if err != nil {
			// built-in names are distinct, failure here is a programmer mistake
			panic(err)
		}
	}

	return r
}
