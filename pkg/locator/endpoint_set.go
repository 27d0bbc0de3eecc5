package locator

import (
	"strings"

	"github.com/molyee/scylladb/pkg/network"
)

// EndpointSet is a mutually unique collection of cluster member
// endpoints with deterministic, insertion-ordered iteration. Callers
// must treat placement results as sets even though the representation
// is ordered.
//
// For correct operation, EndpointSet must be created via
// NewEndpointSet.
type EndpointSet struct {
	mIndex map[string]struct{}
	items  []network.Address
}

// NewEndpointSet creates a set from the given endpoints, dropping
// duplicates and keeping the first-seen order.
func NewEndpointSet(ee ...network.Address) *EndpointSet {
	s := &EndpointSet{
		mIndex: make(map[string]struct{}, len(ee)),
		items:  make([]network.Address, 0, len(ee)),
	}

	for i := range ee {
		s.Add(ee[i])
	}

	return s
}

// Add inserts the endpoint into the set. Returns true if the set did
// not contain it before.
func (s *EndpointSet) Add(e network.Address) bool {
	key := e.String()

	if _, ok := s.mIndex[key]; ok {
		return false
	}

	s.mIndex[key] = struct{}{}
	s.items = append(s.items, e)

	return true
}

// Contains checks if the endpoint is in the set.
func (s *EndpointSet) Contains(e network.Address) bool {
	if s == nil {
		return false
	}

	_, ok := s.mIndex[e.String()]

	return ok
}

// Len returns the number of endpoints in the set.
func (s *EndpointSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.items)
}

// Endpoints returns the endpoints in insertion order.
//
// Result is a copy, callers are free to modify it.
func (s *EndpointSet) Endpoints() []network.Address {
	if s == nil {
		return nil
	}

	ee := make([]network.Address, len(s.items))
	copy(ee, s.items)

	return ee
}

// Iterate passes the endpoints to f in insertion order until f returns
// true or the set is exhausted.
func (s *EndpointSet) Iterate(f func(network.Address) bool) {
	if s == nil {
		return
	}

	for i := range s.items {
		if f(s.items[i]) {
			return
		}
	}
}

// Equal checks if two sets contain the same endpoints, in any order.
func (s *EndpointSet) Equal(other *EndpointSet) bool {
	if s.Len() != other.Len() {
		return false
	}

	if s == nil {
		return true
	}

	for i := range s.items {
		if !other.Contains(s.items[i]) {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer.
func (s *EndpointSet) String() string {
	if s == nil {
		return "[]"
	}

	ss := make([]string, 0, len(s.items))
	for i := range s.items {
		ss = append(ss, s.items[i].String())
	}

	return "[" + strings.Join(ss, " ") + "]"
}
