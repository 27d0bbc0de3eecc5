package ring

import (
	"fmt"
	"sort"

	"github.com/molyee/scylladb/pkg/network"
)

// Entry binds a single ring token to the cluster member owning it.
type Entry struct {
	// Token is the ring position claimed by the member.
	Token Token

	// Endpoint is the network address of the owning member.
	Endpoint network.Address
}

// State is an immutable snapshot of ring membership: the ascending list
// of claimed tokens and the endpoints owning them.
//
// State carries a version number which grows with every membership or
// token ownership change. Instances must be treated as read-only and can
// be shared between goroutines freely.
type State struct {
	version uint64

	tokens []Token
	owners []network.Address

	endpoints []network.Address
}

// NewState constructs ring state of the given version from token entries.
//
// Entries may come in any order. Returns an error if two entries claim
// the same token.
func NewState(version uint64, entries []Entry) (*State, error) {
	es := make([]Entry, len(entries))
	copy(es, entries)

	sort.Slice(es, func(i, j int) bool {
		return es[i].Token.Compare(es[j].Token) < 0
	})

	s := &State{
		version: version,
		tokens:  make([]Token, 0, len(es)),
		owners:  make([]network.Address, 0, len(es)),
	}

	mEndpoints := make(map[string]struct{})

	for i := range es {
		if i > 0 && es[i].Token == es[i-1].Token {
			return nil, fmt.Errorf("duplicate ring token %s", es[i].Token)
		}

		s.tokens = append(s.tokens, es[i].Token)
		s.owners = append(s.owners, es[i].Endpoint)

		key := es[i].Endpoint.String()

		if _, ok := mEndpoints[key]; !ok {
			mEndpoints[key] = struct{}{}

			s.endpoints = append(s.endpoints, es[i].Endpoint)
		}
	}

	return s, nil
}

// Version returns the ring state version.
func (s *State) Version() uint64 {
	return s.version
}

// Len returns the number of claimed tokens on the ring.
func (s *State) Len() int {
	return len(s.tokens)
}

// Empty checks if the ring has no claimed tokens.
func (s *State) Empty() bool {
	return len(s.tokens) == 0
}

// Tokens returns the claimed ring tokens in ascending order.
//
// Result is a copy, callers are free to modify it.
func (s *State) Tokens() []Token {
	tt := make([]Token, len(s.tokens))
	copy(tt, s.tokens)

	return tt
}

// PrimaryIndex returns the index of the first claimed token not less
// than t, wrapping past the highest token back to index zero.
//
// Returns -1 on an empty ring.
func (s *State) PrimaryIndex(t Token) int {
	if len(s.tokens) == 0 {
		return -1
	}

	i := sort.Search(len(s.tokens), func(i int) bool {
		return s.tokens[i].Compare(t) >= 0
	})

	if i == len(s.tokens) {
		return 0
	}

	return i
}

// Token returns the i-th claimed token in ascending order.
func (s *State) Token(i int) Token {
	return s.tokens[i]
}

// Owner returns the endpoint owning the i-th claimed token.
func (s *State) Owner(i int) network.Address {
	return s.owners[i]
}

// Endpoints returns the distinct member endpoints in the order of their
// first claimed token.
//
// Result is a copy, callers are free to modify it.
func (s *State) Endpoints() []network.Address {
	ee := make([]network.Address, len(s.endpoints))
	copy(ee, s.endpoints)

	return ee
}

// EndpointCount returns the number of distinct ring members.
func (s *State) EndpointCount() int {
	return len(s.endpoints)
}
