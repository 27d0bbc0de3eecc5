package ring

import (
	"github.com/spaolacci/murmur3"
)

// Partitioner maps partition keys to ring tokens.
type Partitioner interface {
	// Name returns the canonical partitioner name recorded in schema
	// and exchanged between cluster members.
	Name() string

	// TokenForKey computes the ring token of the serialized partition key.
	//
	// Must never return MinToken.
	TokenForKey(key []byte) Token
}

// Murmur3PartitionerName is the canonical name of the default partitioner.
const Murmur3PartitionerName = "org.apache.cassandra.dht.Murmur3Partitioner"

// Murmur3Partitioner hashes partition keys with MurmurHash3 over the full
// signed 64-bit token range.
type Murmur3Partitioner struct{}

// Name implements Partitioner.
func (Murmur3Partitioner) Name() string {
	return Murmur3PartitionerName
}

// TokenForKey implements Partitioner.
//
// The token is the first half of the 128-bit hash. MinToken is mapped to
// MaxToken to keep the lower ring bound unowned.
func (Murmur3Partitioner) TokenForKey(key []byte) Token {
	h1, _ := murmur3.Sum128(key)

	t := Token(int64(h1))
	if t == MinToken {
		return MaxToken
	}

	return t
}
