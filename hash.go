package chainhash

import (
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// HashFunc computes the hash of a key. It must be deterministic, and keys
// that compare equal with == must hash equally.
type HashFunc[K any] func(key K) uint64

// Hashable is implemented by key types that carry their own hash.
type Hashable interface {
	Hash() uint64
}

// Signed hashes an integer to itself with the sign bit cleared.
func Signed[K constraints.Signed](key K) uint64 {
	return uint64(key) & math.MaxInt64
}

// Unsigned hashes an integer to itself.
func Unsigned[K constraints.Unsigned](key K) uint64 {
	return uint64(key)
}

// String hashes a string with xxhash.
func String[K ~string](key K) uint64 {
	return xxhash.Sum64String(string(key))
}

// Stringer hashes the String form of key with xxhash.
func Stringer[K fmt.Stringer](key K) uint64 {
	return xxhash.Sum64String(key.String())
}

// Self delegates to the key's own Hash method.
func Self[K Hashable](key K) uint64 {
	return key.Hash()
}
