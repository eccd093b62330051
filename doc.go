/*
Package chainhash provides a generic in-memory hash table that resolves
collisions with separate chaining.

Table maps unique comparable keys to values. Keys are hashed by a HashFunc
supplied at construction time and compared with ==. Each bucket holds a slice
of entries in insertion order, and the table doubles its bucket count as soon
as an insertion brings the load factor to 0.75.

Basic usage:

	import "github.com/theflywheel/chainhash"

	// Integer keys hash to themselves
	t := chainhash.New[int, string](chainhash.Signed[int])

	// Insert data
	if err := t.Put(42, "answer"); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	v, ok := t.Get(42)
	if ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	old, ok := t.Remove(42)

Features:

  - Separate chaining with one slice per bucket
  - Starts with 11 buckets (configurable with WithInitialCapacity)
  - Doubles capacity synchronously when size/capacity reaches 0.75
  - Never shrinks on removal
  - Ready-made hash functions for integers, strings (xxhash) and Stringers
  - Resize events logged through logrus at debug level, optional go-metrics

Implementation Details:

The bucket of a key is hash(key) masked to a non-negative value, modulo the
current bucket count. A resize allocates a bucket array twice as large, resets
the element count to zero and reinserts every entry through the same path Put
uses, which rebuilds the count. Since the load after doubling is at most 0.5,
reinsertion never triggers another resize.

Put rejects nil keys (nil pointers, interfaces, channels and the like) with an
error wrapping ErrInvalidArgument. Absent keys are reported with a false
boolean, never an error. A Table has no internal locking; callers that share
one between goroutines must serialize access themselves.
*/
package chainhash
