package chainhash

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

const (
	// DefaultCapacity is the number of buckets a table starts with.
	DefaultCapacity = 11

	// LoadFactor is the size/capacity ratio at which the table grows.
	LoadFactor = 0.75

	growthFactor = 2
)

// ErrInvalidArgument is returned by Put when the key is nil.
var ErrInvalidArgument = errors.New("chainhash: invalid argument")

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Table is a hash table using separate chaining. Each bucket is a slice of
// entries kept in insertion order.
//
// A Table is not safe for concurrent use.
type Table[K comparable, V any] struct {
	hash     HashFunc[K]
	buckets  [][]entry[K, V]
	size     int
	nillable bool
	cfg      Config
}

// New creates an empty table that hashes keys with hash
func New[K comparable, V any](hash HashFunc[K], opts ...Option) *Table[K, V] {
	if hash == nil {
		panic("chainhash: nil hash function")
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.InitialCapacity < 1 {
		panic(fmt.Sprintf("chainhash: initial capacity must be at least 1, got %d", cfg.InitialCapacity))
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Table[K, V]{
		hash:     hash,
		buckets:  make([][]entry[K, V], cfg.InitialCapacity),
		nillable: canBeNil(reflect.TypeOf((*K)(nil)).Elem().Kind()),
		cfg:      cfg,
	}
}

// Put adds or updates a key-value pair in the table
func (t *Table[K, V]) Put(key K, value V) error {
	if t.nillable && isNil(key) {
		return fmt.Errorf("%w: key must not be nil", ErrInvalidArgument)
	}
	t.insert(key, value)
	return nil
}

// insert is the shared path of Put and resize. It may grow the table.
func (t *Table[K, V]) insert(key K, value V) {
	idx := t.index(key)
	bucket := t.buckets[idx]

	if i := t.lookup(bucket, key); i >= 0 {
		bucket[i].value = value
		return
	}

	t.buckets[idx] = append(bucket, entry[K, V]{key: key, value: value})
	t.size++

	if float64(t.size)/float64(len(t.buckets)) >= LoadFactor {
		t.resize()
	}
}

// Get retrieves the value stored under key
func (t *Table[K, V]) Get(key K) (V, bool) {
	bucket := t.buckets[t.index(key)]
	if i := t.lookup(bucket, key); i >= 0 {
		return bucket[i].value, true
	}
	var zero V
	return zero, false
}

// Remove deletes key and returns the value it held. The table never shrinks.
func (t *Table[K, V]) Remove(key K) (V, bool) {
	var zero V

	idx := t.index(key)
	bucket := t.buckets[idx]
	i := t.lookup(bucket, key)
	if i < 0 {
		return zero, false
	}

	value := bucket[i].value
	last := len(bucket) - 1
	t.buckets[idx] = slices.Delete(bucket, i, i+1)
	// clear the vacated tail slot so the removed pair can be collected
	bucket[last] = entry[K, V]{}
	t.size--
	return value, true
}

// ContainsKey reports whether key is present, independent of its value.
func (t *Table[K, V]) ContainsKey(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Size returns the number of stored entries.
func (t *Table[K, V]) Size() int {
	return t.size
}

// Cap returns the current number of buckets.
func (t *Table[K, V]) Cap() int {
	return len(t.buckets)
}

// LoadFactor returns Size()/Cap().
func (t *Table[K, V]) LoadFactor() float64 {
	return float64(t.size) / float64(len(t.buckets))
}

// Clear removes every entry. Capacity is unchanged.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.size = 0
}

func (t *Table[K, V]) index(key K) int {
	h := t.hash(key) & math.MaxInt64
	return int(h % uint64(len(t.buckets)))
}

func (t *Table[K, V]) lookup(bucket []entry[K, V], key K) int {
	return slices.IndexFunc(bucket, func(e entry[K, V]) bool {
		return e.key == key
	})
}

// resize doubles the bucket count and reinserts every entry. size is reset
// first and rebuilt by insert; the load after doubling is at most 0.5, so
// insert never grows the table again from inside this loop.
func (t *Table[K, V]) resize() {
	old := t.buckets
	entries := t.size
	newCap := len(old) * growthFactor

	log := t.cfg.Logger.WithFields(logrus.Fields{
		"from": len(old),
		"to":   newCap,
		"size": entries,
	})
	log.Debug("Starting resize")

	t.buckets = make([][]entry[K, V], newCap)
	t.size = 0

	for _, bucket := range old {
		for _, e := range bucket {
			t.insert(e.key, e.value)
		}
	}

	t.cfg.reportResize(newCap, t.size, entries)
	log.Debug("Resize complete")
}

func canBeNil(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

func isNil(key any) bool {
	if key == nil {
		return true
	}
	v := reflect.ValueOf(key)
	return canBeNil(v.Kind()) && v.IsNil()
}
