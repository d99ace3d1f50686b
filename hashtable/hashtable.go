// Package hashtable provides a generic, fixed-size hash table with separate
// chaining and caller-supplied hash and equality functions.
//
// The bucket count is chosen at construction and never changes; each bucket
// holds a singly linked chain of entries. Insert prepends to the chain, so the
// most recent insertion of a key shadows earlier ones on Lookup.
//
// All methods are safe for concurrent use: lookups share a read lock,
// inserts take the write lock.
//
// Errors:
//
//	ErrInvalidSize - bucket count is not positive.
//	ErrNilFunc     - hash or equality function is nil.
package hashtable

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for table construction.
var (
	// ErrInvalidSize indicates a non-positive bucket count.
	ErrInvalidSize = errors.New("hashtable: size must be > 0")

	// ErrNilFunc indicates a missing hash or equality function.
	ErrNilFunc = errors.New("hashtable: nil hash or equal function")
)

// HashFunc maps a key to an unsigned hash; the bucket is hash % size.
type HashFunc[K any] func(key K) uint32

// EqualFunc reports whether two keys are the same.
type EqualFunc[K any] func(a, b K) bool

// bucket is one link of a chain.
type bucket[K, V any] struct {
	key  K
	data V
	next *bucket[K, V]
}

// Table is a chained hash table from K to V.
type Table[K, V any] struct {
	mu      sync.RWMutex
	hash    HashFunc[K]
	equal   EqualFunc[K]
	buckets []*bucket[K, V]
	count   int
}

// New creates a table with size buckets.
//
// Errors: ErrInvalidSize for size <= 0; ErrNilFunc when hash or equal is nil.
func New[K, V any](size int, hash HashFunc[K], equal EqualFunc[K]) (*Table[K, V], error) {
	if size <= 0 {
		return nil, fmt.Errorf("hashtable: New(%d): %w", size, ErrInvalidSize)
	}
	if hash == nil || equal == nil {
		return nil, fmt.Errorf("hashtable: New(%d): %w", size, ErrNilFunc)
	}

	return &Table[K, V]{
		hash:    hash,
		equal:   equal,
		buckets: make([]*bucket[K, V], size),
	}, nil
}

// index returns the bucket index of key.
func (t *Table[K, V]) index(key K) int {
	return int(t.hash(key) % uint32(len(t.buckets)))
}

// Insert stores data under key at the head of the key's chain.
// Duplicate keys are kept; the newest one wins on Lookup.
// Complexity: O(1).
func (t *Table[K, V]) Insert(key K, data V) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.index(key)
	t.buckets[i] = &bucket[K, V]{key: key, data: data, next: t.buckets[i]}
	t.count++
}

// Lookup returns the data stored under key and whether it was found.
// Complexity: O(chain length).
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for b := t.buckets[t.index(key)]; b != nil; b = b.next {
		if t.equal(key, b.key) {
			return b.data, true
		}
	}
	var zero V

	return zero, false
}

// Len returns the number of inserted entries, duplicates included.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.count
}

// Size returns the fixed bucket count.
func (t *Table[K, V]) Size() int { return len(t.buckets) }
