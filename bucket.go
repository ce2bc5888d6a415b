package sortedhash

import (
	"fmt"
	"math"
)

// maxBucketCap bounds the capacity of a single bucket so indexes fit in 32 bits.
var maxBucketCap uint64 = math.MaxUint32

type entry[K, V any] struct {
	key   K
	value V
}

// bucket holds its entries sorted ascending by key. len(entries) is the
// count and cap(entries) the allocated capacity.
type bucket[K, V any] struct {
	entries []entry[K, V]
}

// locate returns the index of key, or the index it would be inserted at.
func (b *bucket[K, V]) locate(cmp func(a, b K) int, key K) uint32 {
	l, u := uint32(0), uint32(len(b.entries))

	for l < u {
		p := l + (u-l)>>1
		c := cmp(key, b.entries[p].key)
		switch {
		case c < 0:
			u = p
		case c > 0:
			l = p + 1
		default:
			return p
		}
	}

	return l
}

func (b *bucket[K, V]) found(cmp func(a, b K) int, key K, i uint32) bool {
	return int(i) < len(b.entries) && cmp(key, b.entries[i].key) == 0
}

func (b *bucket[K, V]) search(cmp func(a, b K) int, key K) (value V, ok bool) {
	i := b.locate(cmp, key)
	if !b.found(cmp, key, i) {
		return value, false
	}
	return b.entries[i].value, true
}

// insert stores value under key, overwriting the value of an equal key.
// It reports whether an existing entry was overwritten.
func (b *bucket[K, V]) insert(cmp func(a, b K) int, key K, value V, growth uint32) (bool, error) {
	i := b.locate(cmp, key)
	if b.found(cmp, key, i) {
		b.entries[i].value = value
		return true, nil
	}

	n := len(b.entries)
	if n == cap(b.entries) {
		newCap := uint64(cap(b.entries)) + uint64(growth)
		if newCap > maxBucketCap {
			return false, fmt.Errorf("%w: bucket capacity %d exceeds %d", ErrOutOfMemory, newCap, maxBucketCap)
		}
		grown, err := allocEntries[K, V](n, int(newCap))
		if err != nil {
			return false, err
		}
		copy(grown, b.entries)
		b.entries = grown
	}

	b.entries = b.entries[:n+1]
	copy(b.entries[i+1:], b.entries[i:n])
	b.entries[i] = entry[K, V]{key: key, value: value}
	return false, nil
}

func (b *bucket[K, V]) remove(cmp func(a, b K) int, key K) (value V, ok bool) {
	i := b.locate(cmp, key)
	if !b.found(cmp, key, i) {
		return value, false
	}

	value = b.entries[i].value
	n := len(b.entries)
	copy(b.entries[i:], b.entries[i+1:])
	// clear the vacated slot so the old key and value can be collected
	b.entries[n-1] = entry[K, V]{}
	b.entries = b.entries[:n-1]
	return value, true
}

// allocEntries converts makeslice panics, such as a capacity too large for
// the address space, into ErrOutOfMemory. Running out of heap still aborts
// the process.
func allocEntries[K, V any](n, c int) (s []entry[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()
	return make([]entry[K, V], n, c), nil
}

func allocBuckets[K, V any](n uint32) (s []bucket[K, V], err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()
	return make([]bucket[K, V], n), nil
}
