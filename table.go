package sortedhash

import (
	"errors"
	"fmt"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("sortedhash")

// maxTableSize is the largest bucket count, the highest power of two that
// fits in a uint32.
const maxTableSize uint32 = 1 << 31

var (
	// ErrOutOfMemory is returned when a bucket would exceed its capacity
	// limit or a slice length is rejected by the runtime. Exhausting the Go
	// heap is fatal and is not reported through it.
	ErrOutOfMemory = errors.New("sortedhash: out of memory")

	// ErrUninitialized is returned by operations on a nil or zero Table.
	ErrUninitialized = errors.New("sortedhash: table not initialized")

	// ErrDestroyed is returned by operations on a destroyed Table.
	ErrDestroyed = errors.New("sortedhash: table destroyed")

	// ErrInvalidConfig is returned by New for unusable configurations.
	ErrInvalidConfig = errors.New("sortedhash: invalid config")
)

type state uint8

const (
	uninitialized state = iota
	live
	destroyed
)

// Table is a hash table with sorted chaining.
//
// The zero value is an uninitialized table: Insert fails with
// ErrUninitialized, Search and Remove report absent keys. A Table is not safe
// for concurrent use.
type Table[K, V any] struct {
	strategy Strategy[K]
	pow2     bool
	config   Config

	buckets []bucket[K, V]
	size    uint32
	entries uint64

	inserts    uint64
	overwrites uint64
	rehashes   uint64

	state state
}

// New creates a table with at least size buckets.
//
// When the strategy requires power of two sizes, size is rounded up to the
// next power of two. A nil strategy is rejected.
func New[K, V any](size uint32, strategy Strategy[K], opts ...Option) (*Table[K, V], error) {
	if strategy == nil {
		return nil, fmt.Errorf("%w: nil strategy", ErrInvalidConfig)
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	t := &Table[K, V]{
		strategy: strategy,
		config:   cfg,
	}
	if p, ok := strategy.(PowerOfTwoSizer); ok {
		t.pow2 = p.PowerOfTwo()
	}

	if err := t.init(t.fit(size)); err != nil {
		return nil, err
	}
	t.state = live
	return t, nil
}

// NewFuncs creates a table from individual strategy functions. keyHash and
// index may be nil to use FNV-1a and MaskIndex.
func NewFuncs[K Key, V any](
	size uint32,
	keySize func(key K) int,
	keyCmp func(a, b K) int,
	keyHash func(key K, length int) uint32,
	index IndexMapper,
	opts ...Option,
) (*Table[K, V], error) {
	return New[K, V](size, Funcs[K]{
		Size:    keySize,
		Compare: keyCmp,
		Hash:    keyHash,
		Index:   index,
	}, opts...)
}

func (t *Table[K, V]) init(size uint32) error {
	buckets, err := allocBuckets[K, V](size)
	if err != nil {
		return err
	}
	t.buckets = buckets
	t.size = size
	t.entries = 0
	return nil
}

// fit clamps a bucket count to [1, maxTableSize] and rounds it up to a power
// of two when the index mapper needs one.
func (t *Table[K, V]) fit(size uint32) uint32 {
	if size > maxTableSize {
		size = maxTableSize
	}
	if t.pow2 {
		return nextPowerOf2(size)
	}
	if size == 0 {
		return 1
	}
	return size
}

func nextPowerOf2(x uint32) uint32 {
	if x == 0 {
		return 1
	}
	x--
	x |= x >> 1
	x |= x >> 2
	x |= x >> 4
	x |= x >> 8
	x |= x >> 16
	return x + 1
}

func (t *Table[K, V]) err() error {
	switch {
	case t == nil || t.state == uninitialized:
		return ErrUninitialized
	case t.state == destroyed:
		return ErrDestroyed
	}
	return nil
}

func (t *Table[K, V]) bucketFor(key K) *bucket[K, V] {
	s := t.strategy
	hash := s.KeyHash(key, s.KeySize(key))
	index := s.IndexMap(hash, t.size)
	if index >= t.size {
		index %= t.size
	}
	return &t.buckets[index]
}

// Insert stores value under key, replacing the value of an existing equal
// key. The table grows first when its load factor has reached MaxAlpha.
func (t *Table[K, V]) Insert(key K, value V) error {
	if err := t.err(); err != nil {
		return err
	}

	if t.entries/uint64(t.size) >= uint64(t.config.MaxAlpha) {
		if err := t.rehash(t.grown()); err != nil {
			return fmt.Errorf("failed to grow table: %w", err)
		}
	}

	overwrote, err := t.bucketFor(key).insert(t.strategy.KeyCompare, key, value, t.config.BucketGrowth)
	if err != nil {
		return err
	}

	t.inserts++
	if overwrote {
		t.overwrites++
	} else {
		t.entries++
	}
	return nil
}

// Search returns the value stored under key.
func (t *Table[K, V]) Search(key K) (value V, ok bool) {
	if t.err() != nil {
		return value, false
	}
	return t.bucketFor(key).search(t.strategy.KeyCompare, key)
}

// Remove deletes key and returns its value. Whether or not key was found,
// the table then shrinks while its load factor is below MinAlpha.
func (t *Table[K, V]) Remove(key K) (value V, ok bool) {
	if t.err() != nil {
		return value, false
	}

	value, ok = t.bucketFor(key).remove(t.strategy.KeyCompare, key)
	if ok {
		t.entries--
	}

	if target := t.shrunk(); target != t.size {
		// a failed shrink leaves a valid table at the old size
		if err := t.rehash(target); err != nil {
			log.Warningf("Shrinking table from %d to %d buckets failed: %v", t.size, target, err)
		}
	}
	return value, ok
}

// Destroy calls keyRelease and valueRelease, when not nil, on every stored
// key and value and then drops all buckets. The table cannot be used
// afterwards.
func (t *Table[K, V]) Destroy(keyRelease func(K), valueRelease func(V)) {
	if t.err() != nil {
		return
	}

	if keyRelease != nil || valueRelease != nil {
		for i := range t.buckets {
			for _, e := range t.buckets[i].entries {
				if keyRelease != nil {
					keyRelease(e.key)
				}
				if valueRelease != nil {
					valueRelease(e.value)
				}
			}
		}
	}

	t.buckets = nil
	t.size = 0
	t.entries = 0
	t.state = destroyed
}

// Len returns the number of distinct keys stored.
func (t *Table[K, V]) Len() uint64 {
	if t.err() != nil {
		return 0
	}
	return t.entries
}

// Size returns the number of buckets.
func (t *Table[K, V]) Size() uint32 {
	if t.err() != nil {
		return 0
	}
	return t.size
}

// Range calls fn for every entry until fn returns false. The order is
// unspecified. fn must not modify the table.
func (t *Table[K, V]) Range(fn func(key K, value V) bool) {
	if t.err() != nil {
		return
	}
	for i := range t.buckets {
		for _, e := range t.buckets[i].entries {
			if !fn(e.key, e.value) {
				return
			}
		}
	}
}

func (t *Table[K, V]) grown() uint32 {
	size := maxTableSize
	if t.size <= maxTableSize/t.config.GrowthFactor {
		size = t.size * t.config.GrowthFactor
	}
	if size < t.config.MinSize {
		size = t.config.MinSize
	}
	return t.fit(size)
}

// shrunk returns the bucket count the table should shrink to, or the current
// size when no shrink is due.
func (t *Table[K, V]) shrunk() uint32 {
	size := t.size
	for t.entries/uint64(size) < uint64(t.config.MinAlpha) {
		next := size / t.config.ShrinkFactor
		if next < t.config.MinSize {
			next = t.config.MinSize
		}
		next = t.fit(next)
		if next >= size {
			break
		}
		size = next
	}
	return size
}

// rehash moves every entry into a fresh array of size buckets. On failure
// the table is left unchanged.
func (t *Table[K, V]) rehash(size uint32) error {
	if size == t.size {
		return nil
	}

	buckets, err := allocBuckets[K, V](size)
	if err != nil {
		return err
	}

	old, oldSize := t.buckets, t.size
	t.buckets, t.size = buckets, size

	for i := range old {
		for _, e := range old[i].entries {
			if _, err := t.bucketFor(e.key).insert(t.strategy.KeyCompare, e.key, e.value, t.config.BucketGrowth); err != nil {
				t.buckets, t.size = old, oldSize
				return err
			}
		}
	}

	t.rehashes++
	log.Debugf("Rehashed %d entries from %d to %d buckets", t.entries, oldSize, size)
	return nil
}
