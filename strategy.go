package sortedhash

import "github.com/theflywheel/sortedhash/hashfn"

// Key is the set of key types supported by the default strategy.
type Key = hashfn.Bytes

// Strategy tells a Table how to order and place its keys.
//
// KeyCompare must be a total order consistent with equality, and keys that
// compare equal must produce the same hash. A key must not change while it is
// stored in a table.
type Strategy[K any] interface {
	// KeySize returns the length of the hashable representation of key.
	KeySize(key K) int
	// KeyCompare returns a negative number, zero or a positive number when a
	// sorts before, equal to or after b.
	KeyCompare(a, b K) int
	// KeyHash hashes the first length bytes of key.
	KeyHash(key K, length int) uint32
	// IndexMap maps hash into [0, size).
	IndexMap(hash, size uint32) uint32
}

// PowerOfTwoSizer is implemented by strategies whose IndexMap only works for
// power of two table sizes.
type PowerOfTwoSizer interface {
	PowerOfTwo() bool
}

// IndexMapper maps a 32-bit hash to a bucket index.
type IndexMapper interface {
	Map(hash, size uint32) uint32
	PowerOfTwo() bool
}

var (
	// MaskIndex keeps the low bits of the hash. Sizes are rounded up to a
	// power of two.
	MaskIndex IndexMapper = maskIndex{}
	// ModIndex takes the hash modulo the table size.
	ModIndex IndexMapper = modIndex{}
	// RangeIndex scales the hash into [0, size) with a multiply and shift.
	RangeIndex IndexMapper = rangeIndex{}
)

type maskIndex struct{}

func (maskIndex) Map(hash, size uint32) uint32 { return hash & (size - 1) }
func (maskIndex) PowerOfTwo() bool             { return true }

type modIndex struct{}

func (modIndex) Map(hash, size uint32) uint32 { return hash % size }
func (modIndex) PowerOfTwo() bool             { return false }

type rangeIndex struct{}

func (rangeIndex) Map(hash, size uint32) uint32 {
	return uint32((uint64(hash) * uint64(size)) >> 32)
}
func (rangeIndex) PowerOfTwo() bool { return false }

// IndexFunc adapts a plain function to IndexMapper. The table makes no
// assumption about its size requirements.
type IndexFunc func(hash, size uint32) uint32

func (f IndexFunc) Map(hash, size uint32) uint32 { return f(hash, size) }
func (f IndexFunc) PowerOfTwo() bool             { return false }

// Funcs builds a Strategy out of optional functions.
//
// A nil Size uses len(key), a nil Compare orders keys bytewise, a nil Hash
// uses hashfn.FNV1a and a nil Index uses MaskIndex.
type Funcs[K Key] struct {
	Size    func(key K) int
	Compare func(a, b K) int
	Hash    func(key K, length int) uint32
	Index   IndexMapper
}

// KeySize returns f.Size(key), or len(key) when Size is nil.
func (f Funcs[K]) KeySize(key K) int {
	if f.Size != nil {
		return f.Size(key)
	}
	return len(key)
}

// KeyCompare returns f.Compare(a, b), or the bytewise order of a and b.
func (f Funcs[K]) KeyCompare(a, b K) int {
	if f.Compare != nil {
		return f.Compare(a, b)
	}
	return compareBytes(a, b)
}

// KeyHash hashes the first length bytes of key with f.Hash, or FNV-1a.
func (f Funcs[K]) KeyHash(key K, length int) uint32 {
	if f.Hash != nil {
		return f.Hash(key, length)
	}
	return hashfn.FNV1a(key[:length])
}

// IndexMap maps hash into [0, size) with f.Index, or MaskIndex.
func (f Funcs[K]) IndexMap(hash, size uint32) uint32 {
	return f.indexer().Map(hash, size)
}

// PowerOfTwo reports whether the index mapper needs power of two sizes.
func (f Funcs[K]) PowerOfTwo() bool {
	return f.indexer().PowerOfTwo()
}

func (f Funcs[K]) indexer() IndexMapper {
	if f.Index != nil {
		return f.Index
	}
	return MaskIndex
}

// HashWith adapts a hashfn function to the Funcs.Hash signature.
func HashWith[K Key](fn func(key K) uint32) func(key K, length int) uint32 {
	return func(key K, length int) uint32 {
		return fn(key[:length])
	}
}

func compareBytes[K Key](a, b K) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
