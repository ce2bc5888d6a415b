// Package hashfn implements the non-cryptographic 32-bit hash functions used
// to select buckets in a sortedhash table.
//
// Every function reads its input as a byte span. Multi-byte words are always
// decoded little-endian, so results are identical on every host.
package hashfn

import (
	"errors"
	"fmt"
	"sort"
)

// Seed is the fixed seed used by Murmur3 and XXHash.
const Seed uint32 = 0x7FFF2FF8

// Bytes is the set of key representations the hash functions accept.
type Bytes interface {
	~string | ~[]byte
}

// Func is a hash function over a byte slice.
type Func func(key []byte) uint32

// ErrUnknown is returned by Lookup for names with no registered function.
var ErrUnknown = errors.New("unknown hash function")

var registry = map[string]Func{
	"fnv1a":   FNV1a[[]byte],
	"oaat":    OAAT[[]byte],
	"murmur3": Murmur3[[]byte],
	"xxhash":  XXHash[[]byte],
	"xxh64":   XXH64Fold[[]byte],
}

// Lookup returns the hash function registered under name
func Lookup(name string) (Func, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return fn, nil
}

// Names lists the registered hash functions in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// read32 decodes four bytes at i as a little-endian word.
func read32[T Bytes](key T, i int) uint32 {
	return uint32(key[i]) | uint32(key[i+1])<<8 | uint32(key[i+2])<<16 | uint32(key[i+3])<<24
}
