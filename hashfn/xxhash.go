package hashfn

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

const (
	prime1 uint32 = 2654435761
	prime2 uint32 = 2246822519
	prime3 uint32 = 3266489917
	prime4 uint32 = 668265265
	prime5 uint32 = 374761393
)

// XXHash computes the 32-bit xxHash of key with the fixed Seed. It
// deliberately shares Seed with Murmur3.
func XXHash[T Bytes](key T) uint32 {
	return XXHashSeed(key, Seed)
}

// XXHashSeed computes the 32-bit xxHash of key starting from seed.
//
// Inputs shorter than 16 bytes skip the four-lane stage and start from
// seed+prime5.
func XXHashSeed[T Bytes](key T, seed uint32) uint32 {
	n := len(key)
	p := 0
	h := seed + prime5

	if n >= 16 {
		limit := n - 15
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1

		for p < limit {
			v1 = xxRound(v1, read32(key, p))
			v2 = xxRound(v2, read32(key, p+4))
			v3 = xxRound(v3, read32(key, p+8))
			v4 = xxRound(v4, read32(key, p+12))
			p += 16
		}

		h = bits.RotateLeft32(v1, 1) + bits.RotateLeft32(v2, 7) +
			bits.RotateLeft32(v3, 12) + bits.RotateLeft32(v4, 18)
	}

	h += uint32(n)

	// The remaining n&15 bytes are consumed as whole words first, then bytes.
	for ; p+4 <= n; p += 4 {
		h += read32(key, p) * prime3
		h = bits.RotateLeft32(h, 17) * prime4
	}
	for ; p < n; p++ {
		h += uint32(key[p]) * prime5
		h = bits.RotateLeft32(h, 11) * prime1
	}

	return xxAvalanche(h)
}

func xxAvalanche(h uint32) uint32 {
	h ^= h >> 15
	h *= prime2
	h ^= h >> 13
	h *= prime3
	h ^= h >> 16
	return h
}

func xxRound(lane, word uint32) uint32 {
	lane += word * prime2
	lane = bits.RotateLeft32(lane, 13)
	return lane * prime1
}

// XXH64Fold folds the 64-bit xxHash of key into 32 bits.
func XXH64Fold[T Bytes](key T) uint32 {
	var h uint64
	switch k := any(key).(type) {
	case string:
		h = xxhash.Sum64String(k)
	case []byte:
		h = xxhash.Sum64(k)
	default:
		h = xxhash.Sum64([]byte(key))
	}
	return uint32(h) ^ uint32(h>>32)
}
