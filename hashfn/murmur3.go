package hashfn

import "math/bits"

const (
	murmurC1 uint32 = 0xCC9E2D51
	murmurC2 uint32 = 0x1B873593
)

// Murmur3 computes the 32-bit MurmurHash3 of key with the fixed Seed.
func Murmur3[T Bytes](key T) uint32 {
	return Murmur3Seed(key, Seed)
}

// Murmur3Seed computes the 32-bit MurmurHash3 of key starting from seed.
func Murmur3Seed[T Bytes](key T, seed uint32) uint32 {
	h := seed
	nblocks := len(key) / 4

	for i := 0; i < nblocks; i++ {
		k1 := read32(key, i*4)
		k1 *= murmurC1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= murmurC2

		h ^= k1
		h = bits.RotateLeft32(h, 13)
		h = h*5 + 0xE6546B64
	}

	tail := nblocks * 4
	var k1 uint32
	switch len(key) & 3 {
	case 3:
		k1 ^= uint32(key[tail+2]) << 16
		fallthrough
	case 2:
		k1 ^= uint32(key[tail+1]) << 8
		fallthrough
	case 1:
		k1 ^= uint32(key[tail])
		k1 *= murmurC1
		k1 = bits.RotateLeft32(k1, 15)
		k1 *= murmurC2
		h ^= k1
	}

	h ^= uint32(len(key))
	return fmix32(h)
}

func fmix32(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85EBCA6B
	h ^= h >> 13
	h *= 0xC2B2AE35
	h ^= h >> 16
	return h
}
