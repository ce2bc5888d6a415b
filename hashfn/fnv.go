package hashfn

const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619
)

// FNV1a computes the 32-bit FNV-1a hash of key.
func FNV1a[T Bytes](key T) uint32 {
	h := fnvOffset32
	for i := 0; i < len(key); i++ {
		h = (h ^ uint32(key[i])) * fnvPrime32
	}
	return h
}

// OAAT computes Bob Jenkins' one-at-a-time hash of key.
func OAAT[T Bytes](key T) uint32 {
	var h uint32
	for i := 0; i < len(key); i++ {
		h += uint32(key[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
