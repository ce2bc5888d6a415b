package hashfn

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var knownAnswers = []struct {
	input   string
	fnv1a   uint32
	oaat    uint32
	murmur3 uint32
	xxhash  uint32
}{
	{"", 0x811c9dc5, 0x00000000, 0x8178c04a, 0xda3c9dbe},
	{"a", 0xe40c292c, 0xca2e9442, 0xce929054, 0xb3b50397},
	{"abc", 0x1a47e90b, 0xed131f5b, 0x5c324adb, 0xba4359d6},
	{"hello", 0x4f9f2cab, 0xc8fd181b, 0x2bab706e, 0x5cad2218},
	{"hello world", 0xd58b3fa7, 0x3e4a5a57, 0x00f1f4d6, 0xa71eda85},
	{"The quick brown fox jumps over the lazy dog", 0x048fff90, 0x519e91f5, 0x0e28a3e8, 0xa22f939c},
}

func TestKnownAnswers(t *testing.T) {
	for _, tc := range knownAnswers {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.fnv1a, FNV1a(tc.input), "fnv1a")
			assert.Equal(t, tc.oaat, OAAT(tc.input), "oaat")
			assert.Equal(t, tc.murmur3, Murmur3(tc.input), "murmur3")
			assert.Equal(t, tc.xxhash, XXHash(tc.input), "xxhash")

			// string and []byte views of the same bytes agree
			b := []byte(tc.input)
			assert.Equal(t, tc.fnv1a, FNV1a(b))
			assert.Equal(t, tc.oaat, OAAT(b))
			assert.Equal(t, tc.murmur3, Murmur3(b))
			assert.Equal(t, tc.xxhash, XXHash(b))
		})
	}
}

func TestSeedZeroMatchesReference(t *testing.T) {
	// Reference MurmurHash3_x86_32 and XXH32 vectors with seed 0.
	assert.Equal(t, uint32(0), Murmur3Seed("", 0))
	assert.Equal(t, uint32(0x248bfa47), Murmur3Seed("hello", 0))
	assert.Equal(t, uint32(0x02cc5d05), XXHashSeed("", 0))
	assert.Equal(t, uint32(0x32d153ff), XXHashSeed("abc", 0))
}

func TestFNV1aEmptyIsOffsetBasis(t *testing.T) {
	require.Equal(t, uint32(2166136261), FNV1a(""))
}

func TestXXHashShortInputSkipsLanes(t *testing.T) {
	for _, seed := range []uint32{0, 1, 42, Seed, 0xFFFFFFFF} {
		assert.Equal(t, xxAvalanche(seed+prime5), XXHashSeed([]byte{}, seed), "seed %#x", seed)
	}
}

// sequence returns the bytes 0, 1, ..., n-1.
func sequence(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

func TestTailLengths(t *testing.T) {
	// Lengths stepping by 7 cover every tail residue of the 4-byte and
	// 16-byte block loops.
	testCases := []struct {
		n        int
		murmur3  uint32
		xxhash   uint32
		xxhash42 uint32
	}{
		{0, 0x8178c04a, 0xda3c9dbe, 0xd5be6eb8},
		{7, 0xa1aa97ea, 0xb698cf0c, 0xccb6ae38},
		{14, 0x320b8fae, 0x35d7fe8a, 0xbee71fd8},
		{21, 0x1c8510eb, 0x3c2fd442, 0x8e08d1ec},
		{28, 0x408cba57, 0x312fbb40, 0x3c50476f},
		{35, 0x47bf9d72, 0x9e212283, 0x7e80f04c},
		{42, 0x8a28ef47, 0xf07efe63, 0x966d2131},
		{49, 0xb2fb2dba, 0x6a7d1476, 0x888c87e4},
		{56, 0x1658428a, 0x81db41e4, 0xaf55d4a8},
		{63, 0x213a4d09, 0x8732f9f1, 0x0b410584},
	}

	for _, tc := range testCases {
		key := sequence(tc.n)
		assert.Equal(t, tc.murmur3, Murmur3(key), "murmur3 len %d", tc.n)
		assert.Equal(t, tc.xxhash, XXHash(key), "xxhash len %d", tc.n)
		assert.Equal(t, tc.xxhash42, XXHashSeed(key, 42), "xxhash seed 42 len %d", tc.n)
	}
}

func TestDeterminism(t *testing.T) {
	key := sequence(257)
	for _, name := range Names() {
		fn, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, fn(key), fn(key), name)
	}
	assert.Equal(t, Murmur3Seed(key, 7), Murmur3Seed(key, 7))
	assert.Equal(t, XXHashSeed(key, 7), XXHashSeed(key, 7))
	assert.NotEqual(t, Murmur3Seed(key, 7), Murmur3Seed(key, 8))
	assert.NotEqual(t, XXHashSeed(key, 7), XXHashSeed(key, 8))
}

func TestUnseededUsesFixedSeed(t *testing.T) {
	key := "sorted chaining"
	assert.Equal(t, Murmur3Seed(key, Seed), Murmur3(key))
	assert.Equal(t, XXHashSeed(key, Seed), XXHash(key))
}

func TestXXH64Fold(t *testing.T) {
	h := xxhash.Sum64String("abc")
	want := uint32(h) ^ uint32(h>>32)
	assert.Equal(t, want, XXH64Fold("abc"))
	assert.Equal(t, want, XXH64Fold([]byte("abc")))

	type name string
	assert.Equal(t, want, XXH64Fold(name("abc")))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"fnv1a", "murmur3", "oaat", "xxh64", "xxhash"}, Names())

	fn, err := Lookup("murmur3")
	require.NoError(t, err)
	assert.Equal(t, Murmur3("abc"), fn([]byte("abc")))

	_, err = Lookup("sha256")
	require.ErrorIs(t, err, ErrUnknown)
}

func BenchmarkHash(b *testing.B) {
	key := sequence(64)
	for _, name := range Names() {
		fn, _ := Lookup(name)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(key)))
			for i := 0; i < b.N; i++ {
				fn(key)
			}
		})
	}
}
