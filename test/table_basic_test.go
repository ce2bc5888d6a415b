package sortedhash_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theflywheel/sortedhash"
	"github.com/theflywheel/sortedhash/hashfn"
)

// uint64Key encodes i as an 8-byte big-endian key.
func uint64Key(i uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, i)
	return key
}

func newBytesTable(t *testing.T, size uint32, opts ...sortedhash.Option) *sortedhash.Table[[]byte, uint64] {
	t.Helper()
	tbl, err := sortedhash.NewFuncs[[]byte, uint64](size, nil, bytes.Compare, nil, nil, opts...)
	require.NoError(t, err, "Failed to create table")
	return tbl
}

func TestBasicOperations(t *testing.T) {
	tbl := newBytesTable(t, 8)
	defer tbl.Destroy(nil, nil)

	for i := uint64(0); i < 10; i++ {
		if err := tbl.Insert(uint64Key(i), i*100); err != nil {
			t.Fatalf("Failed to insert key %d: %v", i, err)
		}
	}

	for i := uint64(0); i < 10; i++ {
		value, found := tbl.Search(uint64Key(i))
		if !found {
			t.Fatalf("Key %d not found", i)
		}
		if value != i*100 {
			t.Errorf("Value mismatch for key %d: expected %d, got %d", i, i*100, value)
		}
	}

	assert.Equal(t, uint64(10), tbl.Len())
}

// TestScenario inserts a, b and c into a table of 8 buckets. Stats report
// distinct keys, so two entries remain after removing a.
func TestScenario(t *testing.T) {
	tbl, err := sortedhash.NewFuncs[string, int](8, func(k string) int { return len(k) }, strings.Compare, nil, nil)
	require.NoError(t, err)

	require.NoError(t, tbl.Insert("a", 1))
	require.NoError(t, tbl.Insert("b", 2))
	require.NoError(t, tbl.Insert("c", 3))

	v, ok := tbl.Search("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = tbl.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = tbl.Search("a")
	assert.False(t, ok)

	s := tbl.Stats()
	assert.Equal(t, uint64(2), s.Entries)
	assert.Equal(t, uint64(3), s.Inserts)
	assert.Equal(t, uint32(8), s.Buckets)
}

// TestOverwrite tests overwriting existing keys
func TestOverwrite(t *testing.T) {
	tbl := newBytesTable(t, 8)

	key := uint64Key(42)
	require.NoError(t, tbl.Insert(key, 100))

	result, found := tbl.Search(key)
	require.True(t, found, "Key not found")
	require.Equal(t, uint64(100), result)

	require.NoError(t, tbl.Insert(uint64Key(42), 200))

	result, found = tbl.Search(key)
	require.True(t, found, "Key not found after overwrite")
	assert.Equal(t, uint64(200), result)

	s := tbl.Stats()
	assert.Equal(t, uint64(1), s.Entries, "overwrite must not add a distinct key")
	assert.Equal(t, uint64(2), s.Inserts, "every insert call is counted")
	assert.Equal(t, uint64(1), s.Overwrites)
}

func TestRemoveThenSearch(t *testing.T) {
	tbl := newBytesTable(t, 8)

	for i := uint64(0); i < 100; i++ {
		require.NoError(t, tbl.Insert(uint64Key(i), i))
	}

	v, ok := tbl.Remove(uint64Key(7))
	require.True(t, ok)
	assert.Equal(t, uint64(7), v)

	_, ok = tbl.Search(uint64Key(7))
	assert.False(t, ok)

	before := tbl.Len()
	_, ok = tbl.Remove(uint64Key(7))
	assert.False(t, ok)
	_, ok = tbl.Remove(uint64Key(1000))
	assert.False(t, ok)
	assert.Equal(t, before, tbl.Len(), "removing an absent key must not change the count")
}

func TestHashStrategies(t *testing.T) {
	for _, name := range hashfn.Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := hashfn.Lookup(name)
			require.NoError(t, err)

			tbl, err := sortedhash.NewFuncs[[]byte, uint64](16, nil, bytes.Compare,
				func(k []byte, n int) uint32 { return fn(k[:n]) }, sortedhash.RangeIndex)
			require.NoError(t, err)

			for i := uint64(0); i < 5000; i++ {
				require.NoError(t, tbl.Insert(uint64Key(i), i))
			}
			for i := uint64(0); i < 5000; i++ {
				v, ok := tbl.Search(uint64Key(i))
				require.True(t, ok, "key %d", i)
				require.Equal(t, i, v)
			}
		})
	}
}

func TestDestroyReleasesEntries(t *testing.T) {
	tbl := newBytesTable(t, 8)
	for i := uint64(0); i < 300; i++ {
		require.NoError(t, tbl.Insert(uint64Key(i), i))
	}
	_, _ = tbl.Remove(uint64Key(0))

	var keys int
	var sum uint64
	tbl.Destroy(func([]byte) { keys++ }, func(v uint64) { sum += v })

	assert.Equal(t, 299, keys)
	assert.Equal(t, uint64(299*300/2), sum)

	// destroyed tables reject further use
	assert.ErrorIs(t, tbl.Insert(uint64Key(1), 1), sortedhash.ErrDestroyed)
	_, ok := tbl.Search(uint64Key(1))
	assert.False(t, ok)
	_, ok = tbl.Remove(uint64Key(1))
	assert.False(t, ok)
	assert.Equal(t, uint64(0), tbl.Len())

	// a second destroy is a no-op
	tbl.Destroy(func([]byte) { keys++ }, nil)
	assert.Equal(t, 299, keys)
}
