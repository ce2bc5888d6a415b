/*
Package sortedhash provides an in-memory hash table that resolves collisions
with sorted chaining.

Every bucket keeps its entries in an array sorted by a caller-supplied
comparator, so a lookup inside a bucket is a binary search and an insert or a
remove only shifts entries of that one bucket. The table grows and shrinks by
rehashing into a new bucket array whenever the average bucket depth crosses the
configured thresholds.

Basic usage:

	import "github.com/theflywheel/sortedhash"

	// Keys are hashed with FNV-1a and mapped with power-of-two masking
	t, err := sortedhash.NewFuncs[string, int](8, nil, strings.Compare, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer t.Destroy(nil, nil)

	// Insert data
	err = t.Insert("b", 2)

	// Retrieve data
	v, ok := t.Search("b")
	if ok {
		fmt.Println("Value:", v)
	}

	// Remove data
	v, ok = t.Remove("b")

Features:

  - Keys are any byte-string type (~string or ~[]byte) with the default
    strategy, or any type at all with a custom Strategy
  - Pluggable key size, comparison, hash and hash-to-index strategies
  - Hash functions from package hashfn: FNV-1a, one-at-a-time, Murmur3, xxHash
  - Automatic growth when the average bucket depth reaches 64, shrinking when
    it falls below 16
  - Not safe for concurrent use; guard a Table with a mutex when sharing it

Implementation Details:

A key is turned into a bucket index in three steps: KeySize gives the length
of its hashable representation, KeyHash reduces it to 32 bits, and IndexMap
maps the hash into [0, size). Tables using MaskIndex always have a power of
two number of buckets.

Buckets grow their entry arrays in fixed increments (32 entries by default)
and never give memory back on removal. Rehashing allocates a fresh bucket
array and moves every entry; keys and values themselves are never copied
beyond the (key, value) pair stored in the bucket.
*/
package sortedhash
