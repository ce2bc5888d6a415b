package main

import (
	"encoding/binary"
	"fmt"
	"log"
	"os"

	"github.com/theflywheel/sortedhash"
	"github.com/theflywheel/sortedhash/hashfn"
)

func main() {
	// 8-byte big-endian keys hashed with Murmur3
	tbl, err := sortedhash.NewFuncs[string, uint64](16, nil, nil,
		sortedhash.HashWith(hashfn.Murmur3[string]), sortedhash.MaskIndex)
	if err != nil {
		log.Fatalf("Failed to create table: %v", err)
	}
	defer tbl.Destroy(nil, nil)

	fmt.Println("Table created successfully")

	key := func(i uint64) string {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], i)
		return string(b[:])
	}

	for i := uint64(0); i < 10; i++ {
		if err := tbl.Insert(key(i), i*100); err != nil {
			log.Fatalf("Failed to insert key %d: %v", i, err)
		}
	}

	fmt.Println("Inserted 10 key-value pairs")

	for i := uint64(0); i < 15; i += 2 {
		if v, found := tbl.Search(key(i)); found {
			fmt.Printf("Key %d => Value %d\n", i, v)
		} else {
			fmt.Printf("Key %d not found\n", i)
		}
	}

	// Update a value
	if err := tbl.Insert(key(2), 999); err != nil {
		log.Fatalf("Failed to update key: %v", err)
	}
	if v, found := tbl.Search(key(2)); found {
		fmt.Printf("Updated key 2 => Value %d\n", v)
	}

	if v, found := tbl.Remove(key(4)); found {
		fmt.Printf("Removed key 4 (value %d), %d keys left\n", v, tbl.Len())
	}

	fmt.Print(tbl.Stats())
	if err := tbl.WriteDebug(os.Stdout); err != nil {
		log.Fatalf("Failed to write buckets: %v", err)
	}

	fmt.Println("Example completed successfully")
}
