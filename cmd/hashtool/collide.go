package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"github.com/theflywheel/sortedhash"
	"github.com/theflywheel/sortedhash/hashfn"
	"github.com/theflywheel/sortedhash/internal/units"
)

type Collide struct {
	Words string   `short:"w" long:"words" description:"word list file, plain, gzip or zstd (default random UUIDs)"`
	Count int      `short:"n" long:"count" default:"100000" description:"number of random keys when no word list is given"`
	Funcs []string `short:"f" long:"func" description:"hash function to use (repeatable, default all)"`
}

type collisionResult struct {
	keys       int
	distinct   uint64
	collisions uint64
	bytes      int64
	elapsed    time.Duration
}

// countCollisions hashes every key with fn and counts keys whose hash was
// already produced by an earlier key. Distinct hashes are tracked in a
// sorted hash table keyed by the 4-byte hash.
func countCollisions(keys []string, fn hashfn.Func) (collisionResult, error) {
	seen, err := sortedhash.NewFuncs[string, uint64](uint32(len(keys)/sortedhash.DefaultMaxAlpha), nil, nil, nil, nil)
	if err != nil {
		return collisionResult{}, err
	}
	defer seen.Destroy(nil, nil)

	res := collisionResult{keys: len(keys)}
	var buf [4]byte
	for _, k := range keys {
		start := time.Now()
		h := fn([]byte(k))
		res.elapsed += time.Since(start)
		res.bytes += int64(len(k))

		binary.LittleEndian.PutUint32(buf[:], h)
		hk := string(buf[:])
		n, _ := seen.Search(hk)
		if err := seen.Insert(hk, n+1); err != nil {
			return res, err
		}
		if n > 0 {
			res.collisions++
		}
	}
	res.distinct = seen.Len()
	return res, nil
}

func (x *Collide) Execute(args []string) error {
	names, fns, err := functions(x.Funcs)
	if err != nil {
		return err
	}
	keys, err := loadKeys(x.Words, x.Count)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(fns))
	for i, fn := range fns {
		res, err := countCollisions(keys, fn)
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		rows = append(rows, []string{
			names[i],
			fmt.Sprint(res.keys),
			fmt.Sprint(res.distinct),
			fmt.Sprint(res.collisions),
			units.PerOp(res.elapsed, res.keys),
			units.Rate(res.bytes, res.elapsed),
		})
	}
	renderTable(os.Stdout, []string{"Function", "Keys", "Distinct", "Collisions", "Hash", "Throughput"}, rows)
	return nil
}
