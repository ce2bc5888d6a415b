package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/theflywheel/sortedhash"
	"github.com/theflywheel/sortedhash/hashfn"
	"github.com/theflywheel/sortedhash/internal/units"
)

type Bench struct {
	Words    string        `short:"w" long:"words" description:"word list file, plain, gzip or zstd (default random UUIDs)"`
	Count    int           `short:"n" long:"count" default:"100000" description:"number of random keys when no word list is given"`
	Func     string        `short:"f" long:"func" default:"xxhash" description:"hash function used by the table"`
	Index    string        `short:"i" long:"index" default:"mask" choice:"mask" choice:"mod" choice:"range" description:"hash to bucket index mapping"`
	Size     uint32        `short:"s" long:"size" default:"10" description:"initial bucket count"`
	Duration time.Duration `short:"d" long:"duration" default:"1s" description:"time spent on random searches"`
	Seed     int64         `long:"seed" default:"1" description:"seed for random key selection"`
	Debug    bool          `long:"debug" description:"print the bucket depth histogram after inserting"`
}

type phaseResult struct {
	name    string
	ops     int
	elapsed time.Duration
	stats   sortedhash.Stats
}

var indexMappers = map[string]sortedhash.IndexMapper{
	"mask":  sortedhash.MaskIndex,
	"mod":   sortedhash.ModIndex,
	"range": sortedhash.RangeIndex,
}

// runBench inserts every key, searches random keys until searchFor has
// elapsed, then removes every key in random order.
func runBench(tbl *sortedhash.Table[string, string], keys []string, searchFor time.Duration, r *rand.Rand) ([]phaseResult, error) {
	var results []phaseResult

	start := time.Now()
	for _, k := range keys {
		if err := tbl.Insert(k, k); err != nil {
			return nil, err
		}
	}
	results = append(results, phaseResult{"insert", len(keys), time.Since(start), tbl.Stats()})

	var ops int
	var elapsed time.Duration
	for elapsed < searchFor || ops == 0 {
		k := keys[r.Intn(len(keys))]
		start := time.Now()
		v, ok := tbl.Search(k)
		elapsed += time.Since(start)
		if !ok || v != k {
			return nil, fmt.Errorf("search %q returned %q, %v", k, v, ok)
		}
		ops++
	}
	results = append(results, phaseResult{"search", ops, elapsed, tbl.Stats()})

	order := r.Perm(len(keys))
	start = time.Now()
	for _, i := range order {
		if _, ok := tbl.Remove(keys[i]); !ok {
			return nil, fmt.Errorf("remove %q: key not found", keys[i])
		}
	}
	results = append(results, phaseResult{"remove", len(keys), time.Since(start), tbl.Stats()})
	return results, nil
}

func (x *Bench) Execute(args []string) error {
	fn, err := hashfn.Lookup(x.Func)
	if err != nil {
		return err
	}
	keys, err := loadKeys(x.Words, x.Count)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("no keys to benchmark")
	}

	tbl, err := sortedhash.NewFuncs[string, string](x.Size, nil, strings.Compare,
		func(k string, n int) uint32 { return fn([]byte(k[:n])) }, indexMappers[x.Index])
	if err != nil {
		return err
	}
	defer tbl.Destroy(nil, nil)

	results, err := runBench(tbl, dedupe(keys), x.Duration, rand.New(rand.NewSource(x.Seed)))
	if err != nil {
		return err
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.name,
			fmt.Sprint(r.ops),
			r.elapsed.Round(time.Microsecond).String(),
			units.PerOp(r.elapsed, r.ops),
			fmt.Sprint(r.stats.Entries),
			fmt.Sprint(r.stats.Buckets),
			fmt.Sprintf("%.2f", r.stats.LoadFactor),
			fmt.Sprintf("%d/%.0f/%d", r.stats.MinDepth, r.stats.AvgDepth, r.stats.MaxDepth),
			units.Bytes(r.stats.OverheadBytes),
		}
	}
	renderTable(os.Stdout, []string{"Phase", "Ops", "Time", "Per op", "Entries", "Buckets", "Alpha", "Depth min/avg/max", "Overhead"}, rows)

	if x.Debug {
		for _, k := range keys {
			if err := tbl.Insert(k, k); err != nil {
				return err
			}
		}
		return tbl.WriteDebug(os.Stdout)
	}
	return nil
}

// dedupe drops repeated keys so every remove in the benchmark hits.
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
