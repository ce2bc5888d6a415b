package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theflywheel/sortedhash/internal/filehash"
	"github.com/theflywheel/sortedhash/internal/units"
)

type Sum struct {
	BlockSize int      `short:"b" long:"block-size" default:"65536" description:"bytes hashed per block"`
	Jobs      int      `short:"j" long:"jobs" default:"4" description:"files hashed concurrently"`
	Funcs     []string `short:"f" long:"func" description:"hash function to use (repeatable, default all)"`

	Args struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes" required:"yes"`
}

type sumResult struct {
	file     string
	function string
	digest   uint32
	size     int64
	elapsed  time.Duration
}

func (x *Sum) Execute(args []string) error {
	names, fns, err := functions(x.Funcs)
	if err != nil {
		return err
	}

	files := x.Args.Files
	results := make([]sumResult, len(files)*len(fns))

	g, ctx := errgroup.WithContext(context.Background())
	if x.Jobs > 0 {
		g.SetLimit(x.Jobs)
	}

	for i, file := range files {
		for j, fn := range fns {
			slot := &results[i*len(fns)+j]
			slot.file, slot.function = file, names[j]
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				start := time.Now()
				digest, size, err := filehash.File(slot.file, x.BlockSize, fn)
				if err != nil {
					return err
				}
				slot.digest, slot.size, slot.elapsed = digest, size, time.Since(start)
				log.Debugf("Hashed %s with %s in %s", slot.file, slot.function, slot.elapsed)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.file,
			r.function,
			fmt.Sprintf("0x%08x", r.digest),
			units.Bytes(uint64(r.size)),
			r.elapsed.Round(time.Microsecond).String(),
			units.Rate(r.size, r.elapsed),
		}
	}
	renderTable(os.Stdout, []string{"File", "Function", "Hash", "Size", "Time", "Throughput"}, rows)
	return nil
}
