// Command hashtool exercises the hash function suite and the sorted hash
// table: it hashes files, measures collisions over word lists and benchmarks
// table operations.
package main

import (
	"os"

	flags "github.com/jessevdk/go-flags"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("hashtool")

var logFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} [%{module}] [%{level}] %{message}`,
)

type Options struct {
	Verbose bool `short:"v" long:"verbose" description:"enable debug logging, including table rehashes"`
}

var (
	options    Options
	sumCmd     Sum
	collideCmd Collide
	benchCmd   Bench
)

var parser = flags.NewParser(&options, flags.Default)

func setupLogging(verbose bool) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logFormat))
	leveled.SetLevel(logging.INFO, "")
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	}
	logging.SetBackend(leveled)
}

func main() {
	parser.AddCommand("sum",
		"hash files",
		"The sum command hashes every file in fixed-size blocks with each hash function and reports throughput",
		&sumCmd)
	parser.AddCommand("collide",
		"count hash collisions",
		"The collide command hashes every word of a word list (or random UUIDs) and counts colliding hashes per function",
		&collideCmd)
	parser.AddCommand("bench",
		"benchmark table operations",
		"The bench command inserts a word list into a sorted hash table, then times random searches and removes",
		&benchCmd)

	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		setupLogging(options.Verbose)
		if cmd == nil {
			return nil
		}
		return cmd.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
}
