package main

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/theflywheel/sortedhash/hashfn"
	"github.com/theflywheel/sortedhash/internal/wordlist"
)

// loadKeys reads the word list at path, or generates n random UUID strings
// when path is empty.
func loadKeys(path string, n int) ([]string, error) {
	if path != "" {
		words, err := wordlist.Load(path)
		if err != nil {
			return nil, err
		}
		log.Infof("Loaded %d words from %s", len(words), path)
		return words, nil
	}

	keys := make([]string, n)
	for i := range keys {
		keys[i] = uuid.NewString()
	}
	log.Infof("Generated %d random UUID keys", n)
	return keys, nil
}

// functions resolves hash function names, defaulting to the whole suite.
func functions(names []string) ([]string, []hashfn.Func, error) {
	if len(names) == 0 {
		names = hashfn.Names()
	}
	fns := make([]hashfn.Func, len(names))
	for i, name := range names {
		fn, err := hashfn.Lookup(name)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --func: %w", err)
		}
		fns[i] = fn
	}
	return names, fns, nil
}
