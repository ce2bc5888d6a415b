// Package filehash hashes whole files by streaming them through a hash
// function in fixed-size blocks.
package filehash

import (
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"

	"github.com/theflywheel/sortedhash/hashfn"
)

// DefaultBlockSize is the block size used when none is given.
const DefaultBlockSize = 64 << 10

// Sum hashes r block by block. Each block hash is folded into a running
// digest, so the result depends on blockSize. It returns the digest and the
// number of bytes read.
func Sum(r io.Reader, blockSize int, fn hashfn.Func) (uint32, int64, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	var digest uint32
	var total int64
	block := make([]byte, blockSize)

	for {
		n, err := io.ReadFull(r, block)
		if n > 0 {
			digest = bits.RotateLeft32(digest, 13) ^ fn(block[:n])
			total += int64(n)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return 0, total, err
		}
	}

	return digest ^ uint32(total), total, nil
}

// File hashes the file at path
func File(path string, blockSize int, fn hashfn.Func) (uint32, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	digest, n, err := Sum(f, blockSize, fn)
	if err != nil {
		return 0, n, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return digest, n, nil
}
