package sortedhash

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unsafe"
)

// Stats describes the shape of a Table. Collecting it walks every bucket and
// does not modify the table.
type Stats struct {
	Entries    uint64  // distinct keys stored
	Buckets    uint32  // bucket count
	LoadFactor float64 // Entries / Buckets

	MinDepth uint32
	MaxDepth uint32
	AvgDepth float64

	// OverheadBytes approximates the memory held by the table itself, not
	// counting memory referenced by keys and values.
	OverheadBytes uint64

	Inserts    uint64 // Insert calls that stored a value
	Overwrites uint64 // Insert calls that replaced an existing value
	Rehashes   uint64
}

// Stats returns a snapshot of the table statistics.
func (t *Table[K, V]) Stats() Stats {
	if t.err() != nil {
		return Stats{}
	}

	s := Stats{
		Entries:    t.entries,
		Buckets:    t.size,
		LoadFactor: float64(t.entries) / float64(t.size),
		MinDepth:   ^uint32(0),
		Inserts:    t.inserts,
		Overwrites: t.overwrites,
		Rehashes:   t.rehashes,
	}

	var total uint64
	for i := range t.buckets {
		depth := uint32(len(t.buckets[i].entries))
		if depth < s.MinDepth {
			s.MinDepth = depth
		}
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		total += uint64(depth)
	}
	s.AvgDepth = float64(total) / float64(t.size)

	s.OverheadBytes = total*uint64(unsafe.Sizeof(entry[K, V]{})) +
		uint64(t.size)*uint64(unsafe.Sizeof(bucket[K, V]{})) +
		uint64(unsafe.Sizeof(*t))
	return s
}

func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "entries: %d, size: %d, alpha %.2f\n", s.Entries, s.Buckets, s.LoadFactor)
	fmt.Fprintf(&b, "min-depth: %d, avg-depth: %.0f, max-depth: %d\n", s.MinDepth, s.AvgDepth, s.MaxDepth)
	fmt.Fprintf(&b, "overhead in bytes: %d", s.OverheadBytes)
	return b.String()
}

// WriteDebug writes one line per bucket with a star for every entry.
func (t *Table[K, V]) WriteDebug(w io.Writer) error {
	if err := t.err(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for i := range t.buckets {
		fmt.Fprintf(bw, "[%d] %s\n", i, strings.Repeat("*", len(t.buckets[i].entries)))
	}
	return bw.Flush()
}
