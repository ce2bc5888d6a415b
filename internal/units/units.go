// Package units formats byte counts and durations for humans.
package units

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
)

// Bytes formats n with a binary prefix, e.g. "1.5 KiB".
func Bytes(n uint64) string {
	return humanize.IBytes(n)
}

// Rate formats the throughput of n bytes processed in d.
func Rate(n int64, d time.Duration) string {
	if d <= 0 {
		return "inf B/s"
	}
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(float64(n)/d.Seconds())) + "/s"
}

// PerOp formats the average time of ops operations that took d in total.
func PerOp(d time.Duration, ops int) string {
	if ops <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f ns/op", float64(d.Nanoseconds())/float64(ops))
}
