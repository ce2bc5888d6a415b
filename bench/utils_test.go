package sortedhash_test

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/theflywheel/sortedhash"
)

// BenchmarkMetrics represents metrics for a single benchmark
type BenchmarkMetrics struct {
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Operations int                `json:"operations"`
	NsPerOp    float64            `json:"ns_per_op"`
	Metrics    map[string]float64 `json:"metrics"`
}

// BenchmarkSummary represents all benchmark results of one run
type BenchmarkSummary struct {
	Timestamp string             `json:"timestamp"`
	GoVersion string             `json:"go_version"`
	Results   []BenchmarkMetrics `json:"results"`
}

// historyDirEnv names the directory benchmark results are appended to.
// Results are not saved when it is unset.
const historyDirEnv = "SORTEDHASH_BENCH_DIR"

// getMemoryUsage returns the current memory stats as a formatted string
func getMemoryUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return fmt.Sprintf("Memory: Alloc=%.1fMB Sys=%.1fMB",
		float64(m.Alloc)/1024/1024,
		float64(m.Sys)/1024/1024)
}

// uint64Key writes i big-endian into key
func uint64Key(key []byte, i uint64) []byte {
	binary.BigEndian.PutUint64(key, i)
	return key
}

// newUint64Table creates a table for 8-byte keys
func newUint64Table(size uint32, opts ...sortedhash.Option) (*sortedhash.Table[string, uint64], error) {
	return sortedhash.NewFuncs[string, uint64](size, nil, nil, nil, nil, opts...)
}

// recordTableStats copies the table shape into the metrics
func recordTableStats(metrics *BenchmarkMetrics, s sortedhash.Stats) {
	metrics.Metrics["buckets"] = float64(s.Buckets)
	metrics.Metrics["load_factor"] = s.LoadFactor
	metrics.Metrics["max_depth"] = float64(s.MaxDepth)
	metrics.Metrics["rehashes"] = float64(s.Rehashes)
	metrics.Metrics["overhead_mb"] = float64(s.OverheadBytes) / (1024 * 1024)
	if s.Entries > 0 {
		metrics.Metrics["bytes_per_key"] = float64(s.OverheadBytes) / float64(s.Entries)
	}
}

// saveBenchmarkResult appends a benchmark result to resultsFile in the
// history directory
func saveBenchmarkResult(metrics BenchmarkMetrics, resultsFile string) error {
	dir := os.Getenv(historyDirEnv)
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	summary := BenchmarkSummary{
		Timestamp: time.Now().Format(time.RFC3339),
		GoVersion: runtime.Version(),
	}

	path := filepath.Join(dir, resultsFile)
	if existing, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(existing, &summary); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	summary.Results = append(summary.Results, metrics)

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}
	return nil
}
