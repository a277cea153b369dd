// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main provides benchmarking tools for the checked memory comparison
// routines.
//
// This command-line tool measures compare throughput and latency across
// element widths and buffer sizes, for capacity planning and for comparing
// the checked routines against raw alternatives.
//
// # Usage
//
// Run with defaults:
//
//	go run ./cmd/bench
//
// Run with a TOML config:
//
//	go run ./cmd/bench -config bench.toml
//
// Example config:
//
//	sizes = [1024, 65536]
//	iterations = 50000
//	widths = ["u32", "u64"]
//	mismatch_index = -1
//
// # Benchmark Details
//
// For each selected width and size, the driver allocates two buffers,
// optionally plants a mismatch at mismatch_index, and times iterations of
// the checked compare. It reports ns/op and effective scan throughput. With
// mismatch_index = -1 the buffers stay equal, so every call scans the full
// length; this is the worst case for the compare loop.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kianostad/safemem"
)

func main() {
	configPath := flag.String("config", "", "path to TOML benchmark config")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.Fatalf("bench: %v", err)
		}
	}

	// Violations in a benchmark run are setup bugs; fail loudly.
	safemem.SetHandler(safemem.AbortHandler)

	fmt.Println("=== safemem compare benchmarks ===")
	fmt.Printf("iterations per case: %d\n\n", cfg.Iterations)

	for _, width := range cfg.Widths {
		for _, size := range cfg.Sizes {
			result, err := runCase(width, size, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "bench: %s/%d: %v\n", width, size, err)
				os.Exit(1)
			}
			fmt.Printf("%-4s %10d elems: %10.1f ns/op %10.2f GB/s\n",
				width, size, result.nsPerOp, result.gbPerSec)
		}
	}
}

type caseResult struct {
	nsPerOp  float64
	gbPerSec float64
}

// runCase benchmarks one width/size combination.
func runCase(width string, size int, cfg benchConfig) (caseResult, error) {
	bytesPerElem := map[string]int{"u8": 1, "u16": 2, "u32": 4, "u64": 8}[width]

	run, err := makeRunner(width, size, cfg.MismatchIndex)
	if err != nil {
		return caseResult{}, err
	}

	// Warm up outside the timed region.
	if err := run(); err != nil {
		return caseResult{}, err
	}

	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		if err := run(); err != nil {
			return caseResult{}, err
		}
	}
	elapsed := time.Since(start)

	nsPerOp := float64(elapsed.Nanoseconds()) / float64(cfg.Iterations)
	scanned := size
	if cfg.MismatchIndex >= 0 {
		scanned = cfg.MismatchIndex + 1
	}
	bytesPerOp := float64(scanned * bytesPerElem)
	gbPerSec := bytesPerOp / nsPerOp // bytes/ns == GB/s

	return caseResult{nsPerOp: nsPerOp, gbPerSec: gbPerSec}, nil
}

// makeRunner builds one timed compare closure for the given width. The
// buffers are allocated once and reused across iterations.
func makeRunner(width string, size, mismatchIndex int) (func() error, error) {
	n := uint(size)

	switch width {
	case "u8":
		dest, src := make([]uint8, size), make([]uint8, size)
		if mismatchIndex >= 0 {
			src[mismatchIndex] = 1
		}
		return func() error {
			_, err := safemem.Compare(dest, n, src, n)
			return err
		}, nil
	case "u16":
		dest, src := make([]uint16, size), make([]uint16, size)
		if mismatchIndex >= 0 {
			src[mismatchIndex] = 1
		}
		return func() error {
			_, err := safemem.Compare16(dest, n, src, n)
			return err
		}, nil
	case "u32":
		dest, src := make([]uint32, size), make([]uint32, size)
		if mismatchIndex >= 0 {
			src[mismatchIndex] = 1
		}
		return func() error {
			_, err := safemem.Compare32(dest, n, src, n)
			return err
		}, nil
	case "u64":
		dest, src := make([]uint64, size), make([]uint64, size)
		if mismatchIndex >= 0 {
			src[mismatchIndex] = 1
		}
		return func() error {
			_, err := safemem.Compare64(dest, n, src, n)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("unknown width %q", width)
	}
}
