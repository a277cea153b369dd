// Licensed under the MIT License. See LICENSE file in the project root for details.

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// benchConfig controls the workloads the benchmark driver runs.
type benchConfig struct {
	// Sizes are the buffer lengths, in elements, to benchmark.
	Sizes []int

	// Iterations is the number of compare calls per size.
	Iterations int

	// Widths selects the element widths to exercise: "u8", "u16", "u32", "u64".
	Widths []string

	// MismatchIndex places the first differing element; -1 benchmarks
	// fully equal buffers.
	MismatchIndex int
}

type fileConfig struct {
	Sizes         []int    `toml:"sizes"`
	Iterations    int      `toml:"iterations"`
	Widths        []string `toml:"widths"`
	MismatchIndex int      `toml:"mismatch_index"`
}

func defaultConfig() benchConfig {
	return benchConfig{
		Sizes:         []int{64, 1024, 65536, 1 << 20},
		Iterations:    10000,
		Widths:        []string{"u8", "u16", "u32", "u64"},
		MismatchIndex: -1,
	}
}

// loadConfig overlays a TOML file onto the defaults. Keys absent from the
// file keep their default values.
func loadConfig(path string) (benchConfig, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return benchConfig{}, fmt.Errorf("load bench config: %w", err)
	}

	if meta.IsDefined("sizes") && len(raw.Sizes) > 0 {
		cfg.Sizes = raw.Sizes
	}

	if meta.IsDefined("iterations") {
		if raw.Iterations <= 0 {
			return benchConfig{}, fmt.Errorf("iterations must be positive, got %d", raw.Iterations)
		}
		cfg.Iterations = raw.Iterations
	}

	if meta.IsDefined("widths") && len(raw.Widths) > 0 {
		for _, w := range raw.Widths {
			switch w {
			case "u8", "u16", "u32", "u64":
			default:
				return benchConfig{}, fmt.Errorf("unknown width %q", w)
			}
		}
		cfg.Widths = raw.Widths
	}

	if meta.IsDefined("mismatch_index") {
		cfg.MismatchIndex = raw.MismatchIndex
	}

	for _, size := range cfg.Sizes {
		if size <= 0 {
			return benchConfig{}, fmt.Errorf("sizes must be positive, got %d", size)
		}
		if cfg.MismatchIndex >= size {
			return benchConfig{}, fmt.Errorf("mismatch_index %d out of range for size %d", cfg.MismatchIndex, size)
		}
	}

	return cfg, nil
}
