// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main provides memdiff, a small command-line tool that compares two
// binary files element-wise through the checked comparison routines.
//
// # Usage
//
//	memdiff [-width 8|16|32|64] [-json] FILE1 FILE2
//
// FILE1 plays the dest role and FILE2 the src role. Files are decoded as
// little-endian elements of the selected width (default 32); a trailing
// partial element is a usage error. The src file must not contain more
// elements than the dest file, matching the comparison's smax <= dmax
// constraint.
//
// # Exit Codes
//
//	0  files are equal over the compared range
//	1  files differ (the first differing element and diff are reported)
//	2  usage error, I/O error, or constraint violation
package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kianostad/safemem"
)

func main() {
	width := flag.Int("width", 32, "element width in bits: 8, 16, 32, or 64")
	jsonOut := flag.Bool("json", false, "emit machine-readable JSON instead of console output")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *jsonOut {
		logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: memdiff [-width 8|16|32|64] [-json] FILE1 FILE2")
		os.Exit(2)
	}

	// Route constraint violations through the tool's logger.
	safemem.SetHandler(func(msg string, _ any, kind error) {
		logger.Warn().Err(kind).Msg(msg)
	})

	diff, err := compareFiles(flag.Arg(0), flag.Arg(1), *width)
	if err != nil {
		logger.Error().Err(err).Msg("compare failed")
		os.Exit(2)
	}

	if diff == 0 {
		logger.Info().Msg("files are equal over the compared range")
		os.Exit(0)
	}

	logger.Info().Int64("diff", diff).Msg("files differ")
	os.Exit(1)
}

// compareFiles loads both files as width-bit elements and runs the checked
// compare with dest capacity bounding src capacity.
func compareFiles(destPath, srcPath string, width int) (int64, error) {
	destRaw, err := os.ReadFile(destPath)
	if err != nil {
		return 0, err
	}
	srcRaw, err := os.ReadFile(srcPath)
	if err != nil {
		return 0, err
	}

	switch width {
	case 8:
		return safemem.Compare(destRaw, uint(len(destRaw)), srcRaw, uint(len(srcRaw)))
	case 16:
		dest, err := decode16(destRaw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", destPath, err)
		}
		src, err := decode16(srcRaw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", srcPath, err)
		}
		return safemem.Compare16(dest, uint(len(dest)), src, uint(len(src)))
	case 32:
		dest, err := decode32(destRaw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", destPath, err)
		}
		src, err := decode32(srcRaw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", srcPath, err)
		}
		return safemem.Compare32(dest, uint(len(dest)), src, uint(len(src)))
	case 64:
		dest, err := decode64(destRaw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", destPath, err)
		}
		src, err := decode64(srcRaw)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", srcPath, err)
		}
		return safemem.Compare64(dest, uint(len(dest)), src, uint(len(src)))
	default:
		return 0, fmt.Errorf("unsupported width %d", width)
	}
}

var errPartialElement = errors.New("file size is not a multiple of the element width")

func decode16(raw []byte) ([]uint16, error) {
	if len(raw)%2 != 0 {
		return nil, errPartialElement
	}
	out := make([]uint16, len(raw)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(raw[i*2:])
	}
	return out, nil
}

func decode32(raw []byte) ([]uint32, error) {
	if len(raw)%4 != 0 {
		return nil, errPartialElement
	}
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out, nil
}

func decode64(raw []byte) ([]uint64, error) {
	if len(raw)%8 != 0 {
		return nil, errPartialElement
	}
	out := make([]uint64, len(raw)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	return out, nil
}
