// Licensed under the MIT License. See LICENSE file in the project root for details.

package mem

import (
	"errors"
	"testing"

	"github.com/kianostad/safemem/internal/constraint"
	"pgregory.net/rapid"
)

// modelCompare32 is the reference implementation: scan min(dmax, smax)
// elements, report the sign-extended wrapped difference of the first
// mismatching pair, or 0 if none.
func modelCompare32(dest []uint32, dmax uint, src []uint32, smax uint) int64 {
	n := smax
	if dmax < n {
		n = dmax
	}
	for i := uint(0); i < n; i++ {
		if dest[i] != src[i] {
			return int64(int32(dest[i] - src[i]))
		}
	}
	return 0
}

// TestPropertyCompare32MatchesModel checks that the checked compare agrees
// with the reference scan model on arbitrary valid inputs.
func TestPropertyCompare32MatchesModel(t *testing.T) {
	c := New(WithHandler(constraint.IgnoreHandler))

	rapid.Check(t, func(t *rapid.T) {
		dest := rapid.SliceOfN(rapid.Uint32(), 1, 64).Draw(t, "dest")
		src := rapid.SliceOfN(rapid.Uint32(), 1, 64).Draw(t, "src")

		dmax := uint(rapid.IntRange(1, len(dest)).Draw(t, "dmax"))
		smaxCap := len(src)
		if int(dmax) < smaxCap {
			smaxCap = int(dmax)
		}
		smax := uint(rapid.IntRange(1, smaxCap).Draw(t, "smax"))

		diff, err := c.Compare32(dest, dmax, src, smax)
		if err != nil {
			t.Fatalf("valid input rejected: %v", err)
		}

		want := modelCompare32(dest, dmax, src, smax)
		if diff != want {
			t.Fatalf("diff mismatch: got %d, want %d", diff, want)
		}
	})
}

// TestPropertyCompare32EqualPrefixes checks that diff is 0 exactly when the
// scanned prefixes are equal.
func TestPropertyCompare32EqualPrefixes(t *testing.T) {
	c := New(WithHandler(constraint.IgnoreHandler))

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 64).Draw(t, "n")
		dest := rapid.SliceOfN(rapid.Uint32(), n, n).Draw(t, "dest")

		src := make([]uint32, n)
		copy(src, dest)

		diff, err := c.Compare32(dest, uint(n), src, uint(n))
		if err != nil {
			t.Fatalf("valid input rejected: %v", err)
		}
		if diff != 0 {
			t.Fatalf("equal buffers reported diff %d", diff)
		}
	})
}

// TestPropertyCompare32RejectsOversizedSmax checks that smax > dmax is
// always a rejection, never a truncation, regardless of buffer contents.
func TestPropertyCompare32RejectsOversizedSmax(t *testing.T) {
	c := New(WithHandler(constraint.IgnoreHandler))

	rapid.Check(t, func(t *rapid.T) {
		src := rapid.SliceOfN(rapid.Uint32(), 2, 64).Draw(t, "src")
		smax := uint(len(src))

		dest := make([]uint32, len(src))
		copy(dest, src)
		dmax := uint(rapid.IntRange(1, len(src)-1).Draw(t, "dmax"))

		_, err := c.Compare32(dest, dmax, src, smax)
		if !errors.Is(err, constraint.ErrLengthExceedsMax) {
			t.Fatalf("smax %d > dmax %d accepted: err=%v", smax, dmax, err)
		}
	})
}

// TestPropertyCompareIntoSentinel checks that every failing Into call leaves
// the -1 sentinel in the diff output.
func TestPropertyCompareIntoSentinel(t *testing.T) {
	c := New(WithHandler(constraint.IgnoreHandler))

	rapid.Check(t, func(t *rapid.T) {
		buf := rapid.SliceOfN(rapid.Uint32(), 1, 16).Draw(t, "buf")

		// Each case violates exactly one constraint.
		kind := rapid.SampledFrom([]string{"nil_dest", "zero_dmax", "big_dmax", "smax_over"}).Draw(t, "kind")

		diff := int64(rapid.Int64().Draw(t, "seed"))
		var err error
		switch kind {
		case "nil_dest":
			err = c.Compare32Into(nil, 1, buf, 1, &diff)
		case "zero_dmax":
			err = c.Compare32Into(buf, 0, buf, 1, &diff)
		case "big_dmax":
			err = c.Compare32Into(buf, constraint.RSizeMaxMem32+1, buf, 1, &diff)
		case "smax_over":
			err = c.Compare32Into(buf, 1, buf, uint(len(buf))+1, &diff)
		}

		if err == nil {
			t.Fatalf("case %s unexpectedly succeeded", kind)
		}
		if diff != -1 {
			t.Fatalf("case %s left diff %d, want -1", kind, diff)
		}
	})
}
