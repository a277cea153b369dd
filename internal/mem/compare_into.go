// Licensed under the MIT License. See LICENSE file in the project root for details.

package mem

import "github.com/kianostad/safemem/internal/constraint"

// The *Into variants mirror the out-parameter contract of checked C memory
// interfaces. The diff pointer is validated before anything else, then
// pre-set to -1 so that a caller ignoring the returned error never observes
// garbage: on every failure path past the nil-diff check, *diff holds -1.

// intoDiff runs the nil-diff check and sentinel assignment shared by the
// Into variants, then commits the compare result on success.
func (c *Comparer) intoDiff(op string, diff *int64, run func() (int64, error)) error {
	if diff == nil {
		return c.violation(op+": diff is nil", constraint.ErrNilDiff)
	}
	*diff = -1

	d, err := run()
	if err != nil {
		return err
	}
	*diff = d
	return nil
}

// CompareInto is the out-parameter form of Compare. On success *diff holds
// the comparison result; on failure it holds -1.
func (c *Comparer) CompareInto(dest []uint8, dmax uint, src []uint8, smax uint, diff *int64) error {
	return c.intoDiff("CompareInto", diff, func() (int64, error) {
		return compare(c, "CompareInto", dest, dmax, src, smax, constraint.RSizeMaxMem,
			func(d uint8) int64 { return int64(int8(d)) })
	})
}

// Compare16Into is the out-parameter form of Compare16.
func (c *Comparer) Compare16Into(dest []uint16, dmax uint, src []uint16, smax uint, diff *int64) error {
	return c.intoDiff("Compare16Into", diff, func() (int64, error) {
		return compare(c, "Compare16Into", dest, dmax, src, smax, constraint.RSizeMaxMem16,
			func(d uint16) int64 { return int64(int16(d)) })
	})
}

// Compare32Into is the out-parameter form of Compare32.
func (c *Comparer) Compare32Into(dest []uint32, dmax uint, src []uint32, smax uint, diff *int64) error {
	return c.intoDiff("Compare32Into", diff, func() (int64, error) {
		return compare(c, "Compare32Into", dest, dmax, src, smax, constraint.RSizeMaxMem32,
			func(d uint32) int64 { return int64(int32(d)) })
	})
}

// Compare64Into is the out-parameter form of Compare64.
func (c *Comparer) Compare64Into(dest []uint64, dmax uint, src []uint64, smax uint, diff *int64) error {
	return c.intoDiff("Compare64Into", diff, func() (int64, error) {
		return compare(c, "Compare64Into", dest, dmax, src, smax, constraint.RSizeMaxMem64,
			func(d uint64) int64 { return int64(d) })
	})
}

// defaultComparer backs the package-level functions. It carries no injected
// handler, so it always consults the process-wide one.
var defaultComparer = New()

// Compare compares 8-bit elements using the default Comparer.
func Compare(dest []uint8, dmax uint, src []uint8, smax uint) (int64, error) {
	return defaultComparer.Compare(dest, dmax, src, smax)
}

// Compare16 compares 16-bit elements using the default Comparer.
func Compare16(dest []uint16, dmax uint, src []uint16, smax uint) (int64, error) {
	return defaultComparer.Compare16(dest, dmax, src, smax)
}

// Compare32 compares 32-bit elements using the default Comparer.
func Compare32(dest []uint32, dmax uint, src []uint32, smax uint) (int64, error) {
	return defaultComparer.Compare32(dest, dmax, src, smax)
}

// Compare64 compares 64-bit elements using the default Comparer.
func Compare64(dest []uint64, dmax uint, src []uint64, smax uint) (int64, error) {
	return defaultComparer.Compare64(dest, dmax, src, smax)
}
