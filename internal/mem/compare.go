// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package mem implements bounds-checked, element-wise memory comparison over
// fixed-width unsigned elements.
//
// Every operation validates its runtime constraints in a fixed order before
// touching memory, reports the first violated constraint through the
// configured violation handler, and returns a sentinel error from the
// constraint package. The compare itself scans element-wise (not byte-wise)
// and reports the signed difference of the first mismatching pair.
//
// # Key Features
//
//   - Strict validation ordering: the first violated constraint wins
//   - Closed error taxonomy: nil buffer, zero length, length over limit
//   - Identical base addresses compare equal without reading memory
//   - No allocation, no I/O, no locking on the compare path
//   - Width variants over a single generic core (8/16/32/64-bit)
//
// # Usage Examples
//
// Value-returning API:
//
//	c := mem.New()
//	diff, err := c.Compare32(dest, uint(len(dest)), src, uint(len(src)))
//
// Out-parameter API (drop-in for callers porting from checked C interfaces):
//
//	var diff int64
//	err := c.Compare32Into(dest, dmax, src, smax, &diff)
//
// Injected handler and metrics:
//
//	c := mem.New(
//	    mem.WithHandler(constraint.IgnoreHandler),
//	    mem.WithMetrics(m),
//	)
//
// # Diff Semantics
//
// The diff is the wrapped unsigned subtraction dest[i] - src[i] in the
// element width, reinterpreted as signed. It indicates direction of the
// first difference but is not the true mathematical difference when the
// magnitude exceeds the signed range of the width: Compare32 of
// dest[i]=0x80000000 against src[i]=0 reports a negative diff. This
// convention is inherited and preserved for compatibility.
//
// # Thread Safety
//
// Operations are safe to invoke concurrently on buffers that no writer is
// mutating during the scan. The package provides no synchronization of the
// buffers themselves.
package mem

import (
	"time"

	"github.com/kianostad/safemem/internal/constraint"
	"github.com/kianostad/safemem/internal/monitoring/metrics"
)

// element enumerates the supported fixed-width unsigned element types.
type element interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Comparer performs checked comparisons. The zero value is not usable; use
// New. A Comparer with no injected handler reports violations to the
// process-wide handler current at violation time.
type Comparer struct {
	handler constraint.Handler
	metrics *metrics.Metrics
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithHandler injects a violation handler, overriding the process-wide one
// for this Comparer.
func WithHandler(h constraint.Handler) Option {
	return func(c *Comparer) { c.handler = h }
}

// WithMetrics attaches a metrics sink recording compares and violations.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Comparer) { c.metrics = m }
}

// New creates a Comparer.
func New(opts ...Option) *Comparer {
	c := &Comparer{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// violation reports one constraint violation through the handler and the
// metrics sink, then returns kind so call sites stay one-liners.
func (c *Comparer) violation(msg string, kind error) error {
	h := c.handler
	if h == nil {
		h = constraint.Current()
	}
	h(msg, nil, kind)
	if c.metrics != nil {
		c.metrics.RecordViolation(constraint.KindName(kind))
	}
	return kind
}

// compare is the generic core shared by all width variants. limit is the
// per-width capacity bound and sign reinterprets a wrapped unsigned
// difference as a signed value of the element width.
//
// The constraint checks run in a fixed order and the first violated one
// wins; each failure is reported exactly once before returning.
func compare[T element](c *Comparer, op string, dest []T, dmax uint, src []T, smax uint, limit uint, sign func(T) int64) (int64, error) {
	if dest == nil {
		return 0, c.violation(op+": dest is nil", constraint.ErrNilBuffer)
	}
	if src == nil {
		return 0, c.violation(op+": src is nil", constraint.ErrNilBuffer)
	}
	if dmax == 0 {
		return 0, c.violation(op+": dmax is 0", constraint.ErrZeroLength)
	}
	if dmax > limit {
		return 0, c.violation(op+": dmax exceeds max", constraint.ErrLengthExceedsMax)
	}
	if dmax > uint(len(dest)) {
		return 0, c.violation(op+": dmax exceeds dest length", constraint.ErrLengthExceedsMax)
	}
	if smax == 0 {
		return 0, c.violation(op+": smax is 0", constraint.ErrZeroLength)
	}
	if smax > dmax {
		return 0, c.violation(op+": smax exceeds dmax", constraint.ErrLengthExceedsMax)
	}
	if smax > uint(len(src)) {
		return 0, c.violation(op+": smax exceeds src length", constraint.ErrLengthExceedsMax)
	}

	start := time.Now()

	// A buffer can never differ from itself; skip the scan entirely.
	if &dest[0] == &src[0] {
		c.record(op, start, 0, false)
		return 0, nil
	}

	n := smax
	if dmax < n {
		n = dmax
	}

	var diff int64
	mismatch := false
	scanned := uint(0)
	for i := uint(0); i < n; i++ {
		if dest[i] != src[i] {
			diff = sign(dest[i] - src[i])
			mismatch = true
			scanned = i + 1
			break
		}
	}
	if !mismatch {
		scanned = n
	}

	c.record(op, start, uint64(scanned), mismatch)
	return diff, nil
}

// record forwards one successful compare to the metrics sink, if any.
func (c *Comparer) record(op string, start time.Time, elements uint64, mismatch bool) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordCompare(widthLabel(op), time.Since(start), elements, mismatch)
}

// widthLabel maps an operation name to its metrics width label.
func widthLabel(op string) string {
	switch op {
	case "Compare16", "Compare16Into":
		return "u16"
	case "Compare32", "Compare32Into":
		return "u32"
	case "Compare64", "Compare64Into":
		return "u64"
	default:
		return "u8"
	}
}

// Compare compares up to min(dmax, smax) 8-bit elements of dest and src and
// returns the signed difference of the first mismatching pair, or 0 if all
// compared elements match. A nonzero diff is a successful outcome, not an
// error.
//
// Constraints: dest and src must be non-nil; dmax and smax must be nonzero;
// dmax must not exceed constraint.RSizeMaxMem or len(dest); smax must not
// exceed dmax or len(src).
func (c *Comparer) Compare(dest []uint8, dmax uint, src []uint8, smax uint) (int64, error) {
	return compare(c, "Compare", dest, dmax, src, smax, constraint.RSizeMaxMem,
		func(d uint8) int64 { return int64(int8(d)) })
}

// Compare16 is the 16-bit element variant of Compare, bounded by
// constraint.RSizeMaxMem16.
func (c *Comparer) Compare16(dest []uint16, dmax uint, src []uint16, smax uint) (int64, error) {
	return compare(c, "Compare16", dest, dmax, src, smax, constraint.RSizeMaxMem16,
		func(d uint16) int64 { return int64(int16(d)) })
}

// Compare32 is the 32-bit element variant of Compare, bounded by
// constraint.RSizeMaxMem32.
//
// The diff follows the wrapped unsigned subtraction convention described in
// the package documentation: dest[i]=3 against src[i]=99 reports -96, while
// dest[i]=0x80000000 against src[i]=0 reports math.MinInt32 despite dest
// being the larger value.
func (c *Comparer) Compare32(dest []uint32, dmax uint, src []uint32, smax uint) (int64, error) {
	return compare(c, "Compare32", dest, dmax, src, smax, constraint.RSizeMaxMem32,
		func(d uint32) int64 { return int64(int32(d)) })
}

// Compare64 is the 64-bit element variant of Compare, bounded by
// constraint.RSizeMaxMem64.
func (c *Comparer) Compare64(dest []uint64, dmax uint, src []uint64, smax uint) (int64, error) {
	return compare(c, "Compare64", dest, dmax, src, smax, constraint.RSizeMaxMem64,
		func(d uint64) int64 { return int64(d) })
}
