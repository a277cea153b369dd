// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package safemem provides bounds-checked, constraint-validating memory
// comparison for fixed-width unsigned elements.
//
// This is the main public API for the safemem library. It wraps a raw
// element-wise comparison in strict runtime-constraint validation: nil
// buffers, zero or oversized declared capacities, and source capacities
// exceeding the destination capacity are all rejected with a specific error
// before any memory is read, and every rejection is reported through a
// replaceable process-wide violation handler.
//
// # Quick Start
//
//	import "github.com/kianostad/safemem"
//
//	diff, err := safemem.Compare32(dest, uint(len(dest)), src, uint(len(src)))
//	if err != nil {
//	    // constraint violation; diff is meaningless
//	}
//	switch {
//	case diff == 0:
//	    // equal over the compared range
//	case diff < 0:
//	    // dest's first mismatching element is "smaller" (wrapped convention)
//	}
//
// # Key Features
//
//   - Element-wise comparison over 8/16/32/64-bit unsigned elements
//   - Strict, ordered constraint validation with a closed error taxonomy
//   - Pluggable constraint-violation handler (log, ignore, or abort)
//   - Identical base addresses compare equal without reading memory
//   - Allocation-free, lock-free compare path
//   - Optional metrics for compares, mismatches, and violations
//
// # Usage Examples
//
// Replacing the process-wide violation handler at startup:
//
//	safemem.SetHandler(func(msg string, ctx any, kind error) {
//	    myaudit.Record(msg, kind)
//	})
//
// Dedicated comparer with injected handler and metrics:
//
//	m := safemem.NewMetrics()
//	defer m.Close()
//
//	c := safemem.New(
//	    safemem.WithHandler(safemem.IgnoreHandler),
//	    safemem.WithMetrics(m),
//	)
//	diff, err := c.Compare32(dest, dmax, src, smax)
//
// Out-parameter form for callers porting from checked C interfaces:
//
//	var diff int64
//	if err := safemem.Default().Compare32Into(dest, dmax, src, smax, &diff); err != nil {
//	    // diff is -1 on every failure path past the nil-pointer check
//	}
//
// # Diff Semantics
//
// The diff is the wrapped unsigned subtraction of the first mismatching
// element pair, reinterpreted as signed in the element width. It indicates
// the direction of the first difference but is not the true mathematical
// difference once magnitudes exceed the signed range of the width. This
// convention is inherited and preserved for compatibility; see the mem
// package documentation for details.
//
// # Error Handling
//
// The error taxonomy is closed and stable:
//
//   - ErrNilDiff: the diff output pointer of an Into variant is nil
//   - ErrNilBuffer: dest or src is nil
//   - ErrZeroLength: dmax or smax is zero
//   - ErrLengthExceedsMax: dmax over the per-width limit or the actual
//     buffer length, or smax over dmax
//
// Compare with errors.Is. The first violated constraint wins and is
// reported exactly once to the violation handler before the call returns.
//
// # Thread Safety
//
// All operations are safe for concurrent use on buffers that no writer is
// mutating during the scan. The violation handler is configured once during
// initialization and read lock-free thereafter.
package safemem

import (
	"github.com/kianostad/safemem/internal/constraint"
	"github.com/kianostad/safemem/internal/mem"
	"github.com/kianostad/safemem/internal/monitoring/metrics"
)

// Re-export core types.
type (
	// Comparer performs checked element-wise comparisons.
	Comparer = mem.Comparer

	// Option configures a Comparer.
	Option = mem.Option

	// Handler receives one notification per constraint violation.
	Handler = constraint.Handler

	// Metrics collects compare and violation metrics.
	Metrics = metrics.Metrics

	// MetricsSnapshot is a point-in-time view of collected metrics.
	MetricsSnapshot = metrics.Snapshot
)

// Violation errors. See the package documentation for the taxonomy.
var (
	ErrNilDiff          = constraint.ErrNilDiff
	ErrNilBuffer        = constraint.ErrNilBuffer
	ErrZeroLength       = constraint.ErrZeroLength
	ErrLengthExceedsMax = constraint.ErrLengthExceedsMax
)

// Per-width capacity limits, in elements.
const (
	RSizeMaxMem   = constraint.RSizeMaxMem
	RSizeMaxMem16 = constraint.RSizeMaxMem16
	RSizeMaxMem32 = constraint.RSizeMaxMem32
	RSizeMaxMem64 = constraint.RSizeMaxMem64
)

// Handler policies for SetHandler and WithHandler.
var (
	// LogHandler writes violations to stderr as structured JSON (default).
	LogHandler = constraint.LogHandler

	// IgnoreHandler discards violation notifications.
	IgnoreHandler = constraint.IgnoreHandler

	// AbortHandler panics on the first violation.
	AbortHandler = constraint.AbortHandler
)

// New creates a Comparer.
func New(opts ...Option) *Comparer {
	return mem.New(opts...)
}

// WithHandler injects a violation handler for one Comparer.
func WithHandler(h Handler) Option {
	return mem.WithHandler(h)
}

// WithMetrics attaches a metrics sink to one Comparer.
func WithMetrics(m *Metrics) Option {
	return mem.WithMetrics(m)
}

// NewMetrics creates a metrics instance. Call Close when done.
func NewMetrics() *Metrics {
	return metrics.NewMetrics()
}

// SetHandler replaces the process-wide violation handler. Call once during
// initialization; a nil handler restores the default.
func SetHandler(h Handler) {
	constraint.SetHandler(h)
}

// Default returns a Comparer bound to the process-wide violation handler,
// for callers that need the Into variants without constructing their own.
func Default() *Comparer {
	return defaultComparer
}

var defaultComparer = mem.New()

// Compare compares up to min(dmax, smax) 8-bit elements and returns the
// signed difference of the first mismatching pair, or 0 if none.
func Compare(dest []uint8, dmax uint, src []uint8, smax uint) (int64, error) {
	return mem.Compare(dest, dmax, src, smax)
}

// Compare16 is the 16-bit element variant of Compare.
func Compare16(dest []uint16, dmax uint, src []uint16, smax uint) (int64, error) {
	return mem.Compare16(dest, dmax, src, smax)
}

// Compare32 is the 32-bit element variant of Compare.
func Compare32(dest []uint32, dmax uint, src []uint32, smax uint) (int64, error) {
	return mem.Compare32(dest, dmax, src, smax)
}

// Compare64 is the 64-bit element variant of Compare.
func Compare64(dest []uint64, dmax uint, src []uint64, smax uint) (int64, error) {
	return mem.Compare64(dest, dmax, src, smax)
}
