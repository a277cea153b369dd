// Licensed under the MIT License. See LICENSE file in the project root for details.

package constraint

import "errors"

// Violation errors form the closed taxonomy returned by every checked memory
// operation. Callers should compare with errors.Is; the set is stable and
// will not grow for existing operations.
var (
	// ErrNilDiff indicates the caller-supplied diff output pointer is nil.
	ErrNilDiff = errors.New("diff output pointer is nil")

	// ErrNilBuffer indicates an input buffer is nil.
	ErrNilBuffer = errors.New("buffer is nil")

	// ErrZeroLength indicates a declared capacity of zero.
	ErrZeroLength = errors.New("length is zero")

	// ErrLengthExceedsMax indicates a declared capacity over the per-width
	// limit, over the destination capacity, or over the actual buffer length.
	ErrLengthExceedsMax = errors.New("length exceeds max limit")
)

// KindName returns the short machine-readable name of a violation error,
// suitable for metrics labels and structured log fields.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrNilDiff):
		return "nil_diff"
	case errors.Is(err, ErrNilBuffer):
		return "nil_buffer"
	case errors.Is(err, ErrZeroLength):
		return "zero_length"
	case errors.Is(err, ErrLengthExceedsMax):
		return "length_exceeds_max"
	default:
		return "unknown"
	}
}
