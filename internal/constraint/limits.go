// Licensed under the MIT License. See LICENSE file in the project root for details.

package constraint

// RSizeMaxMem is the process-wide upper bound on a declared buffer capacity,
// in bytes. Capacities above it are treated as constraint violations rather
// than honored: values that large are almost always negative counts
// reinterpreted as huge unsigned sizes, or otherwise nonsensical.
//
// The per-width limits scale the byte budget by the element size, so every
// element width covers the same amount of memory.
const (
	RSizeMaxMem   uint = 1 << 28 // 256 MiB of 8-bit elements
	RSizeMaxMem16 uint = RSizeMaxMem >> 1
	RSizeMaxMem32 uint = RSizeMaxMem >> 2
	RSizeMaxMem64 uint = RSizeMaxMem >> 3
)
