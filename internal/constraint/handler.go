// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package constraint implements the runtime-constraint side of the checked
// memory operations: the closed violation taxonomy, the per-width capacity
// limits, and the process-wide violation handler.
//
// The handler is a notification side channel, not a recovery mechanism. Every
// constraint violation is reported to it exactly once, synchronously, before
// the violating call returns its error. Host applications replace it to
// centralize logging, auditing, or aborting on bounds violations.
//
// # Usage Examples
//
// Replacing the handler at startup:
//
//	constraint.SetHandler(func(msg string, ctx any, kind error) {
//	    audit.BoundsViolation(msg, kind)
//	})
//
// Restoring safeclib-style abort semantics:
//
//	constraint.SetHandler(constraint.AbortHandler)
//
// # Thread Safety
//
// The handler slot is configured once during initialization and read
// lock-free thereafter. SetHandler is safe to call concurrently, but the
// expected pattern is a single call before any checked operation runs.
package constraint

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Handler receives one notification per constraint violation. msg describes
// the violating call and constraint, ctx is an opaque caller token (currently
// always nil), and kind is one of the sentinel errors in this package.
type Handler func(msg string, ctx any, kind error)

var violationLog = zerolog.New(os.Stderr).With().Timestamp().Str("component", "safemem").Logger()

// LogHandler writes the violation to stderr as structured JSON and continues.
// This is the default policy.
func LogHandler(msg string, _ any, kind error) {
	violationLog.Warn().
		Str("kind", KindName(kind)).
		Msg(msg)
}

// IgnoreHandler discards the notification. The violating call still returns
// its error.
func IgnoreHandler(string, any, error) {}

// AbortHandler panics with the violation message, for hosts that treat any
// bounds violation as a programming error.
func AbortHandler(msg string, _ any, kind error) {
	violationLog.Error().
		Str("kind", KindName(kind)).
		Msg(msg)
	panic("safemem: constraint violation: " + msg)
}

var handler atomic.Value // Handler

func init() {
	handler.Store(Handler(LogHandler))
}

// SetHandler replaces the process-wide violation handler. A nil h restores
// the default LogHandler.
func SetHandler(h Handler) {
	if h == nil {
		h = LogHandler
	}
	handler.Store(h)
}

// Current returns the process-wide violation handler.
func Current() Handler {
	return handler.Load().(Handler)
}

// Notify reports a violation to the process-wide handler.
func Notify(msg string, ctx any, kind error) {
	Current()(msg, ctx, kind)
}
