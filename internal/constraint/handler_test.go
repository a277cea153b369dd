// Licensed under the MIT License. See LICENSE file in the project root for details.

package constraint

import (
	"strings"
	"testing"
)

func TestDefaultHandlerIsSet(t *testing.T) {
	if Current() == nil {
		t.Fatal("Current() returned nil before any SetHandler call")
	}
}

func TestSetHandlerReplacesAndRestores(t *testing.T) {
	prev := Current()
	defer SetHandler(prev)

	var gotMsg string
	var gotKind error
	SetHandler(func(msg string, _ any, kind error) {
		gotMsg = msg
		gotKind = kind
	})

	Notify("op: dest is nil", nil, ErrNilBuffer)

	if gotMsg != "op: dest is nil" {
		t.Errorf("handler got msg %q", gotMsg)
	}
	if gotKind != ErrNilBuffer {
		t.Errorf("handler got kind %v", gotKind)
	}
}

func TestSetHandlerNilRestoresDefault(t *testing.T) {
	prev := Current()
	defer SetHandler(prev)

	SetHandler(nil)
	if Current() == nil {
		t.Fatal("SetHandler(nil) left a nil handler")
	}
}

func TestAbortHandlerPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("AbortHandler did not panic")
		}
		if !strings.Contains(r.(string), "constraint violation") {
			t.Errorf("unexpected panic value: %v", r)
		}
	}()

	AbortHandler("op: smax exceeds dmax", nil, ErrLengthExceedsMax)
}

func TestKindNames(t *testing.T) {
	cases := map[error]string{
		ErrNilDiff:          "nil_diff",
		ErrNilBuffer:        "nil_buffer",
		ErrZeroLength:       "zero_length",
		ErrLengthExceedsMax: "length_exceeds_max",
	}
	for err, want := range cases {
		if got := KindName(err); got != want {
			t.Errorf("KindName(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestLimitsScaleWithElementWidth(t *testing.T) {
	if RSizeMaxMem16 != RSizeMaxMem/2 {
		t.Errorf("RSizeMaxMem16 = %d", RSizeMaxMem16)
	}
	if RSizeMaxMem32 != RSizeMaxMem/4 {
		t.Errorf("RSizeMaxMem32 = %d", RSizeMaxMem32)
	}
	if RSizeMaxMem64 != RSizeMaxMem/8 {
		t.Errorf("RSizeMaxMem64 = %d", RSizeMaxMem64)
	}
}
