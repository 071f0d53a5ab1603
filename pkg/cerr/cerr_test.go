package cerr

import (
	"errors"
	"testing"
)

func TestNewNoCause(t *testing.T) {
	err := New(CodeParseRefusal, "bad kernel string")
	if err.Error() != "[PARSE_REFUSAL] bad kernel string" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := Wrap(CodeIO, "failed to write timeout", cause)

	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
	want := "[IO_FAILURE] failed to write timeout: permission denied"
	if err.Error() != want {
		t.Fatalf("got %q want %q", err.Error(), want)
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("enoent")
	err := WrapWithContext(CodeIO, "open failed", cause, map[string]any{"path": "/boot/loader/entries"})

	var se *StructuredError
	if !errors.As(err, &se) {
		t.Fatalf("expected errors.As to match *StructuredError")
	}
	if se.Context["path"] != "/boot/loader/entries" {
		t.Fatalf("context not preserved: %v", se.Context)
	}
}
