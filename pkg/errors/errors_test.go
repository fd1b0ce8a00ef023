package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidGeom, "unknown geometry %q", "hexbin"),
			want: `INVALID_GEOM: unknown geometry "hexbin"`,
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeInvalidTheme, stderrors.New("eof"), "decode failed"),
			want: "INVALID_THEME: decode failed: eof",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeMissingAesthetic, "geom_point requires x and y")

	if !Is(err, ErrCodeMissingAesthetic) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is() = true for non-matching code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is() = true for plain error")
	}
}

func TestIsWrapped(t *testing.T) {
	inner := New(ErrCodeSizeMismatch, "40x10 vs 40x12")
	outer := fmt.Errorf("render: %w", inner)

	if !Is(outer, ErrCodeSizeMismatch) {
		t.Error("Is() failed to unwrap chain")
	}
	if GetCode(outer) != ErrCodeSizeMismatch {
		t.Errorf("GetCode() = %q, want %q", GetCode(outer), ErrCodeSizeMismatch)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFacet, "facet field missing")
	if got := UserMessage(err); got != "facet field missing" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}
