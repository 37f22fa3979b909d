package hxcontent

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	// Verify sentinel errors are distinct
	errs := []error{
		ErrInvalidArgument,
		ErrUninitialized,
		ErrNotFound,
		ErrInvalidFormat,
		ErrSignatureInvalid,
		ErrDecryptFailed,
	}

	for i, err1 := range errs {
		for j, err2 := range errs {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrorMessages(t *testing.T) {
	errs := []error{
		ErrInvalidArgument,
		ErrUninitialized,
		ErrNotFound,
		ErrInvalidFormat,
		ErrSignatureInvalid,
		ErrDecryptFailed,
	}

	for _, err := range errs {
		if !strings.HasPrefix(err.Error(), "hxcontent:") {
			t.Errorf("Error %q should start with 'hxcontent:'", err.Error())
		}
	}
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrNotFound", ErrNotFound, true},
		{"wrapped ErrNotFound", fmt.Errorf("wrapped: %w", ErrNotFound), true},
		{"other error", errors.New("other error"), false},
		{"ErrUninitialized", ErrUninitialized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFound(tt.err); got != tt.expect {
				t.Errorf("IsNotFound(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestIsUsageError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrInvalidArgument", ErrInvalidArgument, true},
		{"ErrUninitialized", ErrUninitialized, true},
		{"wrapped ErrInvalidArgument", fmt.Errorf("%w: container must be a node", ErrInvalidArgument), true},
		{"ErrNotFound", ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUsageError(tt.err); got != tt.expect {
				t.Errorf("IsUsageError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestIsDecryptionError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect bool
	}{
		{"nil error", nil, false},
		{"ErrDecryptFailed", ErrDecryptFailed, true},
		{"ErrSignatureInvalid", ErrSignatureInvalid, true},
		{"wrapped ErrDecryptFailed", fmt.Errorf("wrapped: %w", ErrDecryptFailed), true},
		{"ErrInvalidFormat", ErrInvalidFormat, false},
		{"other error", errors.New("other error"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDecryptionError(tt.err); got != tt.expect {
				t.Errorf("IsDecryptionError(%v) = %v, want %v", tt.err, got, tt.expect)
			}
		})
	}
}

func TestWrapEncodingError(t *testing.T) {
	if wrapEncodingError(nil) != nil {
		t.Error("nil should stay nil")
	}
	other := errors.New("boom")
	if !errors.Is(wrapEncodingError(other), other) {
		t.Error("unknown errors pass through")
	}
}
