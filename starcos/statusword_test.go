package starcos

import (
	"testing"

	"github.com/example/starcosdriver/apdu"
)

func TestClassifySW(t *testing.T) {
	tests := []struct {
		name           string
		sw1, sw2       byte
		wantKind       ErrorKind
		wantRemaining  int
	}{
		{"success", 0x90, 0x00, ErrInternal, 0},
		{"pin failure 2 tries", 0x63, 0xC2, ErrPINCodeIncorrect, 2},
		{"pin blocked", 0x63, 0xC0, ErrPINCodeIncorrect, 0},
		{"vendor file exists", 0x6A, 0x89, ErrFileAlreadyExists, 0},
		{"vendor signature failed", 0x6F, 0x08, ErrCardCommandFailed, 0},
		{"vendor key part not found", 0x6F, 0x07, ErrFileNotFound, 0},
		{"iso fallback checking error", 0x69, 0x82, ErrNotAllowed, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := ClassifySW(tc.sw1, tc.sw2)
			if c.Kind != tc.wantKind {
				t.Errorf("Kind = %v, want %v", c.Kind, tc.wantKind)
			}
			if c.RemainingTries != tc.wantRemaining {
				t.Errorf("RemainingTries = %d, want %d", c.RemainingTries, tc.wantRemaining)
			}
		})
	}
}

func TestCheckSW(t *testing.T) {
	if err := checkSW(apdu.Response{SW1: 0x90, SW2: 0x00}); err != nil {
		t.Errorf("checkSW(9000) = %v, want nil", err)
	}
	if err := checkSW(apdu.Response{SW1: 0x61, SW2: 0x10}); err != nil {
		t.Errorf("checkSW(61xx) = %v, want nil", err)
	}
	err := checkSW(apdu.Response{SW1: 0x6A, SW2: 0x89})
	if err == nil {
		t.Fatal("checkSW(6A89) = nil, want error")
	}
	serr, ok := err.(*Error)
	if !ok || serr.Kind != ErrFileAlreadyExists {
		t.Errorf("checkSW(6A89) = %v, want *Error with Kind=file_already_exists", err)
	}
}
