package starcos

import "github.com/example/starcosdriver/apdu"

// Classification is the result of running a status word through the
// STARCOS classifier (spec.md §4.1).
type Classification struct {
	Kind           ErrorKind
	SW             uint16
	Text           string
	RemainingTries int // only set for ErrPINCodeIncorrect
}

// OK reports whether the classification represents success.
func (c Classification) OK() bool { return c.SW == 0x9000 }

// vendorEntry is one row of the 14-entry STARCOS status-word table
// (spec.md §6).
type vendorEntry struct {
	text string
	kind ErrorKind
}

var vendorTable = map[uint16]vendorEntry{
	0x6600: {"error setting security environment", ErrIncorrectParameters},
	0x66F0: {"no space left for padding", ErrIncorrectParameters},
	0x69F0: {"command not allowed", ErrNotAllowed},
	0x6A89: {"file exists", ErrFileAlreadyExists},
	0x6A8A: {"application exists", ErrFileAlreadyExists},
	0x6F01: {"public key not complete", ErrCardCommandFailed},
	0x6F02: {"data overflow", ErrCardCommandFailed},
	0x6F03: {"invalid command sequence", ErrCardCommandFailed},
	0x6F05: {"security environment invalid", ErrCardCommandFailed},
	0x6F07: {"key part not found", ErrFileNotFound},
	0x6F08: {"signature failed", ErrCardCommandFailed},
	0x6F0A: {"key format does not match length", ErrIncorrectParameters},
	0x6F0B: {"key-component length does not match algorithm", ErrIncorrectParameters},
	0x6F81: {"system error", ErrCardCommandFailed},
}

// ClassifySW implements the STARCOS status-word classifier of
// spec.md §4.1: OK, PIN failure (with remaining-tries), the 14-entry
// vendor table, then fall through to the generic ISO 7816-4 buckets.
func ClassifySW(sw1, sw2 byte) Classification {
	sw := uint16(sw1)<<8 | uint16(sw2)

	if sw1 == 0x90 {
		return Classification{Kind: ErrInternal, SW: sw, Text: "success"}
	}
	if sw1 == 0x63 && sw2&0xF0 == 0xC0 {
		return Classification{
			Kind:           ErrPINCodeIncorrect,
			SW:             sw,
			Text:           "PIN verification failed",
			RemainingTries: int(sw2 & 0x0F),
		}
	}
	if entry, ok := vendorTable[sw]; ok {
		return Classification{Kind: entry.kind, SW: sw, Text: entry.text}
	}

	// ISO fallback: map the generic ranges onto our error kinds so
	// every status word produces a usable Classification.
	switch apdu.Classify(sw) {
	case apdu.KindOK, apdu.KindMoreData:
		return Classification{Kind: ErrInternal, SW: sw, Text: apdu.String(sw)}
	case apdu.KindCheckingError:
		return Classification{Kind: ErrNotAllowed, SW: sw, Text: apdu.String(sw)}
	default:
		return Classification{Kind: ErrCardCommandFailed, SW: sw, Text: apdu.String(sw)}
	}
}

// checkSW runs ClassifySW and turns anything other than 9000/61xx
// into a *Error.
func checkSW(resp apdu.Response) error {
	if resp.IsOK() || resp.HasMoreData() {
		return nil
	}
	c := ClassifySW(resp.SW1, resp.SW2)
	return &Error{Kind: c.Kind, SW: c.SW, RemainingTries: c.RemainingTries, msg: c.Text}
}
