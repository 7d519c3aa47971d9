package apdu

import "fmt"

// Kind is the base ISO 7816-4 classification of a status word. Driver
// packages refine this further (vendor tables, PIN counters) before
// falling back to these generic buckets.
type Kind int

const (
	KindOK Kind = iota
	KindMoreData
	KindWrongLength
	KindWarning
	KindExecutionError
	KindCheckingError
	KindUnknown
)

// Classify buckets an arbitrary status word using only the generic
// ISO 7816-4 ranges (6.1, Table 5 of the standard). It never looks at
// any vendor table; that is the card driver's job.
func Classify(sw uint16) Kind {
	sw1 := byte(sw >> 8)
	switch {
	case sw == 0x9000:
		return KindOK
	case sw1 == 0x61:
		return KindMoreData
	case sw1 == 0x6C:
		return KindWrongLength
	case sw1 == 0x62 || sw1 == 0x63:
		return KindWarning
	case sw1 == 0x64 || sw1 == 0x65 || sw1 == 0x66:
		return KindExecutionError
	case sw1 >= 0x68 && sw1 <= 0x6F:
		return KindCheckingError
	default:
		return KindUnknown
	}
}

// String renders a human-readable label for a status word, covering
// the dynamic ranges (61xx/6Cxx/63Cx) the way ISO 7816-4 defines them.
func String(sw uint16) string {
	sw1 := byte(sw >> 8)
	sw2 := byte(sw)
	switch {
	case sw == 0x9000:
		return "success"
	case sw1 == 0x61:
		return fmt.Sprintf("%d bytes available", sw2)
	case sw1 == 0x6C:
		return fmt.Sprintf("wrong length, correct Le=%d", sw2)
	case sw1 == 0x63 && sw2&0xF0 == 0xC0:
		return fmt.Sprintf("counter = %d", sw2&0x0F)
	default:
		return fmt.Sprintf("SW=%04X", sw)
	}
}
