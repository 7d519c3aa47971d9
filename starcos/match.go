package starcos

import "bytes"

// CardName is the name this driver reports once it matches an ATR.
const CardName = "STARCOS SPK 2.3"

// Match carries the outcome of matching an ATR against this driver's
// card table (spec.md §6).
type Match struct {
	Name        string
	CLA         byte
	MaxSendSize int
	MaxRecvSize int
}

// atrTable lists the two ATRs documented in spec.md §6, in raw bytes.
var atrTable = [][]byte{
	{0x3B, 0xB7, 0x94, 0x00, 0xC0, 0x24, 0x31, 0xFE, 0x65, 0x53, 0x50, 0x4B, 0x32, 0x33, 0x90, 0x00, 0xB4},
	{0x3B, 0xB7, 0x94, 0x00, 0x81, 0x31, 0xFE, 0x65, 0x53, 0x50, 0x4B, 0x32, 0x33, 0x90, 0x00, 0xD1},
}

// MatchATR reports whether atr belongs to a STARCOS SPK 2.3 card. A
// mismatch is not an error: the caller tries the next driver.
func MatchATR(atr []byte) (Match, bool) {
	for _, candidate := range atrTable {
		if bytes.Equal(atr, candidate) {
			return Match{
				Name:        CardName,
				CLA:         0x00,
				MaxSendSize: 128,
				MaxRecvSize: 128,
			}, true
		}
	}
	return Match{}, false
}
