package apdu

import (
	"fmt"
	"strings"

	"github.com/moov-io/bertlv"
)

// DecodeTLV parses a BER-TLV byte sequence into a flat list of
// top-level tags, each possibly carrying nested TLVs for constructed
// tags (bit 0x20 of the first tag byte).
func DecodeTLV(data []byte) ([]bertlv.TLV, error) {
	tlvs, err := bertlv.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("apdu: BER-TLV decode: %w", err)
	}
	return tlvs, nil
}

// FindTag searches tlvs (and recursively, any nested constructed
// TLVs) for the first entry whose tag matches, case-insensitively.
func FindTag(tlvs []bertlv.TLV, tag string) (bertlv.TLV, bool) {
	for _, t := range tlvs {
		if strings.EqualFold(t.Tag, tag) {
			return t, true
		}
		if len(t.TLVs) > 0 {
			if found, ok := FindTag(t.TLVs, tag); ok {
				return found, ok
			}
		}
	}
	return bertlv.TLV{}, false
}
