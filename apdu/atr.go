package apdu

import "fmt"

// ATRInfo is a decoded Answer-To-Reset, used for diagnostics (the
// `starcosctl atr` subcommand prints it); card matching itself
// compares raw bytes, see starcos.MatchATR.
type ATRInfo struct {
	Raw       []byte
	TS        byte
	T0        byte
	TA, TB    map[int]byte
	TC, TD    map[int]byte
	HB        []byte
	TCK       *byte
	Protocols []int
}

// DecodeATR parses the structural fields of a raw ATR. It does not
// fail on unusual cards; it decodes as much as the byte count allows.
func DecodeATR(atr []byte) (*ATRInfo, error) {
	if len(atr) < 2 {
		return nil, fmt.Errorf("apdu: ATR too short: %d bytes", len(atr))
	}

	info := &ATRInfo{
		Raw: atr, TS: atr[0], T0: atr[1],
		TA: map[int]byte{}, TB: map[int]byte{}, TC: map[int]byte{}, TD: map[int]byte{},
	}

	hbLen := int(info.T0 & 0x0F)
	ptr, pn, td := 2, 1, info.T0

	for ptr < len(atr) {
		if td&0x10 != 0 {
			if ptr >= len(atr) {
				break
			}
			info.TA[pn] = atr[ptr]
			ptr++
		}
		if td&0x20 != 0 {
			if ptr >= len(atr) {
				break
			}
			info.TB[pn] = atr[ptr]
			ptr++
		}
		if td&0x40 != 0 {
			if ptr >= len(atr) {
				break
			}
			info.TC[pn] = atr[ptr]
			ptr++
		}
		if td&0x80 != 0 {
			if ptr >= len(atr) {
				break
			}
			td = atr[ptr]
			info.TD[pn] = td
			info.Protocols = append(info.Protocols, int(td&0x0F))
			ptr++
			pn++
		} else {
			break
		}
	}

	if ptr+hbLen <= len(atr) {
		info.HB = atr[ptr : ptr+hbLen]
		ptr += hbLen
	} else if ptr < len(atr) {
		info.HB = atr[ptr:]
		ptr = len(atr)
	}
	if ptr < len(atr) {
		info.TCK = &atr[ptr]
	}

	return info, nil
}
