package starcos

import "github.com/example/starcosdriver/apdu"

const maxKeyChunk = 124

// KeyInstallMode selects install vs. a later update of an already
// installed key (spec.md §4.8).
type KeyInstallMode int

const (
	KeyInstallNew    KeyInstallMode = 0
	KeyInstallUpdate KeyInstallMode = 1
)

// InstallKey implements the segmented key-installation protocol of
// spec.md §4.8: a header APDU, then the key material in chunks of at
// most 124 bytes. The first failing response aborts the operation and
// no further chunks are sent; chunks already written are not rolled
// back.
func (h *CardHandle) InstallKey(header [12]byte, keyID byte, mode KeyInstallMode, keyBytes []byte) error {
	if mode == KeyInstallNew {
		data := make([]byte, 0, 14)
		data = append(data, 0xC1, 0x0C)
		data = append(data, header[:]...)
		resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xF4, P1: 0x00, P2: 0x00, Data: data, Le: -1})
		if err != nil {
			return err
		}
		if err := checkSW(resp); err != nil {
			return err
		}
		if len(keyBytes) == 0 {
			return nil
		}
	}

	offset := 0
	for offset < len(keyBytes) {
		n := len(keyBytes) - offset
		if n > maxKeyChunk {
			n = maxKeyChunk
		}
		chunk := keyBytes[offset : offset+n]

		tlv := make([]byte, 0, 2+3+n)
		tlv = append(tlv, 0xC2, byte(3+n))
		tlv = append(tlv, keyID, byte(offset>>8), byte(offset))
		tlv = append(tlv, chunk...)

		resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xF4, P1: byte(mode), P2: 0x00, Data: tlv, Le: -1})
		if err != nil {
			return err
		}
		if err := checkSW(resp); err != nil {
			return err
		}
		offset += n
	}
	return nil
}
