package starcos

import "github.com/example/starcosdriver/apdu"

// modulusOffset is where the generation-response buffer's modulus
// bytes begin; spec.md §9 open question #3 leaves the bytes before it
// (algorithm tag, exponent) unparsed rather than guessed at.
const modulusOffset = 18

// GenerateKeyPair triggers on-card RSA key-pair generation and reads
// back the public modulus (spec.md §4.9). modulusBits is the
// requested modulus size; the card replies with the modulus in
// little-endian order starting at byte 18 of the read buffer, which
// this function reverses to the big-endian form callers expect.
func (h *CardHandle) GenerateKeyPair(keyID byte, modulusBits int) ([]byte, error) {
	bitsHi, bitsLo, err := checkedU16(modulusBits, "modulus bits")
	if err != nil {
		return nil, err
	}

	resp, err := h.send(apdu.Command{INS: 0x46, P1: 0x00, P2: keyID, Data: []byte{bitsHi, bitsLo}, Le: -1})
	if err != nil {
		return nil, err
	}
	if err := checkSW(resp); err != nil {
		return nil, err
	}

	readResp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xF0, P1: 0x9C, P2: 0x00, Data: []byte{keyID}, Le: 256})
	if err != nil {
		return nil, err
	}
	if err := checkSW(readResp); err != nil {
		return nil, err
	}

	keyLen := modulusBits / 8
	if len(readResp.Data) < modulusOffset+keyLen {
		return nil, newError(ErrCardCommandFailed, "key-pair generation response too short: got %d bytes, need %d", len(readResp.Data), modulusOffset+keyLen)
	}
	le := readResp.Data[modulusOffset : modulusOffset+keyLen]

	modulus := make([]byte, keyLen)
	for i, b := range le {
		modulus[keyLen-1-i] = b
	}
	return modulus, nil
}
