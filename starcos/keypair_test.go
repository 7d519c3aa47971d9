package starcos

import "testing"

func TestGenerateKeyPairReversesByteOrder(t *testing.T) {
	keyLen := 64 // 512-bit modulus
	little := make([]byte, keyLen)
	for i := range little {
		little[i] = byte(i + 1)
	}
	buf := make([]byte, modulusOffset+keyLen)
	copy(buf[modulusOffset:], little)
	resp := append(append([]byte(nil), buf...), 0x90, 0x00)

	tr := &dataTransport{resps: [][]byte{{0x90, 0x00}, resp}}
	h := Init(tr, Options{})
	defer h.Finish()

	modulus, err := h.GenerateKeyPair(0x01, keyLen*8)
	if err != nil {
		t.Fatalf("GenerateKeyPair() = %v", err)
	}
	if len(modulus) != keyLen {
		t.Fatalf("modulus length = %d, want %d", len(modulus), keyLen)
	}
	for i := 0; i < keyLen; i++ {
		if modulus[i] != little[keyLen-1-i] {
			t.Fatalf("modulus[%d] = %02X, want %02X (byte order not reversed)", i, modulus[i], little[keyLen-1-i])
		}
	}
}

func TestGenerateKeyPairShortResponse(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x90, 0x00}, {0x01, 0x02, 0x90, 0x00}}}
	h := Init(tr, Options{})
	defer h.Finish()

	if _, err := h.GenerateKeyPair(0x01, 512); err == nil {
		t.Fatal("GenerateKeyPair() = nil error, want error for short response")
	}
}

func TestGenerateKeyPairTriggerFailure(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x6A, 0x80}}}
	h := Init(tr, Options{})
	defer h.Finish()

	if _, err := h.GenerateKeyPair(0x01, 512); err == nil {
		t.Fatal("GenerateKeyPair() = nil error, want error when trigger fails")
	}
}
