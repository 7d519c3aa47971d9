package apdu

import "testing"

func TestDecodeATR(t *testing.T) {
	// 3B B7 94 00 C0 24 31 FE 65 53 50 4B 32 33 90 00 B4
	atr := []byte{0x3B, 0xB7, 0x94, 0x00, 0xC0, 0x24, 0x31, 0xFE, 0x65, 0x53, 0x50, 0x4B, 0x32, 0x33, 0x90, 0x00, 0xB4}
	info, err := DecodeATR(atr)
	if err != nil {
		t.Fatalf("DecodeATR() = %v", err)
	}
	if info.TS != 0x3B {
		t.Errorf("TS = %02X, want 3B", info.TS)
	}
	if info.T0 != 0xB7 {
		t.Errorf("T0 = %02X, want B7", info.T0)
	}
	if len(info.Raw) != len(atr) {
		t.Errorf("Raw length = %d, want %d", len(info.Raw), len(atr))
	}
}

func TestDecodeATRTooShort(t *testing.T) {
	if _, err := DecodeATR([]byte{0x3B}); err == nil {
		t.Fatal("DecodeATR(1 byte) = nil error, want error")
	}
}
