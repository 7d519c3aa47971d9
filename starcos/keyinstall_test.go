package starcos

import "testing"

func TestInstallKeyThreeChunks(t *testing.T) {
	tr := &sequenceTransport{resps: [][2]byte{{0x90, 0x00}, {0x90, 0x00}, {0x90, 0x00}, {0x90, 0x00}}}
	h := Init(tr, Options{})
	defer h.Finish()

	var header [12]byte
	key := make([]byte, 260)
	for i := range key {
		key[i] = byte(i)
	}

	if err := h.InstallKey(header, 0x01, KeyInstallNew, key); err != nil {
		t.Fatalf("InstallKey() = %v", err)
	}
	if len(tr.sent) != 4 {
		t.Fatalf("sent %d APDUs, want 4 (1 header + 3 chunks)", len(tr.sent))
	}

	// Lc is the wire length of each command's data field: the header
	// TLV is 14 bytes (C1 0C + 12-byte header); each chunk TLV is
	// 2 (tag+len) + 3 (key_id, offset) + chunk length.
	wantLc := []byte{0x0E, 0x81, 0x81, 0x11} // 14, 5+124, 5+124, 5+12
	for i, apdu := range tr.sent {
		if apdu[4] != wantLc[i] {
			t.Errorf("APDU %d: Lc = %02X, want %02X", i, apdu[4], wantLc[i])
		}
	}
}

func TestInstallKeyAbortsOnFailure(t *testing.T) {
	tr := &sequenceTransport{resps: [][2]byte{{0x90, 0x00}, {0x6F, 0x0A}}}
	h := Init(tr, Options{})
	defer h.Finish()

	var header [12]byte
	key := make([]byte, 200)
	err := h.InstallKey(header, 0x01, KeyInstallNew, key)
	if err == nil {
		t.Fatal("InstallKey() = nil, want error")
	}
	if len(tr.sent) != 2 {
		t.Fatalf("sent %d APDUs, want 2 (abort after first chunk fails)", len(tr.sent))
	}
}

func TestInstallKeyEmptyBytesDoneAfterHeader(t *testing.T) {
	tr := &sequenceTransport{resps: [][2]byte{{0x90, 0x00}}}
	h := Init(tr, Options{})
	defer h.Finish()

	var header [12]byte
	if err := h.InstallKey(header, 0x01, KeyInstallNew, nil); err != nil {
		t.Fatalf("InstallKey() = %v", err)
	}
	if len(tr.sent) != 1 {
		t.Errorf("sent %d APDUs, want 1 (header only)", len(tr.sent))
	}
}
