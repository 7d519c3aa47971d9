package starcos

import "testing"

func TestEraseCardTreatsNoMFAsSuccess(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x69, 0x85}}}
	h := Init(tr, Options{})
	defer h.Finish()
	h.cache = locationCache{Valid: true}

	if err := h.EraseCard(); err != nil {
		t.Fatalf("EraseCard() = %v, want nil on 6985", err)
	}
	if h.cache.Valid {
		t.Error("location cache not invalidated after EraseCard()")
	}
}

func TestEraseCardPropagatesOtherErrors(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x6F, 0x81}}}
	h := Init(tr, Options{})
	defer h.Finish()
	h.cache = locationCache{Valid: true}

	if err := h.EraseCard(); err == nil {
		t.Fatal("EraseCard() = nil, want error")
	}
	if h.cache.Valid {
		t.Error("location cache not invalidated even on error")
	}
}

func TestGetSerialCaches(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x01, 0x02, 0x03, 0x90, 0x00}}}
	h := Init(tr, Options{})
	defer h.Finish()

	first, err := h.GetSerial()
	if err != nil {
		t.Fatalf("GetSerial() = %v", err)
	}
	second, err := h.GetSerial()
	if err != nil {
		t.Fatalf("GetSerial() (cached) = %v", err)
	}
	if tr.pos != 1 {
		t.Errorf("APDUs sent = %d, want 1 (second call cached)", tr.pos)
	}
	if string(first) != string(second) {
		t.Errorf("cached serial %X != first serial %X", second, first)
	}
}

func TestLogoutSuppressesErrors(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x6A, 0x82}}}
	h := Init(tr, Options{})
	defer h.Finish()

	if err := h.Logout(); err != nil {
		t.Errorf("Logout() = %v, want nil (errors suppressed)", err)
	}
}

func TestControlDispatch(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x69, 0x85}}}
	h := Init(tr, Options{})
	defer h.Finish()

	res, err := h.Control(ControlRequest{Op: ControlEraseCard})
	if err != nil {
		t.Fatalf("Control(erase) = %v", err)
	}
	if res.Modulus != nil {
		t.Errorf("Control(erase) result = %+v, want empty", res)
	}
}
