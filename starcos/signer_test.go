package starcos

import (
	"bytes"
	"testing"
)

func TestSignNativePath(t *testing.T) {
	sig := bytes.Repeat([]byte{0xEE}, 64)
	tr := &dataTransport{resps: [][]byte{
		{0x90, 0x00},
		append(append([]byte(nil), sig...), 0x90, 0x00),
	}}
	h := Init(tr, Options{})
	defer h.Finish()
	h.crypt = cryptoEnv{Pending: pendingSignNative}

	hash := bytes.Repeat([]byte{0x11}, 20)
	got, err := h.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() = %v", err)
	}
	if !bytes.Equal(got, sig) {
		t.Errorf("Sign() = % X, want % X", got, sig)
	}
	if h.crypt.Pending != pendingNone {
		t.Error("crypt not cleared after Sign()")
	}
}

func TestSignByAuthenticatePath(t *testing.T) {
	sig := bytes.Repeat([]byte{0xFF}, 64)
	tr := &dataTransport{resps: [][]byte{
		append(append([]byte(nil), sig...), 0x90, 0x00),
	}}
	h := Init(tr, Options{})
	defer h.Finish()
	h.crypt = cryptoEnv{Pending: pendingSignByAuthenticate, Hash: HashSHA1}

	hash := bytes.Repeat([]byte{0x22}, 20)
	got, err := h.Sign(hash)
	if err != nil {
		t.Fatalf("Sign() = %v", err)
	}
	if !bytes.Equal(got, sig) {
		t.Errorf("Sign() = % X, want % X", got, sig)
	}
}

func TestSignWithoutNegotiation(t *testing.T) {
	h := Init(&dataTransport{}, Options{})
	defer h.Finish()
	if _, err := h.Sign([]byte{0x01}); err == nil {
		t.Fatal("Sign() without Negotiate = nil, want error")
	}
}

func TestSignClearsCryptoEnvOnFailure(t *testing.T) {
	tr := &dataTransport{resps: [][]byte{{0x6F, 0x08}}} // signature failed
	h := Init(tr, Options{})
	defer h.Finish()
	h.crypt = cryptoEnv{Pending: pendingSignNative}

	if _, err := h.Sign(bytes.Repeat([]byte{0x01}, 20)); err == nil {
		t.Fatal("Sign() = nil error, want error")
	}
	if h.crypt.Pending != pendingNone {
		t.Error("crypt not cleared after Sign() failure")
	}
}

func TestSignInputTooLarge(t *testing.T) {
	h := Init(&dataTransport{}, Options{})
	defer h.Finish()
	h.crypt = cryptoEnv{Pending: pendingSignNative}
	big := make([]byte, h.opts.MaxSendSize+1)
	if _, err := h.Sign(big); err == nil {
		t.Fatal("Sign(oversized input) = nil error, want error")
	}
}

// dataTransport plays back raw response byte slices (trailer
// included) in order, ignoring outgoing APDU content.
type dataTransport struct {
	resps [][]byte
	pos   int
}

func (d *dataTransport) ATR() []byte { return nil }

func (d *dataTransport) Transmit(_ []byte) ([]byte, error) {
	r := d.resps[d.pos]
	d.pos++
	return r, nil
}
