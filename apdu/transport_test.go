package apdu

import (
	"bytes"
	"testing"
)

type scriptedTransport struct {
	want []byte
	resp []byte
	err  error
}

func (s *scriptedTransport) ATR() []byte { return nil }

func (s *scriptedTransport) Transmit(apdu []byte) ([]byte, error) {
	if s.want != nil && !bytes.Equal(s.want, apdu) {
		panic("unexpected APDU in test")
	}
	return s.resp, s.err
}

func TestCommandBytes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{"no data no le", Command{CLA: 0x00, INS: 0xA4, P1: 0x00, P2: 0x0C, Le: -1}, []byte{0x00, 0xA4, 0x00, 0x0C}},
		{"data no le", Command{INS: 0xA4, P1: 0x04, P2: 0x0C, Data: []byte{0xA0, 0x00}, Le: -1}, []byte{0x00, 0xA4, 0x04, 0x0C, 0x02, 0xA0, 0x00}},
		{"no data le 256", Command{INS: 0x2A, P1: 0x9E, P2: 0x9A, Le: 256}, []byte{0x00, 0x2A, 0x9E, 0x9A, 0x00}},
		{"le zero appended", Command{INS: 0xB0, P1: 0x00, P2: 0x00, Le: 0}, []byte{0x00, 0xB0, 0x00, 0x00, 0x00}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cmd.Bytes(); !bytes.Equal(got, tc.want) {
				t.Errorf("Bytes() = % X, want % X", got, tc.want)
			}
		})
	}
}

func TestResponse(t *testing.T) {
	r := Response{Data: []byte{0x01}, SW1: 0x90, SW2: 0x00}
	if !r.IsOK() {
		t.Error("IsOK() = false, want true")
	}
	if r.SW() != 0x9000 {
		t.Errorf("SW() = %04X, want 9000", r.SW())
	}
	if r.HasMoreData() {
		t.Error("HasMoreData() = true, want false")
	}

	r2 := Response{SW1: 0x61, SW2: 0x20}
	if !r2.HasMoreData() {
		t.Error("HasMoreData() = false, want true")
	}
}

func TestTransmit(t *testing.T) {
	tr := &scriptedTransport{resp: []byte{0x01, 0x02, 0x90, 0x00}}
	resp, err := Transmit(tr, Command{INS: 0xB0, Le: -1})
	if err != nil {
		t.Fatalf("Transmit() = %v", err)
	}
	if !bytes.Equal(resp.Data, []byte{0x01, 0x02}) {
		t.Errorf("Data = % X, want 01 02", resp.Data)
	}
	if resp.SW() != 0x9000 {
		t.Errorf("SW = %04X, want 9000", resp.SW())
	}
}

func TestTransmitShortResponse(t *testing.T) {
	tr := &scriptedTransport{resp: []byte{0x01}}
	if _, err := Transmit(tr, Command{INS: 0xB0, Le: -1}); err == nil {
		t.Fatal("Transmit() = nil error, want error for 1-byte response")
	}
}

func TestTransmitChained(t *testing.T) {
	tr := &chainedTransport{
		first:  []byte{0x61, 0x10},
		second: []byte{0xAA, 0xBB, 0x90, 0x00},
	}
	resp, err := TransmitChained(tr, Command{INS: 0xA4, Le: -1})
	if err != nil {
		t.Fatalf("TransmitChained() = %v", err)
	}
	if !bytes.Equal(resp.Data, []byte{0xAA, 0xBB}) {
		t.Errorf("Data = % X, want AA BB", resp.Data)
	}
}

type chainedTransport struct {
	first, second []byte
	calls         int
}

func (c *chainedTransport) ATR() []byte { return nil }

func (c *chainedTransport) Transmit(_ []byte) ([]byte, error) {
	c.calls++
	if c.calls == 1 {
		return c.first, nil
	}
	return c.second, nil
}
