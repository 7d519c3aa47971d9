// Package scenario implements the end-to-end fixtures of spec.md §8
// (S1-S7) against a scripted fake transport, the same role the
// teacher's package testing plays against a real PC/SC reader: both
// drive the driver through an ordered set of named checks and collect
// pass/fail results rather than relying on *testing.T alone.
package scenario

import "fmt"

// Exchange is one scripted request/response pair a fakeTransport will
// match against, in order.
type Exchange struct {
	Want []byte // expected outgoing APDU bytes; nil matches anything
	Resp []byte // bytes to hand back, trailer included
	Err  error
}

// FakeTransport plays back a fixed script of Exchanges and records
// everything actually sent, so a scenario can assert on both the
// driver's final result and the wire traffic it produced.
type FakeTransport struct {
	atr   []byte
	script []Exchange
	pos   int
	Sent  [][]byte
}

// NewFakeTransport builds a transport that reports atr and then plays
// script in order, one Exchange per Transmit call.
func NewFakeTransport(atr []byte, script []Exchange) *FakeTransport {
	return &FakeTransport{atr: atr, script: script}
}

func (f *FakeTransport) ATR() []byte { return f.atr }

// Transmit implements apdu.Transport.
func (f *FakeTransport) Transmit(cmd []byte) ([]byte, error) {
	f.Sent = append(f.Sent, append([]byte(nil), cmd...))
	if f.pos >= len(f.script) {
		return nil, fmt.Errorf("scenario: transport script exhausted after %d exchanges, got extra APDU % X", f.pos, cmd)
	}
	ex := f.script[f.pos]
	f.pos++
	if ex.Want != nil && !bytesEqual(ex.Want, cmd) {
		return nil, fmt.Errorf("scenario: exchange %d: want APDU % X, got % X", f.pos-1, ex.Want, cmd)
	}
	if ex.Err != nil {
		return nil, ex.Err
	}
	return ex.Resp, nil
}

// Exhausted reports whether every scripted exchange was consumed,
// which a scenario checks to catch a driver that short-circuits and
// skips APDUs it should have sent.
func (f *FakeTransport) Exhausted() bool { return f.pos == len(f.script) }

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
