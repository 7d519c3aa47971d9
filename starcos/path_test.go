package starcos

import (
	"bytes"
	"testing"

	"github.com/example/starcosdriver/apdu"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name    string
		path    []byte
		want    []byte
		wantErr bool
	}{
		{"already prefixed", []byte{0x3F, 0x00, 0xDF, 0x01}, []byte{0x3F, 0x00, 0xDF, 0x01}, false},
		{"auto-prefix", []byte{0xDF, 0x01}, []byte{0x3F, 0x00, 0xDF, 0x01}, false},
		{"bare MF", []byte{0x3F, 0x00}, []byte{0x3F, 0x00}, false},
		{"odd length", []byte{0x3F, 0x00, 0x01}, nil, true},
		{"too long", []byte{0x3F, 0x00, 0xDF, 0x01, 0xEF, 0x05, 0xAB, 0xCD}, nil, true},
		{"6 bytes not MF-rooted", []byte{0xDF, 0x01, 0xDF, 0x02, 0xEF, 0x05}, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizePath(tc.path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("NormalizePath() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizePath() = %v, want nil", err)
			}
			if !bytes.Equal(got, tc.want) {
				t.Errorf("NormalizePath() = % X, want % X", got, tc.want)
			}
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	paths := [][]byte{
		{0xDF, 0x01},
		{0x3F, 0x00, 0xDF, 0x01, 0xEF, 0x05},
		{0x3F, 0x00},
	}
	for _, p := range paths {
		once, err := NormalizePath(p)
		if err != nil {
			t.Fatalf("NormalizePath(% X) = %v", p, err)
		}
		twice, err := NormalizePath(once)
		if err != nil {
			t.Fatalf("NormalizePath(NormalizePath(% X)) = %v", p, err)
		}
		if !bytes.Equal(once, twice) {
			t.Errorf("normalize not idempotent for % X: %X vs %X", p, once, twice)
		}
	}
}

func TestCommonPrefixPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want int
	}{
		{"identical", []byte{0x3F, 0x00, 0xDF, 0x01}, []byte{0x3F, 0x00, 0xDF, 0x01}, 4},
		{"partial", []byte{0x3F, 0x00, 0xDF, 0x01}, []byte{0x3F, 0x00, 0xDF, 0x02}, 2},
		{"none", []byte{0xAA, 0xBB}, []byte{0x3F, 0x00}, 0},
		{"b shorter", []byte{0x3F, 0x00, 0xDF, 0x01}, []byte{0x3F, 0x00}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := commonPrefixPairs(tc.a, tc.b); got != tc.want {
				t.Errorf("commonPrefixPairs(% X, % X) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

// fakeTransport plays a fixed script of responses, ignoring the
// request bytes; used where path_test.go only needs to drive the
// state machine, not assert on wire traffic (see package scenario for
// traffic-asserting fixtures).
type fakeTransport struct {
	resps [][]byte
	pos   int
}

func (f *fakeTransport) ATR() []byte { return nil }

func (f *fakeTransport) Transmit(_ []byte) ([]byte, error) {
	r := f.resps[f.pos]
	f.pos++
	return r, nil
}

func TestSelectFileCacheCoherence(t *testing.T) {
	// First select of DF01 under MF: SELECT P2=00 -> 6284, re-issue P2=0C -> 9000.
	ft := &fakeTransport{resps: [][]byte{{0x62, 0x84}, {0x90, 0x00}}}
	h := Init(ft, Options{})
	defer h.Finish()

	fd1, err := h.SelectFile(Selector{Path: []byte{0xDF, 0x01}})
	if err != nil {
		t.Fatalf("first select: %v", err)
	}
	if fd1.Kind != KindDF {
		t.Fatalf("first select: Kind = %v, want DF", fd1.Kind)
	}

	before := ft.pos
	fd2, err := h.SelectFile(Selector{Path: []byte{0xDF, 0x01}})
	if err != nil {
		t.Fatalf("second select: %v", err)
	}
	if ft.pos != before {
		t.Errorf("second select issued %d APDUs, want 0 (cache hit)", ft.pos-before)
	}
	if !bytes.Equal(fd2.FileID, fd1.FileID) || fd2.Kind != fd1.Kind {
		t.Errorf("cached descriptor %+v does not match original %+v", fd2, fd1)
	}
}

func TestSelectFileInvalidSelector(t *testing.T) {
	h := Init(&fakeTransport{}, Options{})
	defer h.Finish()

	_, err := h.SelectFile(Selector{})
	if err == nil {
		t.Fatal("SelectFile(empty selector) = nil, want error")
	}
}

var _ apdu.Transport = (*fakeTransport)(nil)
