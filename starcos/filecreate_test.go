package starcos

import "testing"

func TestCheckedU16(t *testing.T) {
	tests := []struct {
		name    string
		x       int
		wantHi  byte
		wantLo  byte
		wantErr bool
	}{
		{"zero", 0, 0x00, 0x00, false},
		{"max", 0xFFFF, 0xFF, 0xFF, false},
		{"typical", 0x0080, 0x00, 0x80, false},
		{"negative", -1, 0, 0, true},
		{"overflow", 0x10000, 0, 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hi, lo, err := checkedU16(tc.x, "field")
			if tc.wantErr {
				if err == nil {
					t.Fatal("checkedU16() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("checkedU16() = %v", err)
			}
			if hi != tc.wantHi || lo != tc.wantLo {
				t.Errorf("checkedU16(%d) = (%02X,%02X), want (%02X,%02X)", tc.x, hi, lo, tc.wantHi, tc.wantLo)
			}
		})
	}
}

func TestStructuralDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		fd      *FileDescriptor
		want    [3]byte
		wantErr bool
	}{
		{
			name: "transparent",
			fd:   &FileDescriptor{Structure: StructureTransparent, Size: 128},
			want: [3]byte{0x81, 0x00, 0x80},
		},
		{
			name: "linear fixed",
			fd:   &FileDescriptor{Structure: StructureLinearFixed, RecordCount: 3, RecordLength: 10},
			want: [3]byte{0x82, 0x03, 0x0A},
		},
		{
			name: "cyclic",
			fd:   &FileDescriptor{Structure: StructureCyclic, RecordCount: 4, RecordLength: 5},
			want: [3]byte{0x84, 0x04, 0x05},
		},
		{
			name:    "unknown structure",
			fd:      &FileDescriptor{Structure: StructureUnknown},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := structuralDescriptor(tc.fd)
			if tc.wantErr {
				if err == nil {
					t.Fatal("structuralDescriptor() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("structuralDescriptor() = %v", err)
			}
			if got != tc.want {
				t.Errorf("structuralDescriptor() = % X, want % X", got, tc.want)
			}
		})
	}
}

type sequenceTransport struct {
	resps [][2]byte // SW1, SW2 only; these paths never return data
	pos   int
	sent  [][]byte
}

func (s *sequenceTransport) ATR() []byte { return nil }

func (s *sequenceTransport) Transmit(apdu []byte) ([]byte, error) {
	s.sent = append(s.sent, append([]byte(nil), apdu...))
	r := s.resps[s.pos]
	s.pos++
	return []byte{r[0], r[1]}, nil
}

func TestCreateEF(t *testing.T) {
	tr := &sequenceTransport{resps: [][2]byte{{0x90, 0x00}}}
	h := Init(tr, Options{})
	defer h.Finish()

	fd := &FileDescriptor{
		FileID:    []byte{0x00, 0x05},
		Structure: StructureTransparent,
		Size:      128,
	}
	if err := h.CreateEF(fd); err != nil {
		t.Fatalf("CreateEF() = %v", err)
	}
	if len(tr.sent) != 1 {
		t.Fatalf("sent %d APDUs, want 1", len(tr.sent))
	}
	apdu := tr.sent[0]
	if apdu[0] != vendorCLA || apdu[1] != 0xE0 || apdu[2] != 0x03 {
		t.Errorf("header = % X, want CLA=80 INS=E0 P1=03", apdu[:3])
	}
}

func TestCreateEFBadFileID(t *testing.T) {
	h := Init(&sequenceTransport{}, Options{})
	defer h.Finish()
	err := h.CreateEF(&FileDescriptor{FileID: []byte{0x01}, Structure: StructureTransparent})
	if err == nil {
		t.Fatal("CreateEF(1-byte file-id) = nil, want error")
	}
}

func TestCreateDFSequence(t *testing.T) {
	tr := &sequenceTransport{resps: [][2]byte{{0x90, 0x00}, {0x90, 0x00}}}
	h := Init(tr, Options{})
	defer h.Finish()

	fd := &FileDescriptor{FileID: []byte{0xDF, 0x01}, Size: 1024}
	if err := h.CreateDF(fd); err != nil {
		t.Fatalf("CreateDF() = %v", err)
	}
	if len(tr.sent) != 2 {
		t.Fatalf("sent %d APDUs, want 2 (REGISTER DF, CREATE DF)", len(tr.sent))
	}
	if tr.sent[0][1] != 0x52 {
		t.Errorf("first APDU INS = %02X, want 52 (REGISTER DF)", tr.sent[0][1])
	}
	if tr.sent[1][1] != 0xE0 || tr.sent[1][2] != 0x01 {
		t.Errorf("second APDU = INS %02X P1 %02X, want E0 01 (CREATE DF)", tr.sent[1][1], tr.sent[1][2])
	}
}
