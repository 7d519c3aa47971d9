package starcos

import (
	"github.com/example/starcosdriver/apdu"
)

// DecodeFCI implements process_fci (spec.md §4.2): parse the BER-TLV
// file-control information a SELECT returns and populate a
// FileDescriptor's size/structure fields. The caller fills in
// FileID/Kind separately (the navigator already knows those).
func DecodeFCI(data []byte, fd *FileDescriptor) error {
	if len(data) < 2 {
		return newError(ErrInvalidArguments, "FCI buffer too short: %d bytes", len(data))
	}
	if data[0] != 0x6F {
		return newError(ErrInvalidArguments, "FCI does not start with tag 0x6F, got %02X", data[0])
	}

	tlvs, err := apdu.DecodeTLV(data)
	if err != nil {
		return newError(ErrInvalidArguments, "%v", err)
	}

	root, ok := apdu.FindTag(tlvs, "6F")
	if !ok {
		return newError(ErrInvalidArguments, "FCI template tag 0x6F not found after decode")
	}
	inner := root.TLVs

	fd.Kind = KindEF
	fd.Structure = StructureUnknown

	var size int
	if size80, ok := apdu.FindTag(inner, "80"); ok && len(size80.Value) >= 2 {
		size = beUint(size80.Value)
		fd.Size = size
	}

	tag82, ok := apdu.FindTag(inner, "82")
	if !ok {
		// Missing 0x82: default to working EF, structure unknown.
		return nil
	}
	v := tag82.Value

	switch len(v) {
	case 1:
		switch v[0] {
		case 0x01:
			fd.Structure = StructureTransparent
		case 0x11:
			// "Object EF": exposed as transparent for reads per open
			// question #2; flagged for higher layers.
			fd.Structure = StructureTransparent
			fd.ObjectEF = true
		default:
			return newError(ErrInvalidArguments, "unrecognized 1-byte file descriptor 0x%02X", v[0])
		}
	case 3:
		if v[1] != 0x21 {
			return newError(ErrInvalidArguments, "unrecognized 3-byte file descriptor class byte 0x%02X", v[1])
		}
		switch v[0] {
		case 0x02:
			fd.Structure = StructureLinearFixed
		case 0x07:
			fd.Structure = StructureCyclic
		case 0x17:
			fd.Structure = StructureComputeService
		default:
			return newError(ErrInvalidArguments, "unrecognized record structure byte 0x%02X", v[0])
		}
		fd.RecordLength = int(v[2])
		if fd.RecordLength > 0 && size > 0 {
			fd.RecordCount = size / fd.RecordLength
		}
	default:
		return newError(ErrInvalidArguments, "unexpected file descriptor length %d", len(v))
	}

	return nil
}

func beUint(b []byte) int {
	n := 0
	for _, x := range b {
		n = n<<8 | int(x)
	}
	return n
}
