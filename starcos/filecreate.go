package starcos

import "github.com/example/starcosdriver/apdu"

// vendorCLA is the proprietary class byte STARCOS reserves for the
// file-creation, key-installation and card-control command family
// (spec.md §4.5, §4.8, §6).
const vendorCLA = 0x80

func checkedU16(x int, field string) (hi, lo byte, err error) {
	if x < 0 || x > 0xFFFF {
		return 0, 0, newError(ErrInvalidArguments, "%s (%d) does not fit in 16 bits", field, x)
	}
	return byte(x >> 8), byte(x), nil
}

func checkedU8(x int, field string) (byte, error) {
	if x < 0 || x > 0xFF {
		return 0, newError(ErrInvalidArguments, "%s (%d) does not fit in 8 bits", field, x)
	}
	return byte(x), nil
}

// CreateMF assembles and emits the 19-byte MF header (spec.md §4.5)
// and issues CREATE MF (vendor CLA, INS=0xE0, P1=0x00).
func (h *CardHandle) CreateMF(fd *FileDescriptor) error {
	sizeHi, sizeLo, err := checkedU16(fd.Size, "MF size")
	if err != nil {
		return err
	}
	isf := fd.Size / 4
	isfHi, isfLo, err := checkedU16(isf, "ISF size estimate")
	if err != nil {
		return err
	}

	acCreateEF := ACLByte(resolveACL(fd, OpCreateEF, h.opts.DefaultACL))
	acCreateKey := ACLByte(resolveACL(fd, OpCreateKey, h.opts.DefaultACL))
	acCreateDF := ACLByte(resolveACL(fd, OpCreateDF, h.opts.DefaultACL))
	acRegisterDF := acCreateDF // spec.md §4.5: AC-register-DF "(same as AC-create-DF)"

	sm := smByte(
		resolveACL(fd, OpCreateEF, h.opts.DefaultACL),
		resolveACL(fd, OpCreateKey, h.opts.DefaultACL),
		resolveACL(fd, OpCreateDF, h.opts.DefaultACL),
		resolveACL(fd, OpRegisterDF, h.opts.DefaultACL),
	)

	header := make([]byte, 19)
	copy(header[0:8], []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})
	header[8], header[9] = sizeHi, sizeLo
	header[10], header[11] = isfHi, isfLo
	header[12] = acCreateEF
	header[13] = acCreateKey
	header[14] = acCreateDF
	header[15] = acRegisterDF
	header[16], header[17], header[18] = sm, sm, sm

	resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xE0, P1: 0x00, Data: header, Le: -1})
	if err != nil {
		return err
	}
	return checkSW(resp)
}

// CreateDF emits the proprietary two-step REGISTER DF / CREATE DF
// sequence (spec.md §4.5). Call CreateEnd afterward to activate it.
func (h *CardHandle) CreateDF(fd *FileDescriptor) error {
	if len(fd.FileID) != 2 {
		return newError(ErrInvalidArguments, "DF file-id must be 2 bytes, got %d", len(fd.FileID))
	}
	if len(fd.AID) > 16 {
		return newError(ErrInvalidArguments, "DF AID length %d exceeds 16 bytes", len(fd.AID))
	}

	aidLen := len(fd.AID)
	aidField := make([]byte, 16)
	if aidLen == 0 {
		// "fid repeated if namelen==0"
		copy(aidField[0:2], fd.FileID)
	} else {
		copy(aidField, fd.AID)
	}

	isf := fd.Size / 4
	isfHi, isfLo, err := checkedU16(isf, "ISF size estimate")
	if err != nil {
		return err
	}
	acCreateEF := ACLByte(resolveACL(fd, OpCreateEF, h.opts.DefaultACL))
	acCreateKey := ACLByte(resolveACL(fd, OpCreateKey, h.opts.DefaultACL))
	sm := smByte(resolveACL(fd, OpCreateEF, h.opts.DefaultACL), resolveACL(fd, OpCreateKey, h.opts.DefaultACL))

	header := make([]byte, 25)
	copy(header[0:2], fd.FileID)
	header[2] = byte(aidLen)
	copy(header[3:19], aidField)
	header[19], header[20] = isfHi, isfLo
	header[21] = acCreateEF
	header[22] = acCreateKey
	header[23], header[24] = sm, sm

	sizeHi, sizeLo, err := checkedU16(fd.Size, "DF size")
	if err != nil {
		return err
	}

	registerData := header[0 : 3+aidLen]
	regResp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0x52, P1: sizeHi, P2: sizeLo, Data: registerData, Le: -1})
	if err != nil {
		return err
	}
	if err := checkSW(regResp); err != nil {
		return err
	}

	createResp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xE0, P1: 0x01, Data: header, Le: -1})
	if err != nil {
		return err
	}
	return checkSW(createResp)
}

// structuralDescriptor builds the 3-byte tail of the EF header per
// the file's structure (spec.md §4.5).
func structuralDescriptor(fd *FileDescriptor) ([3]byte, error) {
	switch fd.Structure {
	case StructureTransparent:
		hi, lo, err := checkedU16(fd.Size, "EF size")
		if err != nil {
			return [3]byte{}, err
		}
		return [3]byte{0x81, hi, lo}, nil
	case StructureLinearFixed, StructureCyclic:
		count, err := checkedU8(fd.RecordCount, "record count")
		if err != nil {
			return [3]byte{}, err
		}
		length, err := checkedU8(fd.RecordLength, "record length")
		if err != nil {
			return [3]byte{}, err
		}
		tag := byte(0x82)
		if fd.Structure == StructureCyclic {
			tag = 0x84
		}
		return [3]byte{tag, count, length}, nil
	default:
		return [3]byte{}, newError(ErrInvalidArguments, "unsupported EF structure %v", fd.Structure)
	}
}

// CreateEF emits the 16-byte EF header and issues CREATE EF (vendor
// CLA, INS=0xE0, P1=0x03) (spec.md §4.5).
func (h *CardHandle) CreateEF(fd *FileDescriptor) error {
	if len(fd.FileID) != 2 {
		return newError(ErrInvalidArguments, "EF file-id must be 2 bytes, got %d", len(fd.FileID))
	}
	structDesc, err := structuralDescriptor(fd)
	if err != nil {
		return err
	}

	acRead := ACLByte(resolveACL(fd, OpRead, h.opts.DefaultACL))
	acWrite := ACLByte(resolveACL(fd, OpWrite, h.opts.DefaultACL))
	acErase := ACLByte(resolveACL(fd, OpErase, h.opts.DefaultACL))
	sm := smByte(
		resolveACL(fd, OpRead, h.opts.DefaultACL),
		resolveACL(fd, OpWrite, h.opts.DefaultACL),
		resolveACL(fd, OpErase, h.opts.DefaultACL),
	)

	sid := byte(0x00) // "use low 5 bits of FID"

	header := make([]byte, 16)
	copy(header[0:2], fd.FileID)
	header[2] = acRead
	header[3] = acWrite
	header[4] = acErase
	header[5], header[6], header[7], header[8] = 0x9F, 0x9F, 0x9F, 0x9F // LOCK/UNLOCK/INCREASE/DECREASE forced ALWAYS
	header[9], header[10] = 0x00, 0x00                                 // RFU
	header[11] = sm
	header[12] = sid
	header[13], header[14], header[15] = structDesc[0], structDesc[1], structDesc[2]

	resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xE0, P1: 0x03, Data: header, Le: -1})
	if err != nil {
		return err
	}
	return checkSW(resp)
}

// CreateEnd activates the ACL of a just-created MF or DF (spec.md
// §4.5). Omitting it leaves the container inactive.
func (h *CardHandle) CreateEnd(fileID []byte) error {
	if len(fileID) != 2 {
		return newError(ErrInvalidArguments, "file-id must be 2 bytes, got %d", len(fileID))
	}
	resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xE0, P1: 0x02, Data: fileID, Le: -1})
	if err != nil {
		return err
	}
	return checkSW(resp)
}
