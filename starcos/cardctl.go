package starcos

import "github.com/example/starcosdriver/apdu"

// mf3F00 is the 2-byte MF identifier as used in erase-card and logout
// data fields (spec.md §6).
var mf3F00 = []byte{0x3F, 0x00}

// ControlOp tags a request to the card-control multiplexer (spec.md
// §6): "caller supplies a tagged request".
type ControlOp int

const (
	ControlCreateMF ControlOp = iota
	ControlCreateDF
	ControlCreateEF
	ControlCreateEnd
	ControlWriteKey
	ControlGenerateKey
	ControlEraseCard
	ControlGetSerial
)

// ControlRequest is the tagged payload the multiplexer dispatches on;
// only the fields relevant to Op need be set.
type ControlRequest struct {
	Op ControlOp

	File   *FileDescriptor // ControlCreateMF / ControlCreateDF / ControlCreateEF
	FileID []byte          // ControlCreateEnd

	KeyHeader [12]byte       // ControlWriteKey
	KeyID     byte           // ControlWriteKey / ControlGenerateKey
	Mode      KeyInstallMode // ControlWriteKey
	KeyBytes  []byte         // ControlWriteKey

	ModulusBits int // ControlGenerateKey
}

// ControlResult carries the outputs control operations can produce:
// the generated modulus or the card serial.
type ControlResult struct {
	Modulus []byte
	Serial  []byte
}

// Control dispatches one tagged control-operation request (spec.md
// §6). It is the single entry point host middleware needs for the
// create/write-key/generate-key/erase-card/get-serial family.
func (h *CardHandle) Control(req ControlRequest) (ControlResult, error) {
	switch req.Op {
	case ControlCreateMF:
		return ControlResult{}, h.CreateMF(req.File)
	case ControlCreateDF:
		return ControlResult{}, h.CreateDF(req.File)
	case ControlCreateEF:
		return ControlResult{}, h.CreateEF(req.File)
	case ControlCreateEnd:
		return ControlResult{}, h.CreateEnd(req.FileID)
	case ControlWriteKey:
		return ControlResult{}, h.InstallKey(req.KeyHeader, req.KeyID, req.Mode, req.KeyBytes)
	case ControlGenerateKey:
		modulus, err := h.GenerateKeyPair(req.KeyID, req.ModulusBits)
		return ControlResult{Modulus: modulus}, err
	case ControlEraseCard:
		return ControlResult{}, h.EraseCard()
	case ControlGetSerial:
		serial, err := h.GetSerial()
		return ControlResult{Serial: serial}, err
	default:
		return ControlResult{}, newError(ErrInvalidArguments, "unknown control operation %v", req.Op)
	}
}

// EraseCard implements spec.md §6's erase-card operation: a `6985`
// reply (no MF present) is treated as success, since the end state —
// no MF — is what the caller wanted either way. The location cache is
// invalidated unconditionally, success or not, because the card's
// file-system shape is no longer known to be what the cache describes.
func (h *CardHandle) EraseCard() error {
	defer h.invalidateCache()
	resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xE4, P1: 0x00, P2: 0x00, Data: mf3F00, Le: -1})
	if err != nil {
		return err
	}
	if resp.SW() == 0x6985 {
		return nil
	}
	return checkSW(resp)
}

// GetSerial implements spec.md §6's get-serial operation: the first
// call reads the card's serial via GET CARD DATA and caches it on the
// handle; subsequent calls return the cached bytes without an APDU.
func (h *CardHandle) GetSerial() ([]byte, error) {
	if h.serial != nil {
		return h.serial, nil
	}
	resp, err := h.send(apdu.Command{CLA: vendorCLA, INS: 0xF6, P1: 0x00, P2: 0x00, Le: 256})
	if err != nil {
		return nil, err
	}
	if err := checkSW(resp); err != nil {
		return nil, err
	}
	h.serial = append([]byte(nil), resp.Data...)
	return h.serial, nil
}

// Logout implements spec.md §6's logout: SELECT MF by file-id with
// errors suppressed, treating `6985` as success. The location cache
// is invalidated, since the card's current selection is no longer
// the cached entry.
func (h *CardHandle) Logout() error {
	defer h.invalidateCache()
	restore := h.suppressErrors()
	_, _ = h.send(apdu.Command{INS: 0xA4, P1: 0x00, P2: 0x0C, Data: mf3F00, Le: -1})
	restore()
	return nil
}
