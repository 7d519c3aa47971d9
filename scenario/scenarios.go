package scenario

import (
	"bytes"
	"fmt"

	"github.com/example/starcosdriver/starcos"
	"github.com/example/starcosdriver/starcos/digestinfo"
)

// wire assembles a literal command APDU from its framing fields,
// independent of apdu.Command.Bytes() — scenarios pin the driver
// against spec.md §8's quoted byte strings, not against the encoder
// under test. le is 0 or 1 bytes: absent means no Le byte at all.
func wire(cla, ins, p1, p2 byte, data []byte, le ...byte) []byte {
	out := []byte{cla, ins, p1, p2}
	if len(data) > 0 {
		out = append(out, byte(len(data)))
		out = append(out, data...)
	}
	out = append(out, le...)
	return out
}

func sw(hi, lo byte) []byte { return []byte{hi, lo} }

func swData(data []byte, hi, lo byte) []byte {
	out := append([]byte(nil), data...)
	return append(out, hi, lo)
}

// RunAll executes every S1-S7 scenario from spec.md §8 and returns
// their Results in order.
func RunAll() []Result {
	return []Result{
		s1ATRMatch(),
		s2DFSelectWith6284(),
		s3EFSelectWithFCI(),
		s4SignNative(),
		s5SignFallbackToAuthenticate(),
		s6KeyInstallThreeChunks(),
		s7PINFailureSurfacing(),
	}
}

func s1ATRMatch() Result {
	const name = "S1-atr-match"
	atr := []byte{0x3B, 0xB7, 0x94, 0x00, 0xC0, 0x24, 0x31, 0xFE, 0x65, 0x53, 0x50, 0x4B, 0x32, 0x33, 0x90, 0x00, 0xB4}
	m, ok := starcos.MatchATR(atr)
	if !ok {
		return fail(name, "match=true", "match=false", nil)
	}
	h := starcos.Init(NewFakeTransport(atr, nil), starcos.Options{MaxSendSize: m.MaxSendSize, MaxRecvSize: m.MaxRecvSize})
	defer h.Finish()
	if m.MaxSendSize != 128 {
		return fail(name, "max_send_size=128", fmt.Sprintf("max_send_size=%d", m.MaxSendSize), nil)
	}
	return pass(name, fmt.Sprintf("matched %q, max_send_size=128", m.Name))
}

func s2DFSelectWith6284() Result {
	const name = "S2-df-select-6284"
	pair := []byte{0xDF, 0x01}

	// Spec §8 S2: first SELECT `00 A4 00 00 02 DF 01`, case-3 short
	// per §4.3.1 (requesting FCI carries no Le); on 6284 the reselect
	// with P2=0x0C is case-3 short too.
	first := wire(0x00, 0xA4, 0x00, 0x00, pair)
	second := wire(0x00, 0xA4, 0x00, 0x0C, pair)

	t := NewFakeTransport(nil, []Exchange{
		{Want: first, Resp: sw(0x62, 0x84)},
		{Want: second, Resp: sw(0x90, 0x00)},
	})
	h := starcos.Init(t, starcos.Options{})
	defer h.Finish()

	fd, err := h.SelectFile(starcos.Selector{Path: pair})
	if err != nil {
		return fail(name, "descriptor, no error", "error", err)
	}
	if fd.Kind != starcos.KindDF || !bytes.Equal(fd.FileID, pair) {
		return fail(name, "type=DF, id=DF01", fmt.Sprintf("kind=%v id=% X", fd.Kind, fd.FileID), nil)
	}
	if !t.Exhausted() {
		return fail(name, "2 APDUs sent", fmt.Sprintf("%d APDUs sent", len(t.Sent)), nil)
	}
	return pass(name, "DF01 selected via 6284 handshake")
}

func s3EFSelectWithFCI() Result {
	const name = "S3-ef-select-fci"
	pair := []byte{0x00, 0x05}
	fci := []byte{0x6F, 0x09, 0x80, 0x02, 0x00, 0x80, 0x82, 0x01, 0x01, 0x8A, 0x00}

	// Spec §8 S3: SELECT `00 A4 00 00 02 00 05`, case-3 short per
	// §4.3.1; disambiguation READ BINARY `00 B0 00 00 01`.
	selectCmd := wire(0x00, 0xA4, 0x00, 0x00, pair)
	readBinary := wire(0x00, 0xB0, 0x00, 0x00, nil, 0x01)

	t := NewFakeTransport(nil, []Exchange{
		{Want: selectCmd, Resp: swData(fci, 0x90, 0x00)},
		{Want: readBinary, Resp: sw(0x90, 0x00)}, // 1 byte withheld for brevity; SW alone is enough to not be 6986
	})
	h := starcos.Init(t, starcos.Options{})
	defer h.Finish()

	fd, err := h.SelectFile(starcos.Selector{Path: pair})
	if err != nil {
		return fail(name, "descriptor, no error", "error", err)
	}
	if fd.Kind != starcos.KindEF || fd.Structure != starcos.StructureTransparent || fd.Size != 128 {
		return fail(name, "type=transparent EF, size=128", fmt.Sprintf("kind=%v structure=%v size=%d", fd.Kind, fd.Structure, fd.Size), nil)
	}
	return pass(name, "transparent EF, size=128")
}

func s4SignNative() Result {
	const name = "S4-sign-native"
	// Spec §8 S4: MSE probe `22 41 B6` with `80 01 12`, case-3 short;
	// PSO hash-push `2A 90 81` carries no Le either; PSO compute
	// signature `2A 9E 9A` with Le=256 (encodes as trailing 0x00).
	probe := wire(0x00, 0x22, 0x41, 0xB6, []byte{0x80, 0x01, 0x12})
	hash := bytes.Repeat([]byte{0xAA}, 20)
	psoHash := wire(0x00, 0x2A, 0x90, 0x81, hash)
	psoSign := wire(0x00, 0x2A, 0x9E, 0x9A, nil, 0x00)
	wantSig := bytes.Repeat([]byte{0xCC}, 64)

	t := NewFakeTransport(nil, []Exchange{
		{Want: probe, Resp: sw(0x90, 0x00)},
		{Want: psoHash, Resp: sw(0x90, 0x00)},
		{Want: psoSign, Resp: swData(wantSig, 0x90, 0x00)},
	})
	h := starcos.Init(t, starcos.Options{})
	defer h.Finish()

	if err := h.Negotiate(starcos.SecurityEnv{Operation: starcos.SecOpSign, Padding: starcos.PaddingPKCS1v15, Hash: starcos.HashSHA1}); err != nil {
		return fail(name, "negotiate ok", "error", err)
	}
	sig, err := h.Sign(hash)
	if err != nil {
		return fail(name, "signature bytes", "error", err)
	}
	if !bytes.Equal(sig, wantSig) {
		return fail(name, "signature echoed verbatim", "mismatched signature", nil)
	}
	return pass(name, "COMPUTE SIGNATURE path returned signature, crypto_env cleared")
}

func s5SignFallbackToAuthenticate() Result {
	const name = "S5-sign-fallback-authenticate"
	// Spec §8 S5: MSE probe `22 41 B6` with `80 01 12` refused (6A80);
	// fallback MSE `22 41 A4` with `80 01 01`, both case-3 short.
	probe := wire(0x00, 0x22, 0x41, 0xB6, []byte{0x80, 0x01, 0x12})
	mseAuth := wire(0x00, 0x22, 0x41, 0xA4, []byte{0x80, 0x01, 0x01})
	hash := bytes.Repeat([]byte{0xBB}, 20)
	wantSig := bytes.Repeat([]byte{0xDD}, 64)

	t := NewFakeTransport(nil, []Exchange{
		{Want: probe, Resp: sw(0x6A, 0x80)},
		{Want: mseAuth, Resp: sw(0x90, 0x00)},
	})
	h := starcos.Init(t, starcos.Options{})
	defer h.Finish()

	if err := h.Negotiate(starcos.SecurityEnv{Operation: starcos.SecOpSign, Padding: starcos.PaddingPKCS1v15, Hash: starcos.HashSHA1}); err != nil {
		return fail(name, "negotiate ok via fallback", "error", err)
	}

	block, err := digestinfo.Encode(digestinfo.HashSHA1, hash)
	if err != nil {
		return fail(name, "digestinfo encode ok", "error", err)
	}
	// Spec §8 S5: signature data sent via `88 10 00`, Le=256.
	authenticate := wire(0x00, 0x88, 0x10, 0x00, block, 0x00)
	t.script = append(t.script, Exchange{Want: authenticate, Resp: swData(wantSig, 0x90, 0x00)})

	sig, err := h.Sign(hash)
	if err != nil {
		return fail(name, "signature bytes", "error", err)
	}
	if !bytes.Equal(sig, wantSig) {
		return fail(name, "signature echoed verbatim", "mismatched signature", nil)
	}
	return pass(name, "MSE B6 refused, fell through to INTERNAL AUTHENTICATE")
}

func s6KeyInstallThreeChunks() Result {
	const name = "S6-key-install-3-chunks"
	var header [12]byte
	key := bytes.Repeat([]byte{0x11}, 260)

	// Spec §8 S6: segmented install, vendor CLA 0x80, INS=0xF4; the
	// header TLV (tag 0xC1) then three key-chunk TLVs (tag 0xC2),
	// case-3 short throughout.
	install := wire(0x80, 0xF4, 0x00, 0x00, append([]byte{0xC1, 0x0C}, header[:]...))
	chunk := func(mode byte, keyID byte, offset int, data []byte) []byte {
		tlv := append([]byte{0xC2, byte(3 + len(data)), keyID, byte(offset >> 8), byte(offset)}, data...)
		return wire(0x80, 0xF4, mode, 0x00, tlv)
	}

	t := NewFakeTransport(nil, []Exchange{
		{Want: install, Resp: sw(0x90, 0x00)},
		{Want: chunk(0, 0x01, 0, key[0:124]), Resp: sw(0x90, 0x00)},
		{Want: chunk(0, 0x01, 124, key[124:248]), Resp: sw(0x90, 0x00)},
		{Want: chunk(0, 0x01, 248, key[248:260]), Resp: sw(0x90, 0x00)},
	})
	h := starcos.Init(t, starcos.Options{})
	defer h.Finish()

	if err := h.InstallKey(header, 0x01, starcos.KeyInstallNew, key); err != nil {
		return fail(name, "install succeeds", "error", err)
	}
	if len(t.Sent) != 4 {
		return fail(name, "4 APDUs (1 header + 3 chunks)", fmt.Sprintf("%d APDUs", len(t.Sent)), nil)
	}
	return pass(name, "260-byte key installed in 124/124/12 chunks")
}

func s7PINFailureSurfacing() Result {
	const name = "S7-pin-failure"
	t := NewFakeTransport(nil, []Exchange{
		{Resp: sw(0x63, 0xC2)},
	})
	h := starcos.Init(t, starcos.Options{})
	defer h.Finish()

	_, err := h.SelectFile(starcos.Selector{FileID: []byte{0x3F, 0x00}})
	if err == nil {
		return fail(name, "pin_code_incorrect error", "no error", nil)
	}
	serr, ok := err.(*starcos.Error)
	if !ok || serr.Kind != starcos.ErrPINCodeIncorrect || serr.RemainingTries != 2 {
		return fail(name, "kind=pin_code_incorrect, remaining_tries=2", fmt.Sprintf("%v", err), err)
	}
	return pass(name, "SW=63C2 classified as pin_code_incorrect, remaining_tries=2")
}
