package starcos

import "github.com/example/starcosdriver/apdu"

// algTokenTag and keyRefTag are the two TLV tags the security-
// environment negotiator assembles its MSE/PSO data from (spec.md
// §4.6). Every key reference this driver ever presents is for the
// sole supported algorithm, RSA, so the "asymmetric" tag (0x83) is
// used uniformly; the "otherwise" tag (0x84) spec.md §4.6 mentions has
// no caller in a driver with no symmetric algorithms (see DESIGN.md).
const (
	algTokenTag = 0x80
	keyRefTag   = 0x83
)

func keyRefTLV(keyRef int) []byte {
	if keyRef == 0 {
		return nil
	}
	return []byte{keyRefTag, 0x01, byte(keyRef)}
}

// signAlgorithmByte derives the P1=0x41/B6 algorithm-reference byte
// from padding×hash per the derivation table in spec.md §4.6. The
// second return value is false when no table entry matches, which is
// the fall-through-to-authenticate signal.
func signAlgorithmByte(env SecurityEnv) (byte, bool) {
	if env.ExplicitAlgorithmReference != nil {
		return *env.ExplicitAlgorithmReference, true
	}
	switch env.Padding {
	case PaddingPKCS1v15:
		switch env.Hash {
		case HashSHA1:
			return 0x12, true
		case HashRIPEMD160:
			return 0x22, true
		case HashMD5:
			return 0x32, true
		}
	case PaddingISO9796:
		switch env.Hash {
		case HashSHA1:
			return 0x11, true
		case HashRIPEMD160:
			return 0x21, true
		}
	}
	return 0, false
}

// Negotiate implements the MANAGE SECURITY ENVIRONMENT state machine
// of spec.md §4.6: a decipher branch, a sign branch that probes
// COMPUTE SIGNATURE and falls back to INTERNAL AUTHENTICATE on
// failure, and a direct authenticate branch. It leaves h.crypt set for
// the signer (signer.go) to consume and clear.
func (h *CardHandle) Negotiate(env SecurityEnv) error {
	switch env.Operation {
	case SecOpDecipher:
		return h.negotiateDecipher(env)
	case SecOpSign:
		return h.negotiateSign(env)
	case SecOpAuthenticate:
		return h.negotiateAuthenticate(env, env.Hash)
	default:
		return newError(ErrInvalidArguments, "unknown security operation %v", env.Operation)
	}
}

func (h *CardHandle) negotiateDecipher(env SecurityEnv) error {
	if env.Padding != PaddingPKCS1v15 {
		return newError(ErrInvalidArguments, "decipher requires PKCS#1 v1.5 padding")
	}
	data := []byte{algTokenTag, 0x01, 0x02}
	data = append(data, keyRefTLV(env.KeyReference)...)
	resp, err := h.send(apdu.Command{INS: 0x22, P1: 0x81, P2: 0xB8, Data: data, Le: -1})
	if err != nil {
		return err
	}
	return checkSW(resp)
}

func (h *CardHandle) negotiateSign(env SecurityEnv) error {
	algByte, ok := signAlgorithmByte(env)
	if !ok {
		return h.negotiateAuthenticate(env, env.Hash)
	}
	data := keyRefTLV(env.KeyReference)
	data = append(data, algTokenTag, 0x01, algByte)

	restore := h.suppressErrors()
	resp, err := h.send(apdu.Command{INS: 0x22, P1: 0x41, P2: 0xB6, Data: data, Le: -1})
	restore()

	if err == nil && resp.IsOK() {
		h.crypt = cryptoEnv{Pending: pendingSignNative}
		return nil
	}
	return h.negotiateAuthenticate(env, env.Hash)
}

func (h *CardHandle) negotiateAuthenticate(env SecurityEnv, hash HashFlags) error {
	if env.Padding != PaddingPKCS1v15 {
		return newError(ErrInvalidArguments, "authenticate requires PKCS#1 v1.5 padding")
	}
	data := keyRefTLV(env.KeyReference)
	data = append(data, algTokenTag, 0x01, 0x01)

	resp, err := h.send(apdu.Command{INS: 0x22, P1: 0x41, P2: 0xA4, Data: data, Le: -1})
	if err != nil {
		return err
	}
	if err := checkSW(resp); err != nil {
		return err
	}
	h.crypt = cryptoEnv{Pending: pendingSignByAuthenticate, Hash: hash}
	return nil
}
