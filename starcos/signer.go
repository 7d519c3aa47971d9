package starcos

import (
	"github.com/example/starcosdriver/apdu"
	"github.com/example/starcosdriver/starcos/digestinfo"
)

func digestInfoHash(flags HashFlags) digestinfo.Hash {
	switch flags {
	case HashNone:
		return digestinfo.HashNone
	case HashSHA1:
		return digestinfo.HashSHA1
	case HashMD5:
		return digestinfo.HashMD5
	case HashRIPEMD160:
		return digestinfo.HashRIPEMD160
	case HashMD5SHA1:
		return digestinfo.HashMD5SHA1
	default:
		return digestinfo.HashNone
	}
}

// Sign produces a signature over data using whichever path Negotiate
// last set up (spec.md §4.7). It always clears the security
// environment on exit, success or failure, matching the card's own
// one-shot semantics: a security environment is consumed the instant
// it is used.
func (h *CardHandle) Sign(data []byte) ([]byte, error) {
	pending := h.crypt
	defer func() { h.crypt = cryptoEnv{} }()

	if len(data) > h.opts.MaxSendSize {
		return nil, newError(ErrInvalidArguments, "sign input length %d exceeds max send size %d", len(data), h.opts.MaxSendSize)
	}

	switch pending.Pending {
	case pendingSignNative:
		return h.signNative(data)
	case pendingSignByAuthenticate:
		return h.signByAuthenticate(data, pending.Hash)
	default:
		return nil, newError(ErrInternal, "sign called without a successful security-environment negotiation")
	}
}

// signNative implements the COMPUTE SIGNATURE path: push the hash via
// PSO/hash, then PSO/compute-digital-signature reads back the
// signature with Le=256.
func (h *CardHandle) signNative(hash []byte) ([]byte, error) {
	resp, err := h.send(apdu.Command{INS: 0x2A, P1: 0x90, P2: 0x81, Data: hash, Le: -1})
	if err != nil {
		return nil, err
	}
	if err := checkSW(resp); err != nil {
		return nil, err
	}

	resp2, err := h.send(apdu.Command{INS: 0x2A, P1: 0x9E, P2: 0x9A, Le: 256})
	if err != nil {
		return nil, err
	}
	if err := checkSW(resp2); err != nil {
		return nil, err
	}
	return resp2.Data, nil
}

// signByAuthenticate implements the INTERNAL AUTHENTICATE path: wrap
// the hash in its DigestInfo envelope (or pass it through unwrapped
// for the no-hash/combined modes) and submit it as the challenge.
func (h *CardHandle) signByAuthenticate(hash []byte, hashFlags HashFlags) ([]byte, error) {
	block, err := digestinfo.Encode(digestInfoHash(hashFlags), hash)
	if err != nil {
		return nil, newError(ErrInvalidArguments, "%s", err)
	}

	resp, err := h.send(apdu.Command{INS: 0x88, P1: 0x10, P2: 0x00, Data: block, Le: 256})
	if err != nil {
		return nil, err
	}
	if err := checkSW(resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
