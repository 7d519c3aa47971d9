// Package digestinfo stands in for the host cryptographic library's
// PKCS#1 DigestInfo encoder that spec.md §4.7 treats as an external
// collaborator: the INTERNAL AUTHENTICATE signature path needs the
// hash wrapped in its ASN.1 DigestInfo envelope before encryption,
// but that encoding is ordinarily done by whatever crypto library the
// host links, not by the card driver. This package gives the signer
// something real to call in a standalone module.
package digestinfo

import "fmt"

// Hash identifies which DigestInfo prefix to prepend, mirroring the
// hash modes STARCOS SPK 2.3 advertises (spec.md §6).
type Hash int

const (
	HashNone Hash = iota
	HashSHA1
	HashMD5
	HashRIPEMD160
	HashMD5SHA1 // combined mode: no DigestInfo wrapper, raw concatenation
)

// DER-encoded ASN.1 prefixes for DigestInfo SEQUENCE { AlgorithmIdentifier, OCTET STRING }.
var prefixes = map[Hash][]byte{
	HashSHA1:      {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x0e, 0x03, 0x02, 0x1a, 0x05, 0x00, 0x04, 0x14},
	HashMD5:       {0x30, 0x20, 0x30, 0x0c, 0x06, 0x08, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x02, 0x05, 0x05, 0x00, 0x04, 0x10},
	HashRIPEMD160: {0x30, 0x21, 0x30, 0x09, 0x06, 0x05, 0x2b, 0x24, 0x03, 0x02, 0x01, 0x05, 0x00, 0x04, 0x14},
}

var expectedLen = map[Hash]int{
	HashSHA1:      20,
	HashMD5:       16,
	HashRIPEMD160: 20,
	HashMD5SHA1:   36,
}

// Encode wraps a raw hash in its DigestInfo envelope. HashNone passes
// the block through unencoded (spec.md §4.7: "if hash_flags has no
// hash bit set, encode with hash=none"); HashMD5SHA1 is the combined
// TLS-style mode that has no DigestInfo wrapper at all.
func Encode(h Hash, hash []byte) ([]byte, error) {
	if h == HashNone {
		return hash, nil
	}
	if h == HashMD5SHA1 {
		if len(hash) != expectedLen[h] {
			return nil, fmt.Errorf("digestinfo: MD5+SHA-1 block must be 36 bytes, got %d", len(hash))
		}
		return hash, nil
	}
	prefix, ok := prefixes[h]
	if !ok {
		return nil, fmt.Errorf("digestinfo: unsupported hash %d", h)
	}
	if want := expectedLen[h]; len(hash) != want {
		return nil, fmt.Errorf("digestinfo: hash length %d does not match expected %d", len(hash), want)
	}
	out := make([]byte, 0, len(prefix)+len(hash))
	out = append(out, prefix...)
	out = append(out, hash...)
	return out, nil
}
