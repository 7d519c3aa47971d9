package starcos

import (
	"bytes"

	"github.com/example/starcosdriver/apdu"
)

// MF is the master file identifier every absolute path is rooted at.
var MF = []byte{0x3F, 0x00}

// Selector is one of the three path-type inputs the navigator accepts
// (spec.md §4.3): exactly one of FileID, AID, or Path should be set.
type Selector struct {
	FileID []byte // exactly 2 bytes
	AID    []byte // 1-16 bytes
	Path   []byte // even length, <= 6 bytes
}

// NormalizePath validates and canonicalizes a full-path selector:
// even length, at most 6 bytes, auto-prefixed with MF unless it
// already starts with 3F00. Idempotent: NormalizePath(NormalizePath(p)) == NormalizePath(p).
func NormalizePath(path []byte) ([]byte, error) {
	if len(path)%2 != 0 {
		return nil, newError(ErrInvalidArguments, "path length %d is not even", len(path))
	}
	if len(path) > 6 {
		return nil, newError(ErrInvalidArguments, "path length %d exceeds 6 bytes", len(path))
	}
	if len(path) == 6 {
		if !bytes.Equal(path[0:2], MF) {
			return nil, newError(ErrInvalidArguments, "6-byte path must start with 3F00")
		}
		return append([]byte(nil), path...), nil
	}
	if len(path) >= 2 && bytes.Equal(path[0:2], MF) {
		return append([]byte(nil), path...), nil
	}
	out := make([]byte, 0, len(path)+2)
	out = append(out, MF...)
	out = append(out, path...)
	return out, nil
}

// SelectFile implements the path navigator's contract (spec.md §4.3):
// dispatch on selector kind, then (for full paths) traverse with the
// one-entry location cache.
func (h *CardHandle) SelectFile(sel Selector) (*FileDescriptor, error) {
	switch {
	case len(sel.FileID) == 2:
		return h.selectWithDiscrimination(sel.FileID)

	case len(sel.AID) >= 1 && len(sel.AID) <= 16:
		if h.cache.Valid && h.cache.Mode == cacheApplicationID && bytes.Equal(h.cache.Bytes, sel.AID) {
			return cloneDescriptor(h.cache.Descriptor), nil
		}
		fd, err := h.selectByName(sel.AID)
		if err != nil {
			return nil, err
		}
		h.cache = locationCache{Mode: cacheApplicationID, Bytes: append([]byte(nil), sel.AID...), Valid: true, Descriptor: cloneDescriptor(fd)}
		return fd, nil

	case sel.Path != nil:
		path, err := NormalizePath(sel.Path)
		if err != nil {
			return nil, err
		}
		return h.traverse(path)

	default:
		return nil, newError(ErrInvalidArguments, "selector must set exactly one of FileID, AID, or Path")
	}
}

// traverse implements §4.3.2's four cases over the one-entry cache.
func (h *CardHandle) traverse(path []byte) (*FileDescriptor, error) {
	L := len(path)

	m := 0
	if h.cache.Valid && h.cache.Mode == cachePath {
		m = commonPrefixPairs(h.cache.Bytes, path)
	}

	switch {
	case m == L && len(h.cache.Bytes) == L:
		// Case 3: the cached path is the target, zero APDUs.
		return cloneDescriptor(h.cache.Descriptor), nil

	case m == 0:
		// Case 1: cache invalid, in AID mode, or shares no prefix —
		// select every intermediate DF below MF, then the terminal
		// pair. MF itself is not selected first.
		for i := 2; i+2 <= L-2; i += 2 {
			if err := h.selectDiscardFCI(path[i : i+2]); err != nil {
				return nil, err
			}
		}

	default:
		// Case 2 (subsumes case 4 when m == L-2): select only the
		// suffix, intermediate pairs discard-FCI.
		for i := m; i+2 <= L-2; i += 2 {
			if err := h.selectDiscardFCI(path[i : i+2]); err != nil {
				return nil, err
			}
		}
	}

	terminal := path[L-2 : L]
	fd, err := h.selectWithDiscrimination(terminal)
	if err != nil {
		return nil, err
	}

	h.cache = locationCache{Mode: cachePath, Bytes: append([]byte(nil), path...), Valid: true, Descriptor: cloneDescriptor(fd)}
	return fd, nil
}

// commonPrefixPairs returns the length, in bytes, of the longest
// common prefix of a and b measured in whole 2-byte pairs.
func commonPrefixPairs(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	m := 0
	for m+2 <= n && bytes.Equal(a[m:m+2], b[m:m+2]) {
		m += 2
	}
	return m
}

// selectDiscardFCI selects an intermediate DF on a known path without
// requesting FCI (P2=0x0C) — the traversal already knows these pairs
// are DFs because they're interior path components.
func (h *CardHandle) selectDiscardFCI(pair []byte) error {
	resp, err := h.send(apdu.Command{INS: 0xA4, P1: 0x00, P2: 0x0C, Data: pair, Le: -1})
	if err != nil {
		return err
	}
	return checkSW(resp)
}

// selectByName issues SELECT-BY-NAME (P1=0x04, P2=0x0C) for an
// application identifier.
func (h *CardHandle) selectByName(aid []byte) (*FileDescriptor, error) {
	resp, err := h.send(apdu.Command{INS: 0xA4, P1: 0x04, P2: 0x0C, Data: aid, Le: -1})
	if err != nil {
		return nil, err
	}
	if err := checkSW(resp); err != nil {
		return nil, err
	}
	return &FileDescriptor{AID: append([]byte(nil), aid...), Kind: KindDF}, nil
}

// selectWithDiscrimination implements the DF/EF discrimination
// algorithm of spec.md §4.3.1 for a single 2-byte pair (file-id or
// path terminal).
func (h *CardHandle) selectWithDiscrimination(pair []byte) (*FileDescriptor, error) {
	resp, err := h.send(apdu.Command{INS: 0xA4, P1: 0x00, P2: 0x00, Data: pair, Le: -1})
	if err != nil {
		return nil, err
	}

	switch {
	case resp.SW() == 0x6284:
		// "No FCI" — it's a DF. Re-issue with P2=0x0C to complete the
		// select.
		resp2, err := h.send(apdu.Command{INS: 0xA4, P1: 0x00, P2: 0x0C, Data: pair, Le: -1})
		if err != nil {
			return nil, err
		}
		if err := checkSW(resp2); err != nil {
			return nil, err
		}
		return &FileDescriptor{FileID: append([]byte(nil), pair...), Kind: KindDF}, nil

	case resp.IsOK() || resp.HasMoreData():
		data := resp.Data
		if resp.HasMoreData() {
			got, err := apdu.GetResponse(h.transport, resp.SW2)
			if err != nil {
				return nil, err
			}
			data = got.Data
		}

		// Probably an EF; disambiguate with a 1-byte READ BINARY.
		rb, err := h.send(apdu.Command{INS: 0xB0, P1: 0x00, P2: 0x00, Le: 1})
		if err != nil {
			return nil, err
		}
		if rb.SW() == 0x6986 {
			// No current EF selected: what we selected is a DF.
			return &FileDescriptor{FileID: append([]byte(nil), pair...), Kind: KindDF}, nil
		}

		fd := &FileDescriptor{FileID: append([]byte(nil), pair...), Kind: KindEF}
		if len(data) > 0 {
			if err := DecodeFCI(data, fd); err != nil {
				return nil, err
			}
		}
		return fd, nil

	default:
		return nil, checkSW(resp)
	}
}

func cloneDescriptor(fd *FileDescriptor) *FileDescriptor {
	if fd == nil {
		return nil
	}
	cp := *fd
	cp.FileID = append([]byte(nil), fd.FileID...)
	cp.AID = append([]byte(nil), fd.AID...)
	if fd.ACL != nil {
		cp.ACL = make(map[Operation]AccessEntry, len(fd.ACL))
		for k, v := range fd.ACL {
			cp.ACL[k] = v
		}
	}
	return &cp
}
