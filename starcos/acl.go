package starcos

// ACLByte translates one abstract access-control entry into the
// single-octet STARCOS wire encoding (spec.md §3):
//
//	0x9F  ALWAYS
//	0x5F  NEVER
//	otherwise: bit 0x10 = secure messaging required, low nibble = PIN state
//	  SOPIN (PIN reference 1): low nibble used verbatim (0x01)
//	  any other PIN reference k: low nibble = 0x0F - (k>>1)
func ACLByte(e AccessEntry) byte {
	switch e.Method {
	case AccessAlways:
		return 0x9F
	case AccessNever:
		return 0x5F
	}

	var b byte
	if e.SecureMessagingNeeded || e.Method == AccessBySecureMessaging {
		b |= 0x10
	}

	k := e.PINReference
	if k == 1 {
		// SOPIN: raw low nibble used verbatim.
		b |= 0x01
		return b
	}
	b |= 0x0F - byte(k>>1)
	return b
}

// resolveACL returns the AccessEntry for op, falling back to def if
// the file descriptor has no explicit entry — spec.md §4.4.
func resolveACL(fd *FileDescriptor, op Operation, def AccessEntry) AccessEntry {
	if fd.ACL != nil {
		if e, ok := fd.ACL[op]; ok {
			return e
		}
	}
	return def
}

// smByte computes the combined-mode secure-messaging sub-byte for a
// header: 0x03 if any of the referenced entries requires protected
// messaging, 0x00 otherwise. This resolves open question #1: the
// reference implementation's scan-from-zero loop never fired because
// its initial condition could never be true, silently defeating the
// feature; the intended behavior — scan every entry a header
// references and flag SM if any needs it — is what this implements.
func smByte(entries ...AccessEntry) byte {
	for _, e := range entries {
		if e.SecureMessagingNeeded || e.Method == AccessBySecureMessaging {
			return 0x03
		}
	}
	return 0x00
}
