// Package starcos adapts the generic ISO 7816-4 plumbing in package
// apdu to the STARCOS SPK 2.3 card operating system: proprietary file
// creation, a two-step SELECT convention for DFs, a dual-path
// signature model, and a segmented key-installation protocol.
package starcos

import "fmt"

// FileKind distinguishes a dedicated file (directory) from a working
// elementary file (leaf).
type FileKind int

const (
	KindDF FileKind = iota
	KindEF
)

// Structure is the on-card storage shape of an elementary file.
type Structure int

const (
	StructureUnknown Structure = iota
	StructureTransparent
	StructureLinearFixed
	StructureCyclic
	// StructureComputeService is the record structure a 3-byte 0x82
	// descriptor with first byte 0x17 advertises: record-organized
	// like StructureCyclic but dedicated to a card compute service
	// rather than application data (spec.md §4.2).
	StructureComputeService
)

// AccessMethod is the abstract form of an access-control entry, before
// translation to a STARCOS ACL byte (see ACLByte).
type AccessMethod int

const (
	AccessAlways AccessMethod = iota
	AccessNever
	AccessByPIN
	AccessBySecureMessaging
)

// AccessEntry gates one operation (read, write, erase, create, ...).
type AccessEntry struct {
	Method                AccessMethod
	PINReference          int  // 1..15, used when Method is AccessByPIN or AccessBySecureMessaging
	SecureMessagingNeeded bool
}

// Operation identifies which access-control slot an AccessEntry governs.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
	OpErase
	OpCreateEF
	OpCreateKey
	OpCreateDF
	OpRegisterDF
)

// FileDescriptor is the semantic description of a file on the card,
// whether freshly decoded from an FCI (see DecodeFCI) or supplied by
// the caller to CreateMF/CreateDF/CreateEF.
type FileDescriptor struct {
	FileID []byte // 2 bytes
	AID    []byte // 1-16 bytes, DFs only, optional

	Kind      FileKind
	Structure Structure // EFs only; "object" EFs report StructureTransparent, ObjectEF=true

	Size         int // transparent EFs
	RecordCount  int // record-structured EFs
	RecordLength int // record-structured EFs

	ObjectEF bool // tag 0x11 FCI: treated as transparent, flagged per open question #2

	ACL map[Operation]AccessEntry
}

// Algorithm identifies the on-card cryptographic algorithm family.
// STARCOS SPK 2.3 supports only RSA.
type Algorithm int

const (
	AlgorithmRSA Algorithm = iota
)

// Padding is the signature padding scheme requested by the caller.
type Padding int

const (
	PaddingPKCS1v15 Padding = iota
	PaddingISO9796
)

// HashFlags mirror the card's advertised hash modes; they are bit
// flags because MD5+SHA-1 is a distinct, combined mode.
type HashFlags int

const (
	HashNone HashFlags = 0
	HashSHA1 HashFlags = 1 << iota
	HashMD5
	HashRIPEMD160
)

// HashMD5SHA1 is the combined digest mode STARCOS advertises; it is
// the bitwise OR of its two constituent flags.
const HashMD5SHA1 = HashMD5 | HashSHA1

// SecOperation is what a MANAGE SECURITY ENVIRONMENT negotiation is
// being set up to do.
type SecOperation int

const (
	SecOpSign SecOperation = iota
	SecOpAuthenticate
	SecOpDecipher
)

// SecurityEnv is immutable input to the security-environment
// negotiator for a single sign/decipher request.
type SecurityEnv struct {
	Operation SecOperation
	Algorithm Algorithm
	Padding   Padding
	Hash      HashFlags

	KeyReference int

	// ExplicitAlgorithmReference, if non-nil, is used verbatim as the
	// algorithm-reference byte (tag 80) instead of the padding×hash
	// derivation table in §4.6.
	ExplicitAlgorithmReference *byte
}

// ErrorKind is one of the error kinds spec.md §7 exposes to callers.
type ErrorKind int

const (
	ErrInvalidArguments ErrorKind = iota
	ErrOutOfMemory
	ErrCardCommandFailed
	ErrIncorrectParameters
	ErrNotAllowed
	ErrFileNotFound
	ErrFileAlreadyExists
	ErrPINCodeIncorrect
	ErrInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidArguments:
		return "invalid_arguments"
	case ErrOutOfMemory:
		return "out_of_memory"
	case ErrCardCommandFailed:
		return "card_cmd_failed"
	case ErrIncorrectParameters:
		return "incorrect_parameters"
	case ErrNotAllowed:
		return "not_allowed"
	case ErrFileNotFound:
		return "file_not_found"
	case ErrFileAlreadyExists:
		return "file_already_exists"
	case ErrPINCodeIncorrect:
		return "pin_code_incorrect"
	case ErrInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the error type this package returns for rejected arguments
// and failing status words; a transport failure is returned as the
// transport's own error. RemainingTries is only meaningful for
// ErrPINCodeIncorrect.
type Error struct {
	Kind           ErrorKind
	SW             uint16
	RemainingTries int
	msg            string
}

func (e *Error) Error() string {
	if e.msg != "" {
		return fmt.Sprintf("starcos: %s: %s", e.Kind, e.msg)
	}
	return fmt.Sprintf("starcos: %s (SW=%04X)", e.Kind, e.SW)
}

func newError(kind ErrorKind, msg string, args ...any) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(msg, args...)}
}
