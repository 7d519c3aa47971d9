package starcos

import (
	"log/slog"

	"github.com/example/starcosdriver/apdu"
)

// cacheMode tells locationCache what kind of selector its bytes hold.
type cacheMode int

const (
	cachePath cacheMode = iota
	cacheApplicationID
)

// locationCache is the one-entry memo of "what is currently selected"
// described in spec.md §3. Its Valid flag is cleared by any
// destructive operation (erase).
type locationCache struct {
	Mode       cacheMode
	Bytes      []byte
	Valid      bool
	Descriptor *FileDescriptor // last descriptor returned for Bytes, for zero-APDU cache hits
}

// pendingOp is crypto_env.pending_operation from spec.md §3.
type pendingOp int

const (
	pendingNone pendingOp = iota
	pendingSignNative
	pendingSignByAuthenticate
)

// cryptoEnv is the transient state set by the security-environment
// negotiator and consumed by the signer (spec.md §4.6-4.7).
type cryptoEnv struct {
	Pending pendingOp
	Hash    HashFlags
}

// Options configures a CardHandle; the zero value is usable.
type Options struct {
	// MaxSendSize/MaxRecvSize clamp the transport window; STARCOS SPK
	// 2.3 advertises 128 in both directions (spec.md §6). Zero means
	// "use the card's advertised default".
	MaxSendSize int
	MaxRecvSize int

	// DefaultACL is the access entry CreateMF/CreateDF/CreateEF use for any
	// operation the caller's ACL map leaves unset (spec.md §4.4).
	DefaultACL AccessEntry

	// Logger receives structured diagnostics for every APDU
	// round-trip; defaults to slog.Default().
	Logger *slog.Logger
}

// CardHandle is the opaque per-card association the host middleware
// owns. Besides the transport and options it holds the driver's
// mutable state: the location cache, the crypto environment, the
// error-suppression flag and the cached serial. It is not safe for
// concurrent use; calls on one handle must be serialized by the caller.
type CardHandle struct {
	transport apdu.Transport
	opts      Options
	log       *slog.Logger

	cache locationCache
	crypt cryptoEnv
	quiet bool // true inside a suppressErrors scope, see securityenv.go

	serial []byte // cached by GetSerial, see cardctl.go
}

// Init binds a CardHandle to transport after a successful Match. It
// allocates the driver's extension state; Finish releases it.
func Init(transport apdu.Transport, opts Options) *CardHandle {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxSendSize <= 0 || opts.MaxSendSize > 128 {
		opts.MaxSendSize = 128
	}
	if opts.MaxRecvSize <= 0 || opts.MaxRecvSize > 128 {
		opts.MaxRecvSize = 128
	}
	return &CardHandle{
		transport: transport,
		opts:      opts,
		log:       logger,
	}
}

// Finish releases the handle's extension state deterministically.
// The underlying transport is owned by the caller and is not closed
// here.
func (h *CardHandle) Finish() {
	h.cache = locationCache{}
	h.crypt = cryptoEnv{}
	h.serial = nil
}

// invalidateCache clears the location cache; called by any
// destructive operation per spec.md §3's invariant.
func (h *CardHandle) invalidateCache() {
	h.cache.Valid = false
}

func (h *CardHandle) send(cmd apdu.Command) (apdu.Response, error) {
	resp, err := apdu.Transmit(h.transport, cmd)
	if err != nil {
		if h.quiet {
			h.log.Debug("apdu transmit failed (suppressed)", "ins", cmd.INS, "err", err)
		} else {
			h.log.Error("apdu transmit failed", "ins", cmd.INS, "err", err)
		}
		return apdu.Response{}, err
	}
	h.log.Debug("apdu", "ins", cmd.INS, "p1", cmd.P1, "p2", cmd.P2, "sw", resp.SW())
	return resp, nil
}

// suppressErrors enters a scope in which send() logs transmit failures
// at Debug rather than Error; the returned func reverts on every exit
// path (spec.md §4.6's sign-probe needs a failed MSE to be routine,
// not alarming, since it just means "fall through to authenticate").
func (h *CardHandle) suppressErrors() func() {
	prev := h.quiet
	h.quiet = true
	return func() { h.quiet = prev }
}
