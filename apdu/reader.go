package apdu

import (
	"fmt"

	"github.com/ebfe/scard"
)

// Reader is a PC/SC connection to a card in a physical reader. It
// implements Transport.
type Reader struct {
	ctx  *scard.Context
	card *scard.Card
	name string
	atr  []byte
}

// ListReaders enumerates the PC/SC readers visible on this host.
func ListReaders() ([]string, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("apdu: establish PC/SC context: %w", err)
	}
	defer ctx.Release()

	readers, err := ctx.ListReaders()
	if err != nil {
		return nil, fmt.Errorf("apdu: list readers: %w", err)
	}
	return readers, nil
}

// Connect opens a shared connection to the card in the reader at index.
func Connect(readerIndex int) (*Reader, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("apdu: establish PC/SC context: %w", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("apdu: list readers: %w", err)
	}
	if len(readers) == 0 {
		ctx.Release()
		return nil, fmt.Errorf("apdu: no smart card readers found")
	}
	if readerIndex < 0 || readerIndex >= len(readers) {
		ctx.Release()
		return nil, fmt.Errorf("apdu: reader index %d out of range (0-%d)", readerIndex, len(readers)-1)
	}

	name := readers[readerIndex]
	card, err := ctx.Connect(name, scard.ShareShared, scard.ProtocolAny)
	if err != nil {
		ctx.Release()
		return nil, fmt.Errorf("apdu: connect to reader %q: %w", name, err)
	}

	status, err := card.Status()
	if err != nil {
		card.Disconnect(scard.LeaveCard)
		ctx.Release()
		return nil, fmt.Errorf("apdu: card status: %w", err)
	}

	return &Reader{ctx: ctx, card: card, name: name, atr: status.Atr}, nil
}

// ConnectFirst connects to the card in the first available reader.
func ConnectFirst() (*Reader, error) { return Connect(0) }

// Transmit implements Transport.
func (r *Reader) Transmit(cmd []byte) ([]byte, error) {
	resp, err := r.card.Transmit(cmd)
	if err != nil {
		return nil, fmt.Errorf("apdu: transmit: %w", err)
	}
	return resp, nil
}

// ATR implements Transport.
func (r *Reader) ATR() []byte { return r.atr }

// Name returns the PC/SC reader name this connection was opened on.
func (r *Reader) Name() string { return r.name }

// Close disconnects from the card and releases the PC/SC context.
func (r *Reader) Close() error {
	if r.card != nil {
		r.card.Disconnect(scard.LeaveCard)
	}
	if r.ctx != nil {
		r.ctx.Release()
	}
	return nil
}

// Reset performs a card reset; cold powers the card off and back on,
// warm just resets the protocol.
func (r *Reader) Reset(cold bool) error {
	if r.card == nil {
		return fmt.Errorf("apdu: no card connected")
	}
	disposition := scard.ResetCard
	if cold {
		disposition = scard.UnpowerCard
	}
	if err := r.card.Reconnect(scard.ShareShared, scard.ProtocolAny, disposition); err != nil {
		return fmt.Errorf("apdu: reconnect: %w", err)
	}
	if status, err := r.card.Status(); err == nil {
		r.atr = status.Atr
	}
	return nil
}
