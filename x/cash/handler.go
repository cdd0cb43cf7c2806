package cash

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r nexus.Registry, ctrl Controller) {
	r.Handle(pathTransferMsg, TransferHandler{})
	r.Handle(pathSendMsg, SendHandler{})
	r.Handle(pathSwapMsg, NewSwapHandler(ctrl))
}

// TransferHandler turns a signed TransferMsg into a transfer call.
type TransferHandler struct{}

var _ nexus.Handler = TransferHandler{}

func (TransferHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*TransferMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	signer := nexus.GetSigner(ctx)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &nexus.Result{
		Calls: []nexus.Call{nexus.Transfer(m.Token, signer, m.To, m.Amount)},
	}, nil
}

// SendHandler turns a signed SendMsg into a send call.
type SendHandler struct{}

var _ nexus.Handler = SendHandler{}

func (SendHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*SendMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	signer := nexus.GetSigner(ctx)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &nexus.Result{
		Calls: []nexus.Call{nexus.Send(m.Token, signer, m.To, m.Amount, m.Hook)},
	}, nil
}

// SwapHandler exchanges tokens received by a pair.
type SwapHandler struct {
	ctrl Controller
}

var _ nexus.Handler = SwapHandler{}

// NewSwapHandler returns a handler that reads the pair reserves with given
// controller.
func NewSwapHandler(ctrl Controller) SwapHandler {
	return SwapHandler{ctrl: ctrl}
}

// Deliver computes the constant product output of the received tokens. The
// tokens are already on the pair address, so the input reserve before the
// swap is its balance minus the received amount.
func (h SwapHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*SwapMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	receipt, ok := nexus.GetReceipt(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, "swap requires tokens")
	}
	pairAddr := PairAddress(m.Pair)
	if !receipt.Recipient.Equals(pairAddr) {
		return nil, errors.Wrapf(errors.ErrInput, "tokens not sent to pair %q", m.Pair)
	}
	p, err := LoadPair(db, m.Pair)
	if err != nil {
		return nil, err
	}
	out, err := p.Other(receipt.Token)
	if err != nil {
		return nil, err
	}
	balIn, balOut, err := Reserves(db, h.ctrl, m.Pair, receipt.Token, out)
	if err != nil {
		return nil, err
	}
	reserveIn, err := balIn.Sub(receipt.Amount)
	if err != nil {
		return nil, errors.Wrap(errors.ErrState, "pair balance lower than received amount")
	}
	if reserveIn.IsZero() || balOut.IsZero() {
		return nil, errors.Wrapf(ErrEmptyReserve, "pair %q", m.Pair)
	}
	amount, err := SwapOutput(reserveIn, balOut, receipt.Amount)
	if err != nil {
		return nil, err
	}
	if amount.IsZero() {
		return nil, errors.Wrap(errors.ErrInput, "swap output is zero")
	}
	receiver := m.Receiver
	if receiver == nil {
		receiver = receipt.Sender
	}
	nexus.GetLogger(ctx).Debug("swap",
		"pair", m.Pair,
		"in", receipt.Amount.String(),
		"out", amount.String(),
		"token", out)
	return &nexus.Result{
		Log:   "swapped",
		Calls: []nexus.Call{nexus.Transfer(out, pairAddr, receiver, amount)},
	}, nil
}
