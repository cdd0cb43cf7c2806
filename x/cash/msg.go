package cash

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

const (
	pathTransferMsg = "cash/transfer"
	pathSendMsg     = "cash/send"
	pathSwapMsg     = "cash/swap"
)

// TransferMsg moves tokens owned by the signer.
type TransferMsg struct {
	Token  string        `json:"token"`
	To     nexus.Address `json:"to"`
	Amount decimal.Uint  `json:"amount"`
}

var _ nexus.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", ValidateToken(m.Token))
	errs = errors.AppendField(errs, "To", m.To.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

// SendMsg moves tokens owned by the signer to an extension and delivers the
// hook message to it.
type SendMsg struct {
	Token  string        `json:"token"`
	To     nexus.Address `json:"to"`
	Amount decimal.Uint  `json:"amount"`
	Hook   nexus.Msg     `json:"-"`
}

var _ nexus.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", ValidateToken(m.Token))
	errs = errors.AppendField(errs, "To", m.To.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	if m.Hook == nil {
		errs = errors.AppendField(errs, "Hook", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Hook", m.Hook.Validate())
	}
	return errs
}

// SwapMsg is the hook message of tokens sent to a pair. The other token of
// the pair is transferred to the receiver, or back to the sender when no
// receiver is given.
type SwapMsg struct {
	Pair     string        `json:"pair"`
	Receiver nexus.Address `json:"receiver,omitempty"`
}

var _ nexus.Msg = (*SwapMsg)(nil)

func (SwapMsg) Path() string {
	return pathSwapMsg
}

func (m *SwapMsg) Validate() error {
	var errs error
	if !isPairName(m.Pair) {
		errs = errors.AppendField(errs, "Pair", errors.ErrInput)
	}
	if m.Receiver != nil {
		errs = errors.AppendField(errs, "Receiver", m.Receiver.Validate())
	}
	return errs
}
