package cash

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// Executor executes token calls using a Controller. Delivery of the hook
// message of a send call is left to the host.
type Executor struct {
	ctrl Controller
}

var _ nexus.Executor = Executor{}

// NewExecutor returns an executor moving balances with given controller.
func NewExecutor(ctrl Controller) Executor {
	return Executor{ctrl: ctrl}
}

// Execute moves the tokens declared by the call.
func (e Executor) Execute(ctx nexus.Context, db nexus.KVStore, call nexus.Call) error {
	switch call.Kind {
	case nexus.CallTransfer, nexus.CallSend:
		return e.ctrl.MoveCoins(db, call.Token, call.From, call.To, call.Amount)
	case nexus.CallMint:
		return e.ctrl.Mint(db, call.Token, call.From, call.To, call.Amount)
	case nexus.CallBurn:
		return e.ctrl.Burn(db, call.Token, call.From, call.Amount)
	default:
		return errors.Wrapf(errors.ErrHuman, "cannot execute %s call", call.Kind)
	}
}
