package rewards

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/reply"
)

func init() {
	reply.RegisterContinuation(&SwapForwardContinuation{})
}

// SwapForwardContinuation is stashed when claimed rewards are minted into
// the swap token on the pool address. Once minted, the swap token is sent to
// the swap pair that delivers the output to the recipient.
type SwapForwardContinuation struct {
	Pool      string
	Recipient nexus.Address
	// BalanceBefore is the swap token balance of the pool address before
	// the mint.
	BalanceBefore decimal.Uint
}

var _ reply.Continuation = (*SwapForwardContinuation)(nil)

func (*SwapForwardContinuation) Kind() string {
	return "rewards/swap_forward"
}

func (c *SwapForwardContinuation) Validate() error {
	var errs error
	if !isPoolName(c.Pool) {
		errs = errors.AppendField(errs, "Pool", errors.ErrInput)
	}
	return errors.AppendField(errs, "Recipient", c.Recipient.Validate())
}
