package vault

import (
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/x/reply"
)

func init() {
	reply.RegisterContinuation(&VirtualClaimContinuation{})
	reply.RegisterContinuation(&RealClaimContinuation{})
}

// VirtualClaimContinuation is stashed when the vested launch rewards are
// withdrawn.
type VirtualClaimContinuation struct {
	// VestedBefore is the vested amount of the vault before the
	// withdraw.
	VestedBefore decimal.Uint
}

var _ reply.Continuation = (*VirtualClaimContinuation)(nil)

func (*VirtualClaimContinuation) Kind() string {
	return "vault/virtual_claim"
}

func (*VirtualClaimContinuation) Validate() error {
	return nil
}

// RealClaimContinuation is stashed when the launch reward tokens are
// claimed.
type RealClaimContinuation struct {
	// BalanceBefore is the reward token balance of the vault before the
	// claim.
	BalanceBefore decimal.Uint
}

var _ reply.Continuation = (*RealClaimContinuation)(nil)

func (*RealClaimContinuation) Kind() string {
	return "vault/real_claim"
}

func (*RealClaimContinuation) Validate() error {
	return nil
}
