package launch

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

const (
	pathBondMsg            = "launch/bond"
	pathBoostMsg           = "launch/boost"
	pathUnbondMsg          = "launch/unbond"
	pathActivateBoostMsg   = "launch/activate_boost"
	pathAccrueMsg          = "launch/accrue"
	pathWithdrawRewardsMsg = "launch/withdraw_rewards"
	pathClaimWithdrawnMsg  = "launch/claim_withdrawn"
	pathMintMsg            = "launch/mint"
)

// BondMsg is the hook message of bond tokens sent to the pool.
type BondMsg struct{}

func (BondMsg) Path() string     { return pathBondMsg }
func (*BondMsg) Validate() error { return nil }

// BoostMsg is the hook message of boost tokens sent to the pool.
type BoostMsg struct{}

func (BoostMsg) Path() string     { return pathBoostMsg }
func (*BoostMsg) Validate() error { return nil }

// UnbondMsg returns bonded tokens to the signer.
type UnbondMsg struct {
	Amount decimal.Uint `json:"amount"`
}

func (UnbondMsg) Path() string { return pathUnbondMsg }

func (m *UnbondMsg) Validate() error {
	if m.Amount.IsZero() {
		return errors.Field("Amount", errors.ErrEmpty, "nothing to unbond")
	}
	return nil
}

// ActivateBoostMsg puts the boost tokens bonded by the signer into effect.
type ActivateBoostMsg struct{}

func (ActivateBoostMsg) Path() string     { return pathActivateBoostMsg }
func (*ActivateBoostMsg) Validate() error { return nil }

// AccrueMsg credits launch rewards to a holder. Only the admin can use it.
type AccrueMsg struct {
	Holder nexus.Address `json:"holder"`
	Amount decimal.Uint  `json:"amount"`
}

func (AccrueMsg) Path() string { return pathAccrueMsg }

func (m *AccrueMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Holder", m.Holder.Validate())
	if m.Amount.IsZero() {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

// WithdrawRewardsMsg moves all pending rewards of the signer to vested.
type WithdrawRewardsMsg struct{}

func (WithdrawRewardsMsg) Path() string     { return pathWithdrawRewardsMsg }
func (*WithdrawRewardsMsg) Validate() error { return nil }

// ClaimWithdrawnMsg pays all vested rewards of the signer in reward tokens.
type ClaimWithdrawnMsg struct{}

func (ClaimWithdrawnMsg) Path() string     { return pathClaimWithdrawnMsg }
func (*ClaimWithdrawnMsg) Validate() error { return nil }

// MintMsg is the hook message of reward tokens sent to the pool. The same
// amount of boost tokens is minted to the receiver, or to the sender when no
// receiver is given.
type MintMsg struct {
	Receiver nexus.Address `json:"receiver,omitempty"`
}

func (MintMsg) Path() string { return pathMintMsg }

func (m *MintMsg) Validate() error {
	if m.Receiver != nil {
		return errors.AppendField(nil, "Receiver", m.Receiver.Validate())
	}
	return nil
}
