package vault

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/gconf"
)

const (
	pathDepositMsg             = "vault/deposit"
	pathWithdrawMsg            = "vault/withdraw"
	pathRebalanceMsg           = "vault/rebalance"
	pathUpdateRatiosMsg        = "vault/update_ratios"
	pathUpdateConfigurationMsg = "vault/update_configuration"
	pathClaimVirtualMsg        = "vault/claim_virtual_rewards"
	pathClaimRealMsg           = "vault/claim_real_rewards"
)

// DepositMsg is the hook message of bond or boost tokens sent to the vault.
type DepositMsg struct{}

var _ nexus.Msg = (*DepositMsg)(nil)

func (DepositMsg) Path() string     { return pathDepositMsg }
func (*DepositMsg) Validate() error { return nil }

// WithdrawMsg is the hook message of bond share tokens sent to the vault.
// The bond tokens are unbonded from the launch pool and returned to the
// sender.
type WithdrawMsg struct{}

var _ nexus.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string     { return pathWithdrawMsg }
func (*WithdrawMsg) Validate() error { return nil }

// RebalanceMsg moves the split one step regardless of the period. Only the
// owner can use it.
type RebalanceMsg struct{}

var _ nexus.Msg = (*RebalanceMsg)(nil)

func (RebalanceMsg) Path() string     { return pathRebalanceMsg }
func (*RebalanceMsg) Validate() error { return nil }

// UpdateRatiosMsg sets the split. Only the vault governance can use it.
type UpdateRatiosMsg struct {
	RatioA decimal.Dec `json:"ratio_a"`
	RatioB decimal.Dec `json:"ratio_b"`
	RatioC decimal.Dec `json:"ratio_c"`
}

var _ nexus.Msg = (*UpdateRatiosMsg)(nil)

func (UpdateRatiosMsg) Path() string {
	return pathUpdateRatiosMsg
}

func (m *UpdateRatiosMsg) Validate() error {
	one := decimal.OneDec()
	var errs error
	if m.RatioA.GT(one) {
		errs = errors.AppendField(errs, "RatioA", errors.ErrInput)
	}
	if m.RatioB.GT(one) {
		errs = errors.AppendField(errs, "RatioB", errors.ErrInput)
	}
	if m.RatioC.GT(one) {
		errs = errors.AppendField(errs, "RatioC", errors.ErrInput)
	}
	return errs
}

// UpdateConfigurationMsg patches the vault configuration. Only the vault
// governance can use it.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "nothing to update")
	}
	return nil
}

func (m *UpdateConfigurationMsg) GetPatch() gconf.Configuration {
	return m.Patch
}

// ClaimVirtualRewardsMsg credits the launch rewards vested since the last
// claim to the virtual streams of the reward pools.
type ClaimVirtualRewardsMsg struct{}

var _ nexus.Msg = (*ClaimVirtualRewardsMsg)(nil)

func (ClaimVirtualRewardsMsg) Path() string     { return pathClaimVirtualMsg }
func (*ClaimVirtualRewardsMsg) Validate() error { return nil }

// ClaimRealRewardsMsg moves the launch reward tokens paid to the vault to the
// reward pools.
type ClaimRealRewardsMsg struct{}

var _ nexus.Msg = (*ClaimRealRewardsMsg)(nil)

func (ClaimRealRewardsMsg) Path() string     { return pathClaimRealMsg }
func (*ClaimRealRewardsMsg) Validate() error { return nil }
