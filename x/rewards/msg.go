package rewards

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

const (
	pathCreatePoolMsg        = "rewards/create_pool"
	pathBondMsg              = "rewards/bond"
	pathUnbondMsg            = "rewards/unbond"
	pathClaimMsg             = "rewards/claim"
	pathClaimForMsg          = "rewards/claim_for"
	pathUpdateGlobalIndexMsg = "rewards/update_global_index"
	pathRewardMsg            = "rewards/reward"
	pathIncreaseBalanceMsg   = "rewards/increase_balance"
	pathDecreaseBalanceMsg   = "rewards/decrease_balance"
	pathUpdatePoolMsg        = "rewards/update_pool"
)

func validatePoolName(name string) error {
	if !isPoolName(name) {
		return errors.Field("Pool", errors.ErrInput, "invalid pool name %q", name)
	}
	return nil
}

func validateAmount(errs error, amount decimal.Uint) error {
	if amount.IsZero() {
		return errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

// CreatePoolMsg creates a new pool. The signer becomes the owner and the
// governance of the pool.
type CreatePoolMsg struct {
	Pool           string        `json:"pool"`
	StakingToken   string        `json:"staking_token"`
	RewardToken    string        `json:"reward_token"`
	StakeOperator  nexus.Address `json:"stake_operator,omitempty"`
	RewardOperator nexus.Address `json:"reward_operator"`
	SwapGovernance nexus.Address `json:"swap_governance,omitempty"`
	SwapToken      string        `json:"swap_token,omitempty"`
	SwapPair       string        `json:"swap_pair,omitempty"`
}

var _ nexus.Msg = (*CreatePoolMsg)(nil)

func (CreatePoolMsg) Path() string {
	return pathCreatePoolMsg
}

func (m *CreatePoolMsg) Validate() error {
	// The owner is the signer and is not known yet.
	return errors.Append(validatePoolName(m.Pool), m.pool(nil).validateSettings())
}

func (m *CreatePoolMsg) pool(owner nexus.Address) *Pool {
	return &Pool{
		Owner:          owner,
		StakingToken:   m.StakingToken,
		RewardToken:    m.RewardToken,
		StakeOperator:  m.StakeOperator,
		RewardOperator: m.RewardOperator,
		SwapGovernance: m.SwapGovernance,
		SwapToken:      m.SwapToken,
		SwapPair:       m.SwapPair,
	}
}

// BondMsg is the hook message of staking tokens sent to a pool address.
type BondMsg struct {
	Pool string `json:"pool"`
}

var _ nexus.Msg = (*BondMsg)(nil)

func (BondMsg) Path() string {
	return pathBondMsg
}

func (m *BondMsg) Validate() error {
	return validatePoolName(m.Pool)
}

// UnbondMsg returns staked tokens to the signer.
type UnbondMsg struct {
	Pool   string       `json:"pool"`
	Amount decimal.Uint `json:"amount"`
}

var _ nexus.Msg = (*UnbondMsg)(nil)

func (UnbondMsg) Path() string {
	return pathUnbondMsg
}

func (m *UnbondMsg) Validate() error {
	return validateAmount(validatePoolName(m.Pool), m.Amount)
}

// ClaimMsg pays the rewards of the signer to the recipient, or to the signer
// when no recipient is given.
type ClaimMsg struct {
	Pool      string        `json:"pool"`
	Recipient nexus.Address `json:"recipient,omitempty"`
}

var _ nexus.Msg = (*ClaimMsg)(nil)

func (ClaimMsg) Path() string {
	return pathClaimMsg
}

func (m *ClaimMsg) Validate() error {
	errs := validatePoolName(m.Pool)
	if m.Recipient != nil {
		errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	}
	return errs
}

// ClaimForMsg pays the rewards of a staker to that staker. Anyone can
// submit it.
type ClaimForMsg struct {
	Pool   string        `json:"pool"`
	Staker nexus.Address `json:"staker"`
}

var _ nexus.Msg = (*ClaimForMsg)(nil)

func (ClaimForMsg) Path() string {
	return pathClaimForMsg
}

func (m *ClaimForMsg) Validate() error {
	return errors.AppendField(validatePoolName(m.Pool), "Staker", m.Staker.Validate())
}

// UpdateGlobalIndexMsg checkpoints both streams of a pool.
type UpdateGlobalIndexMsg struct {
	Pool string `json:"pool"`
}

var _ nexus.Msg = (*UpdateGlobalIndexMsg)(nil)

func (UpdateGlobalIndexMsg) Path() string {
	return pathUpdateGlobalIndexMsg
}

func (m *UpdateGlobalIndexMsg) Validate() error {
	return validatePoolName(m.Pool)
}

// RewardMsg credits the virtual stream of a pool. Only the reward operator
// can use it.
type RewardMsg struct {
	Pool   string       `json:"pool"`
	Amount decimal.Uint `json:"amount"`
}

var _ nexus.Msg = (*RewardMsg)(nil)

func (RewardMsg) Path() string {
	return pathRewardMsg
}

func (m *RewardMsg) Validate() error {
	return validateAmount(validatePoolName(m.Pool), m.Amount)
}

// IncreaseBalanceMsg reports a stake increase of a delegated pool. Only the
// stake operator can use it.
type IncreaseBalanceMsg struct {
	Pool   string        `json:"pool"`
	Staker nexus.Address `json:"staker"`
	Amount decimal.Uint  `json:"amount"`
}

var _ nexus.Msg = (*IncreaseBalanceMsg)(nil)

func (IncreaseBalanceMsg) Path() string {
	return pathIncreaseBalanceMsg
}

func (m *IncreaseBalanceMsg) Validate() error {
	errs := errors.AppendField(validatePoolName(m.Pool), "Staker", m.Staker.Validate())
	return validateAmount(errs, m.Amount)
}

// DecreaseBalanceMsg reports a stake decrease of a delegated pool. Only the
// stake operator can use it.
type DecreaseBalanceMsg struct {
	Pool   string        `json:"pool"`
	Staker nexus.Address `json:"staker"`
	Amount decimal.Uint  `json:"amount"`
}

var _ nexus.Msg = (*DecreaseBalanceMsg)(nil)

func (DecreaseBalanceMsg) Path() string {
	return pathDecreaseBalanceMsg
}

func (m *DecreaseBalanceMsg) Validate() error {
	errs := errors.AppendField(validatePoolName(m.Pool), "Staker", m.Staker.Validate())
	return validateAmount(errs, m.Amount)
}

// UpdatePoolMsg changes the operators or the swap pair of a pool. Only the
// pool governance can use it. Empty fields are left unchanged.
type UpdatePoolMsg struct {
	Pool           string        `json:"pool"`
	StakeOperator  nexus.Address `json:"stake_operator,omitempty"`
	RewardOperator nexus.Address `json:"reward_operator,omitempty"`
	SwapPair       string        `json:"swap_pair,omitempty"`
}

var _ nexus.Msg = (*UpdatePoolMsg)(nil)

func (UpdatePoolMsg) Path() string {
	return pathUpdatePoolMsg
}

func (m *UpdatePoolMsg) Validate() error {
	errs := validatePoolName(m.Pool)
	if m.StakeOperator != nil {
		errs = errors.AppendField(errs, "StakeOperator", m.StakeOperator.Validate())
	}
	if m.RewardOperator != nil {
		errs = errors.AppendField(errs, "RewardOperator", m.RewardOperator.Validate())
	}
	if m.StakeOperator == nil && m.RewardOperator == nil && m.SwapPair == "" {
		errs = errors.Append(errs, errors.Wrap(errors.ErrEmpty, "nothing to update"))
	}
	return errs
}
