package rewards

import (
	"regexp"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/orm"
	"github.com/iov-one/nexus/x/cash"
)

// Stream identifies one of the two reward streams of a pool.
type Stream int

const (
	// Virtual is the notional stream credited by the reward operator.
	Virtual Stream = iota
	// Real is the stream backed by the reward tokens held by the pool.
	Real
)

// Streams lists all streams in the order they are processed.
var Streams = []Stream{Virtual, Real}

func (s Stream) String() string {
	if s == Real {
		return "real"
	}
	return "virtual"
}

var isPoolName = regexp.MustCompile(`^[a-z][a-z0-9_]{2,15}$`).MatchString

// PoolAddress returns the account that holds the staked and reward tokens of
// the named pool.
func PoolAddress(name string) nexus.Address {
	return nexus.NewCondition("rewards", "pool", []byte(name)).Address()
}

// Namespace returns the governance namespace of the named pool.
func Namespace(name string) string {
	return "rewards/" + name
}

// Pool is the configuration of a staking pool.
type Pool struct {
	Owner        nexus.Address `json:"owner"`
	StakingToken string        `json:"staking_token"`
	RewardToken  string        `json:"reward_token"`
	// StakeOperator when set is the only account allowed to change
	// balances. Staked balances are then read from the staking token
	// ledger instead of being tracked by the pool.
	StakeOperator  nexus.Address `json:"stake_operator,omitempty"`
	RewardOperator nexus.Address `json:"reward_operator"`
	// SwapGovernance is the mint target that converts claimed reward
	// tokens into SwapToken.
	SwapGovernance nexus.Address `json:"swap_governance,omitempty"`
	SwapToken      string        `json:"swap_token,omitempty"`
	SwapPair       string        `json:"swap_pair,omitempty"`
}

var _ orm.Model = (*Pool)(nil)

func (p *Pool) Validate() error {
	return errors.AppendField(p.validateSettings(), "Owner", p.Owner.Validate())
}

// validateSettings validates everything but the owner.
func (p *Pool) validateSettings() error {
	var errs error
	errs = errors.AppendField(errs, "StakingToken", cash.ValidateToken(p.StakingToken))
	errs = errors.AppendField(errs, "RewardToken", cash.ValidateToken(p.RewardToken))
	if p.StakingToken == p.RewardToken {
		errs = errors.AppendField(errs, "RewardToken", errors.ErrDuplicate)
	}
	if p.StakeOperator != nil {
		errs = errors.AppendField(errs, "StakeOperator", p.StakeOperator.Validate())
	}
	errs = errors.AppendField(errs, "RewardOperator", p.RewardOperator.Validate())
	if p.SwapGovernance != nil {
		errs = errors.AppendField(errs, "SwapGovernance", p.SwapGovernance.Validate())
	}
	if p.SwapToken != "" {
		errs = errors.AppendField(errs, "SwapToken", cash.ValidateToken(p.SwapToken))
	}
	return errs
}

// Delegated returns true if balances are managed by the stake operator.
func (p *Pool) Delegated() bool {
	return p.StakeOperator != nil
}

type route int

const (
	routeTransfer route = iota
	routeSwap
	routeSwapForward
)

func (r route) String() string {
	switch r {
	case routeSwap:
		return "swap"
	case routeSwapForward:
		return "swap_forward"
	default:
		return "transfer"
	}
}

// route returns how claimed rewards are delivered.
func (p *Pool) route() (route, error) {
	hasGov, hasToken, hasPair := p.SwapGovernance != nil, p.SwapToken != "", p.SwapPair != ""
	switch {
	case !hasGov && !hasToken && !hasPair:
		return routeTransfer, nil
	case hasGov && !hasToken && !hasPair:
		return routeSwap, nil
	case hasGov && hasToken && hasPair:
		return routeSwapForward, nil
	default:
		return 0, errors.Wrap(errors.ErrState, "invalid config: incomplete swap route")
	}
}

// GlobalRewardState is the accumulator of a single stream.
type GlobalRewardState struct {
	// GlobalIndex is the reward earned by a single staked unit since the
	// pool was created. It never decreases.
	GlobalIndex decimal.Dec `json:"global_index"`
	// PrevBalance is the stream balance seen by the latest checkpoint.
	PrevBalance decimal.Uint `json:"prev_balance"`
}

// PoolState is the mutable state of a pool.
type PoolState struct {
	TotalStaked decimal.Uint `json:"total_staked"`
	// VirtualBalance is the notional balance of the virtual stream.
	VirtualBalance decimal.Uint      `json:"virtual_balance"`
	Virtual        GlobalRewardState `json:"virtual"`
	Real           GlobalRewardState `json:"real"`
}

var _ orm.Model = (*PoolState)(nil)

func (s *PoolState) Validate() error {
	return nil
}

// Stream returns the accumulator of given stream.
func (s *PoolState) Stream(st Stream) *GlobalRewardState {
	if st == Real {
		return &s.Real
	}
	return &s.Virtual
}

// StreamAccount is the settlement position of a staker in a single stream.
type StreamAccount struct {
	// Index is the global index this account was last settled with.
	Index decimal.Dec `json:"index"`
	// Pending is the settled reward that was not paid yet.
	Pending decimal.Dec `json:"pending"`
}

// StakerAccount is the position of a staker in a pool. It is created on
// first use and never deleted.
type StakerAccount struct {
	Balance decimal.Uint  `json:"balance"`
	Virtual StreamAccount `json:"virtual"`
	Real    StreamAccount `json:"real"`
}

var _ orm.Model = (*StakerAccount)(nil)

func (a *StakerAccount) Validate() error {
	return nil
}

// Stream returns the position in given stream.
func (a *StakerAccount) Stream(st Stream) *StreamAccount {
	if st == Real {
		return &a.Real
	}
	return &a.Virtual
}

var (
	pools   = orm.NewModelBucket("rewards_pool")
	states  = orm.NewModelBucket("rewards_state")
	stakers = orm.NewModelBucket("rewards_staker")
)

func stakerKey(pool string, staker nexus.Address) []byte {
	return append([]byte(pool+":"), staker...)
}

// CreatePool stores a new pool with zero state. Setting up the governance of
// the pool namespace is left to the caller.
func CreatePool(db nexus.KVStore, name string, p *Pool) error {
	if !isPoolName(name) {
		return errors.Wrapf(errors.ErrInput, "invalid pool name %q", name)
	}
	switch ok, err := pools.Has(db, []byte(name)); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "pool %q", name)
	}
	if err := pools.Put(db, []byte(name), p); err != nil {
		return errors.Wrapf(err, "pool %q", name)
	}
	st := PoolState{
		TotalStaked:    decimal.ZeroUint(),
		VirtualBalance: decimal.ZeroUint(),
	}
	return states.Put(db, []byte(name), &st)
}

// LoadPool returns the configuration of the named pool.
func LoadPool(db nexus.ReadOnlyKVStore, name string) (*Pool, error) {
	var p Pool
	if err := pools.One(db, []byte(name), &p); err != nil {
		return nil, errors.Wrapf(err, "pool %q", name)
	}
	return &p, nil
}

func savePool(db nexus.KVStore, name string, p *Pool) error {
	return pools.Put(db, []byte(name), p)
}

func loadState(db nexus.ReadOnlyKVStore, name string) (*PoolState, error) {
	var s PoolState
	if err := states.One(db, []byte(name), &s); err != nil {
		return nil, errors.Wrapf(err, "pool state %q", name)
	}
	return &s, nil
}

func loadStaker(db nexus.ReadOnlyKVStore, pool string, addr nexus.Address) (*StakerAccount, error) {
	var a StakerAccount
	switch err := stakers.One(db, stakerKey(pool, addr), &a); {
	case errors.ErrNotFound.Is(err):
		return &a, nil
	case err != nil:
		return nil, err
	}
	return &a, nil
}
