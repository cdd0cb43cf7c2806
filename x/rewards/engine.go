package rewards

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Bank is the token ledger used to read stream balances and delegated
// stakes.
type Bank interface {
	Balance(db nexus.ReadOnlyKVStore, token string, holder nexus.Address) (decimal.Uint, error)
	Supply(db nexus.ReadOnlyKVStore, token string) (decimal.Uint, error)
}

// Engine implements the reward accounting of all pools.
//
// Every operation loads the pool, brings both streams up to date and writes
// the result back before returning. An error leaves the store untouched only
// when the caller discards the writes, which the host does for every failed
// operation.
type Engine struct {
	bank Bank
}

// NewEngine returns an engine reading balances from given bank.
func NewEngine(bank Bank) Engine {
	return Engine{bank: bank}
}

// position is the pool and staker state loaded for a single operation.
type position struct {
	name   string
	pool   *Pool
	state  *PoolState
	addr   nexus.Address
	staker *StakerAccount
}

func (e Engine) load(db nexus.ReadOnlyKVStore, name string, staker nexus.Address) (*position, error) {
	pool, err := LoadPool(db, name)
	if err != nil {
		return nil, err
	}
	state, err := loadState(db, name)
	if err != nil {
		return nil, err
	}
	p := &position{name: name, pool: pool, state: state, addr: staker}
	if staker != nil {
		if p.staker, err = loadStaker(db, name, staker); err != nil {
			return nil, err
		}
	}
	if err := e.resolveStake(db, p); err != nil {
		return nil, err
	}
	return p, nil
}

// resolveStake replaces the tracked stake with the staking token ledger when
// the pool stake is delegated.
func (e Engine) resolveStake(db nexus.ReadOnlyKVStore, p *position) error {
	if !p.pool.Delegated() {
		return nil
	}
	total, err := e.bank.Supply(db, p.pool.StakingToken)
	if err != nil {
		return errors.Wrap(err, "delegated total stake")
	}
	p.state.TotalStaked = total
	if p.staker != nil {
		if p.staker.Balance, err = e.bank.Balance(db, p.pool.StakingToken, p.addr); err != nil {
			return errors.Wrap(err, "delegated stake")
		}
	}
	return nil
}

func (e Engine) streamBalance(db nexus.ReadOnlyKVStore, p *position, s Stream) (decimal.Uint, error) {
	if s == Virtual {
		return p.state.VirtualBalance, nil
	}
	return e.bank.Balance(db, p.pool.RewardToken, PoolAddress(p.name))
}

// checkpoint brings both streams up to date and returns the amounts accrued
// per stream.
func (e Engine) checkpoint(db nexus.ReadOnlyKVStore, p *position) (accrued [2]decimal.Uint, err error) {
	for _, s := range Streams {
		bal, err := e.streamBalance(db, p, s)
		if err != nil {
			return accrued, err
		}
		if accrued[s], err = p.state.Stream(s).Checkpoint(bal, p.state.TotalStaked); err != nil {
			return accrued, errors.Wrapf(err, "%s checkpoint", s)
		}
	}
	return accrued, nil
}

func (e Engine) save(db nexus.KVStore, p *position) error {
	if err := states.Put(db, []byte(p.name), p.state); err != nil {
		return err
	}
	if p.staker != nil {
		return stakers.Put(db, stakerKey(p.name, p.addr), p.staker)
	}
	return nil
}

// Claim settles both streams of the staker and pays the smaller of the two
// amounts. The part of the other stream that was not paid stays pending.
//
// Claim only updates the bookkeeping. The caller must move the returned
// amount of reward tokens out of the pool address.
func (e Engine) Claim(db nexus.KVStore, name string, staker nexus.Address) (decimal.Uint, error) {
	p, err := e.load(db, name, staker)
	if err != nil {
		return decimal.Uint{}, err
	}
	if _, err := e.checkpoint(db, p); err != nil {
		return decimal.Uint{}, err
	}
	var settled [2]decimal.Uint
	for _, s := range Streams {
		if settled[s], err = Settle(p.state.Stream(s).GlobalIndex, p.staker, s); err != nil {
			return decimal.Uint{}, err
		}
	}
	claimable := decimal.MinUint(settled[Virtual], settled[Real])
	if claimable.IsZero() {
		return decimal.Uint{}, errors.Wrapf(ErrNoRewards, "pool %q", name)
	}

	for _, s := range Streams {
		g := p.state.Stream(s)
		if g.PrevBalance, err = g.PrevBalance.Sub(claimable); err != nil {
			return decimal.Uint{}, errors.Wrapf(err, "%s balance", s)
		}
		// Settle kept only the fraction. The whole part that was not
		// paid goes back to pending.
		left, err := settled[s].Sub(claimable)
		if err != nil {
			return decimal.Uint{}, err
		}
		leftDec, err := left.Dec()
		if err != nil {
			return decimal.Uint{}, err
		}
		pos := p.staker.Stream(s)
		if pos.Pending, err = pos.Pending.Add(leftDec); err != nil {
			return decimal.Uint{}, err
		}
	}
	if p.state.VirtualBalance, err = p.state.VirtualBalance.Sub(claimable); err != nil {
		return decimal.Uint{}, errors.Wrap(err, "virtual balance")
	}
	if err := e.save(db, p); err != nil {
		return decimal.Uint{}, err
	}
	return claimable, nil
}

// IncreaseBalance adds amount to the stake of the staker.
//
// When the stake is delegated the operator already applied the change to the
// staking token ledger, so the values before the change are computed by
// reversing it.
func (e Engine) IncreaseBalance(db nexus.KVStore, name string, staker nexus.Address, amount decimal.Uint) error {
	p, err := e.load(db, name, staker)
	if err != nil {
		return err
	}
	if p.pool.Delegated() {
		if p.staker.Balance, err = p.staker.Balance.Sub(amount); err != nil {
			return errors.Wrap(errors.ErrState, "delegated stake lower than increase")
		}
		if p.state.TotalStaked, err = p.state.TotalStaked.Sub(amount); err != nil {
			return errors.Wrap(errors.ErrState, "delegated total lower than increase")
		}
	}
	return e.changeBalance(db, p, func(v decimal.Uint) (decimal.Uint, error) {
		return v.Add(amount)
	})
}

// DecreaseBalance removes amount from the stake of the staker.
// ErrInsufficientBalance is returned if a tracked stake is lower than
// amount.
func (e Engine) DecreaseBalance(db nexus.KVStore, name string, staker nexus.Address, amount decimal.Uint) error {
	p, err := e.load(db, name, staker)
	if err != nil {
		return err
	}
	if p.pool.Delegated() {
		if p.staker.Balance, err = p.staker.Balance.Add(amount); err != nil {
			return err
		}
		if p.state.TotalStaked, err = p.state.TotalStaked.Add(amount); err != nil {
			return err
		}
	} else if p.staker.Balance.LT(amount) {
		return errors.Wrapf(ErrInsufficientBalance, "staked %s %s, %s required", p.staker.Balance, p.pool.StakingToken, amount)
	}
	return e.changeBalance(db, p, func(v decimal.Uint) (decimal.Uint, error) {
		return v.Sub(amount)
	})
}

// changeBalance settles the staker with the stake before the change and
// checkpoints again with the stake after the change. Without the second
// checkpoint rewards that arrived in between would be spread over stake that
// was not present when they accrued.
func (e Engine) changeBalance(db nexus.KVStore, p *position, apply func(decimal.Uint) (decimal.Uint, error)) error {
	if _, err := e.checkpoint(db, p); err != nil {
		return err
	}
	for _, s := range Streams {
		if err := fold(p.state.Stream(s).GlobalIndex, p.staker, s); err != nil {
			return err
		}
	}
	var err error
	if p.staker.Balance, err = apply(p.staker.Balance); err != nil {
		return errors.Wrap(err, "staker balance")
	}
	if p.state.TotalStaked, err = apply(p.state.TotalStaked); err != nil {
		return errors.Wrap(err, "total staked")
	}
	if _, err := e.checkpoint(db, p); err != nil {
		return err
	}
	return e.save(db, p)
}

// IndexUpdate is the outcome of a global index update.
type IndexUpdate struct {
	Virtual decimal.Uint `json:"virtual"`
	Real    decimal.Uint `json:"real"`
	// Unattributed is true when nothing was staked and the accrued amounts
	// could not be distributed.
	Unattributed bool `json:"unattributed"`
}

// UpdateGlobalIndex checkpoints both streams of the pool.
func (e Engine) UpdateGlobalIndex(db nexus.KVStore, name string) (IndexUpdate, error) {
	p, err := e.load(db, name, nil)
	if err != nil {
		return IndexUpdate{}, err
	}
	accrued, err := e.checkpoint(db, p)
	if err != nil {
		return IndexUpdate{}, err
	}
	if err := e.save(db, p); err != nil {
		return IndexUpdate{}, err
	}
	res := IndexUpdate{
		Virtual: accrued[Virtual],
		Real:    accrued[Real],
	}
	res.Unattributed = p.state.TotalStaked.IsZero() && !(res.Virtual.IsZero() && res.Real.IsZero())
	return res, nil
}

// Reward credits amount to the virtual stream of the pool.
func (e Engine) Reward(db nexus.KVStore, name string, amount decimal.Uint) error {
	state, err := loadState(db, name)
	if err != nil {
		return err
	}
	if state.VirtualBalance, err = state.VirtualBalance.Add(amount); err != nil {
		return errors.Wrap(err, "virtual balance")
	}
	return states.Put(db, []byte(name), state)
}

// RewardsView is the reward a staker could claim now.
type RewardsView struct {
	Virtual   decimal.Uint `json:"virtual"`
	Real      decimal.Uint `json:"real"`
	Claimable decimal.Uint `json:"claimable"`
}

// Rewards returns the rewards of the staker without persisting anything.
func (e Engine) Rewards(db nexus.ReadOnlyKVStore, name string, staker nexus.Address) (RewardsView, error) {
	p, err := e.load(db, name, staker)
	if err != nil {
		return RewardsView{}, err
	}
	if _, err := e.checkpoint(db, p); err != nil {
		return RewardsView{}, err
	}
	var view RewardsView
	if view.Virtual, err = Settle(p.state.Virtual.GlobalIndex, p.staker, Virtual); err != nil {
		return RewardsView{}, err
	}
	if view.Real, err = Settle(p.state.Real.GlobalIndex, p.staker, Real); err != nil {
		return RewardsView{}, err
	}
	view.Claimable = decimal.MinUint(view.Virtual, view.Real)
	return view, nil
}

// Staker returns the staker account settled with the current global indexes
// without persisting anything. The whole settled reward is reported as
// pending.
func (e Engine) Staker(db nexus.ReadOnlyKVStore, name string, staker nexus.Address) (*StakerAccount, error) {
	p, err := e.load(db, name, staker)
	if err != nil {
		return nil, err
	}
	if _, err := e.checkpoint(db, p); err != nil {
		return nil, err
	}
	for _, s := range Streams {
		if err := fold(p.state.Stream(s).GlobalIndex, p.staker, s); err != nil {
			return nil, err
		}
	}
	return p.staker, nil
}

// State returns the pool state as stored, with the delegated total stake
// when the pool stake is delegated.
func (e Engine) State(db nexus.ReadOnlyKVStore, name string) (*PoolState, error) {
	p, err := e.load(db, name, nil)
	if err != nil {
		return nil, err
	}
	return p.state, nil
}
