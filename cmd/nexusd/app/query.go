package app

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/ratio"
	"github.com/iov-one/nexus/x/rewards"
	"github.com/iov-one/nexus/x/vault"
)

// BalanceView is the balance of a single holder.
type BalanceView struct {
	Token   string        `json:"token"`
	Holder  nexus.Address `json:"holder"`
	Balance decimal.Uint  `json:"balance"`
	Supply  decimal.Uint  `json:"supply"`
}

// PoolView is the state of a reward pool and optionally of one staker.
type PoolView struct {
	Name    string                 `json:"name"`
	Pool    *rewards.Pool          `json:"pool"`
	State   *rewards.PoolState     `json:"state"`
	Staker  *rewards.StakerAccount `json:"staker,omitempty"`
	Rewards *rewards.RewardsView   `json:"rewards,omitempty"`
}

// VaultView is the current reward split and what the vault holds in the
// launch pool.
type VaultView struct {
	Address nexus.Address     `json:"address"`
	Split   ratio.State       `json:"split"`
	Launch  launch.RewardInfo `json:"launch"`
}

// QueryBalance returns the balance of holder.
func QueryBalance(db nexus.ReadOnlyKVStore, token string, holder nexus.Address) (*BalanceView, error) {
	ctrl := cash.NewController()
	bal, err := ctrl.Balance(db, token, holder)
	if err != nil {
		return nil, err
	}
	supply, err := ctrl.Supply(db, token)
	if err != nil {
		return nil, err
	}
	return &BalanceView{Token: token, Holder: holder, Balance: bal, Supply: supply}, nil
}

// QueryPool returns the pool state. The staker is optional.
func QueryPool(db nexus.ReadOnlyKVStore, name string, staker nexus.Address) (*PoolView, error) {
	engine := rewards.NewEngine(cash.NewController())
	pool, err := rewards.LoadPool(db, name)
	if err != nil {
		return nil, err
	}
	state, err := engine.State(db, name)
	if err != nil {
		return nil, err
	}
	view := &PoolView{Name: name, Pool: pool, State: state}
	if staker == nil {
		return view, nil
	}
	if view.Staker, err = engine.Staker(db, name, staker); err != nil {
		return nil, errors.Wrap(err, "staker")
	}
	rv, err := engine.Rewards(db, name, staker)
	if err != nil {
		return nil, errors.Wrap(err, "rewards")
	}
	view.Rewards = &rv
	return view, nil
}

// QueryVault returns the vault split and launch pool position.
func QueryVault(db nexus.ReadOnlyKVStore) (*VaultView, error) {
	split, err := vault.LoadRatios(db)
	if err != nil {
		return nil, err
	}
	info, err := launch.Querier{}.RewardInfo(db, vault.Address())
	if err != nil {
		return nil, err
	}
	return &VaultView{Address: vault.Address(), Split: split, Launch: info}, nil
}
