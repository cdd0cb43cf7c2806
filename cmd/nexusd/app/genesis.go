package app

import (
	"encoding/json"
	"strings"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/app"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/rewards"
	"github.com/iov-one/nexus/x/vault"
)

// Token and pool names of the default genesis.
const (
	BondToken   = "yluna"
	BoostToken  = "xprism"
	RewardToken = "prism"
	BondShare   = "nyluna"
	BoostShare  = "nexprism"

	BondPair  = "yluna_prism"
	BoostPair = "xprism_prism"

	PoolA = "nyluna_pool"
	PoolB = "nexprism_pool"
	PoolC = "yluna_pool"
)

// Owner is the name of the account governing the default genesis.
const Owner = "owner"

// AccountAddress returns the address of a named scenario account.
func AccountAddress(name string) nexus.Address {
	return nexus.NewCondition("nexusd", "account", []byte(name)).Address()
}

// ResolveAddress turns a reference into an address. Accepted are "@vault",
// "@launch", "@pool:<name>", "@pair:<name>", "@<account>" and any encoded
// address.
func ResolveAddress(ref string) (nexus.Address, error) {
	if !strings.HasPrefix(ref, "@") {
		return nexus.ParseAddress(ref)
	}
	name := ref[1:]
	switch {
	case name == "vault":
		return vault.Address(), nil
	case name == "launch":
		return launch.Address(), nil
	case strings.HasPrefix(name, "pool:"):
		return rewards.PoolAddress(strings.TrimPrefix(name, "pool:")), nil
	case strings.HasPrefix(name, "pair:"):
		return cash.PairAddress(strings.TrimPrefix(name, "pair:")), nil
	case name == "":
		return nil, errors.Wrap(errors.ErrInput, "empty account name")
	default:
		return AccountAddress(name), nil
	}
}

// DefaultGenesis returns a genesis with the whole vault setup. Every named
// account is funded with bond and reward tokens and both pairs hold
// reserves.
func DefaultGenesis(chainID string, accounts ...string) (app.Genesis, error) {
	owner := AccountAddress(Owner)
	amount := func(n uint64) decimal.Uint { return decimal.NewUint(n) }

	tokens := []cash.GenesisToken{
		{Name: BondToken, Minter: owner},
		{Name: BoostToken, Minter: launch.Address()},
		{Name: RewardToken, Minter: owner},
		{Name: BondShare, Minter: vault.Address()},
		{Name: BoostShare, Minter: vault.Address()},
	}
	balances := []cash.GenesisAccount{
		{Token: BondToken, Address: cash.PairAddress(BondPair), Amount: amount(1000000)},
		{Token: RewardToken, Address: cash.PairAddress(BondPair), Amount: amount(2000000)},
		{Token: BoostToken, Address: cash.PairAddress(BoostPair), Amount: amount(1000000)},
		{Token: RewardToken, Address: cash.PairAddress(BoostPair), Amount: amount(1000000)},
		{Token: RewardToken, Address: launch.Address(), Amount: amount(1000000)},
	}
	for _, name := range append([]string{Owner}, accounts...) {
		addr := AccountAddress(name)
		balances = append(balances,
			cash.GenesisAccount{Token: BondToken, Address: addr, Amount: amount(100000)},
			cash.GenesisAccount{Token: RewardToken, Address: addr, Amount: amount(100000)},
		)
	}

	pools := make([]rewards.GenesisPool, 0, 3)
	for _, p := range []struct{ name, staking string }{
		{PoolA, BondShare},
		{PoolB, BoostShare},
		{PoolC, BondToken},
	} {
		pools = append(pools, rewards.GenesisPool{
			Name: p.name,
			Pool: rewards.Pool{
				Owner:          owner,
				StakingToken:   p.staking,
				RewardToken:    RewardToken,
				RewardOperator: vault.Address(),
			},
		})
	}

	opts := map[string]interface{}{
		"cash": map[string]interface{}{
			"tokens":   tokens,
			"accounts": balances,
			"pairs": []cash.GenesisPair{
				{Name: BondPair, TokenA: BondToken, TokenB: RewardToken},
				{Name: BoostPair, TokenA: BoostToken, TokenB: RewardToken},
			},
		},
		"governance": []map[string]interface{}{
			{"namespace": "vault", "address": owner},
		},
		"rewards": map[string]interface{}{
			"pools": pools,
		},
		"vault": map[string]interface{}{
			"ratio_a": decimal.MustParseDec("0.5"),
			"ratio_b": decimal.MustParseDec("0.3"),
			"ratio_c": decimal.MustParseDec("0.2"),
		},
		"conf": map[string]interface{}{
			"launch": launch.Configuration{
				Admin:       owner,
				BondToken:   BondToken,
				BoostToken:  BoostToken,
				RewardToken: RewardToken,
				BaseRatio:   decimal.MustParseDec("0.8"),
			},
			"vault": vault.Configuration{
				Owner:       owner,
				BondToken:   BondToken,
				BoostToken:  BoostToken,
				RewardToken: RewardToken,
				BondShare:   BondShare,
				BoostShare:  BoostShare,
				BondPair:    BondPair,
				BoostPair:   BoostPair,
				PoolA:       PoolA,
				PoolB:       PoolB,
				PoolC:       PoolC,
				Period:      3600,
				Step:        decimal.MustParseDec("0.99"),
				MinA:        decimal.MustParseDec("0.1"),
				MaxA:        decimal.MustParseDec("0.8"),
				MinB:        decimal.MustParseDec("0.1"),
				MaxB:        decimal.MustParseDec("0.8"),
			},
		},
	}

	gen := app.Genesis{ChainID: chainID, AppOptions: make(nexus.Options, len(opts))}
	for key, v := range opts {
		raw, err := json.Marshal(v)
		if err != nil {
			return gen, errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
		}
		gen.AppOptions[key] = raw
	}
	return gen, nil
}
