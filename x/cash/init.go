package cash

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// GenesisToken declares a token and its minter.
type GenesisToken struct {
	Name   string        `json:"name"`
	Minter nexus.Address `json:"minter"`
}

// GenesisAccount is used to describe an initial balance. The balance is
// added to the token supply.
type GenesisAccount struct {
	Token   string        `json:"token"`
	Address nexus.Address `json:"address"`
	Amount  decimal.Uint  `json:"amount"`
}

// GenesisPair declares a trading pair. Its reserves are funded with genesis
// accounts held by the pair address.
type GenesisPair struct {
	Name   string `json:"name"`
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ nexus.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis and save it to the
// database.
func (*Initializer) FromGenesis(opts nexus.Options, db nexus.KVStore) error {
	var genesis struct {
		Tokens   []GenesisToken   `json:"tokens"`
		Accounts []GenesisAccount `json:"accounts"`
		Pairs    []GenesisPair    `json:"pairs"`
	}
	if err := opts.ReadOptions("cash", &genesis); err != nil {
		return errors.Wrap(err, "cannot load cash genesis")
	}

	for _, t := range genesis.Tokens {
		if err := CreateToken(db, t.Name, t.Minter); err != nil {
			return err
		}
	}

	ctrl := NewController()
	for i, acc := range genesis.Accounts {
		token, err := loadToken(db, acc.Token)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if err := ctrl.Mint(db, acc.Token, token.Minter, acc.Address, acc.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}

	for _, p := range genesis.Pairs {
		if err := CreatePair(db, p.Name, p.TokenA, p.TokenB); err != nil {
			return err
		}
	}
	return nil
}
