package cash

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Controller is the functionality needed by other extensions to read and
// move balances.
type Controller interface {
	Balance(db nexus.ReadOnlyKVStore, token string, holder nexus.Address) (decimal.Uint, error)
	Supply(db nexus.ReadOnlyKVStore, token string) (decimal.Uint, error)
	MoveCoins(db nexus.KVStore, token string, src, dest nexus.Address, amount decimal.Uint) error
	Mint(db nexus.KVStore, token string, minter, dest nexus.Address, amount decimal.Uint) error
	Burn(db nexus.KVStore, token string, holder nexus.Address, amount decimal.Uint) error
}

// BaseController is the store backed Controller.
type BaseController struct{}

var _ Controller = BaseController{}

// NewController returns a controller that works on the accounts stored by
// this extension.
func NewController() BaseController {
	return BaseController{}
}

// Balance returns the amount of token held by holder. Holders unknown to the
// token have zero balance.
func (BaseController) Balance(db nexus.ReadOnlyKVStore, token string, holder nexus.Address) (decimal.Uint, error) {
	if _, err := loadToken(db, token); err != nil {
		return decimal.Uint{}, err
	}
	var acc Account
	switch err := accounts.One(db, accountKey(token, holder), &acc); {
	case errors.ErrNotFound.Is(err):
		return decimal.ZeroUint(), nil
	case err != nil:
		return decimal.Uint{}, err
	}
	return acc.Amount, nil
}

// Supply returns the total amount of token ever minted and not burned.
func (BaseController) Supply(db nexus.ReadOnlyKVStore, token string) (decimal.Uint, error) {
	t, err := loadToken(db, token)
	if err != nil {
		return decimal.Uint{}, err
	}
	return t.Supply, nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(db nexus.KVStore, token string, src, dest nexus.Address, amount decimal.Uint) error {
	if amount.IsZero() {
		return errors.Wrap(errors.ErrInput, "zero amount")
	}
	if err := c.sub(db, token, src, amount); err != nil {
		return err
	}
	return c.add(db, token, dest, amount)
}

// Mint creates amount of token on dest account. Only the minter of the token
// is allowed to do that.
func (c BaseController) Mint(db nexus.KVStore, token string, minter, dest nexus.Address, amount decimal.Uint) error {
	t, err := loadToken(db, token)
	if err != nil {
		return err
	}
	if !t.Minter.Equals(minter) {
		return errors.Wrapf(errors.ErrUnauthorized, "minter of %q", token)
	}
	if t.Supply, err = t.Supply.Add(amount); err != nil {
		return errors.Wrap(err, "supply")
	}
	if err := tokens.Put(db, []byte(token), t); err != nil {
		return err
	}
	return c.add(db, token, dest, amount)
}

// Burn destroys amount of token held by holder.
func (c BaseController) Burn(db nexus.KVStore, token string, holder nexus.Address, amount decimal.Uint) error {
	t, err := loadToken(db, token)
	if err != nil {
		return err
	}
	if err := c.sub(db, token, holder, amount); err != nil {
		return err
	}
	if t.Supply, err = t.Supply.Sub(amount); err != nil {
		return errors.Wrap(err, "supply")
	}
	return tokens.Put(db, []byte(token), t)
}

func (c BaseController) add(db nexus.KVStore, token string, holder nexus.Address, amount decimal.Uint) error {
	if err := holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	have, err := c.Balance(db, token, holder)
	if err != nil {
		return err
	}
	sum, err := have.Add(amount)
	if err != nil {
		return errors.Wrapf(err, "balance of %s", holder)
	}
	return accounts.Put(db, accountKey(token, holder), &Account{Amount: sum})
}

func (c BaseController) sub(db nexus.KVStore, token string, holder nexus.Address, amount decimal.Uint) error {
	have, err := c.Balance(db, token, holder)
	if err != nil {
		return err
	}
	if have.LT(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "%s has %s %s, %s required", holder, have, token, amount)
	}
	left, err := have.Sub(amount)
	if err != nil {
		return err
	}
	return accounts.Put(db, accountKey(token, holder), &Account{Amount: left})
}
