package cash

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Reserves returns the balances of both tokens held by the named pair.
func Reserves(db nexus.ReadOnlyKVStore, ctrl Controller, name, tokenA, tokenB string) (a, b decimal.Uint, err error) {
	addr := PairAddress(name)
	if a, err = ctrl.Balance(db, tokenA, addr); err != nil {
		return a, b, err
	}
	if b, err = ctrl.Balance(db, tokenB, addr); err != nil {
		return a, b, err
	}
	return a, b, nil
}

// Price returns the value of one base token expressed in quote tokens, as
// given by the reserves of the named pair. ErrEmptyReserve is returned if
// the pair does not hold any of the two tokens.
func Price(db nexus.ReadOnlyKVStore, ctrl Controller, name, base, quote string) (decimal.Dec, error) {
	p, err := LoadPair(db, name)
	if err != nil {
		return decimal.Dec{}, err
	}
	if other, err := p.Other(base); err != nil || other != quote {
		return decimal.Dec{}, errors.Wrapf(errors.ErrInput, "pair %q does not trade %s/%s", name, base, quote)
	}
	rb, rq, err := Reserves(db, ctrl, name, base, quote)
	if err != nil {
		return decimal.Dec{}, err
	}
	if rb.IsZero() || rq.IsZero() {
		return decimal.Dec{}, errors.Wrapf(ErrEmptyReserve, "pair %q", name)
	}
	q, err := rq.Dec()
	if err != nil {
		return decimal.Dec{}, err
	}
	return q.QuoUint(rb)
}

// SwapOutput returns the amount received for sending in to a constant
// product pool with given reserves, before in was added.
//
//	out = reserveOut·in / (reserveIn + in)
func SwapOutput(reserveIn, reserveOut, in decimal.Uint) (decimal.Uint, error) {
	num, err := reserveOut.Mul(in)
	if err != nil {
		return decimal.Uint{}, err
	}
	denom, err := reserveIn.Add(in)
	if err != nil {
		return decimal.Uint{}, err
	}
	if denom.IsZero() {
		return decimal.ZeroUint(), nil
	}
	return num.Quo(denom)
}
