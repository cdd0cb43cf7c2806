package ratio

import (
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Signal is the direction ratio A should move in.
type Signal int

const (
	Zero Signal = iota
	Positive
	Negative
)

func (s Signal) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "zero"
	}
}

// Curve holds the launch pool quantities the signal is derived from.
type Curve struct {
	// BaseRatio is the share of launch pool rewards paid by bond, the
	// rest is paid by boost.
	BaseRatio decimal.Dec
	// TotalBond is the amount bonded to the launch pool by everyone (T).
	TotalBond decimal.Uint
	// Bond is the amount bonded by the vault (y).
	Bond decimal.Uint
	// TotalWeight is the boost weight of everyone (W).
	TotalWeight decimal.Uint
	// Weight is the boost weight of the vault (w).
	Weight decimal.Uint
	// Amplification is the active boost of the vault (k).
	Amplification decimal.Uint
	// Boosted is the amount of the boost asset held by the vault (x).
	Boosted decimal.Uint
}

// ComputeSignal compares the marginal value of the bonded asset against the
// marginal value of the boost asset, given their prices:
//
//	a = baseRatio·(T−y)/T²
//	b = W−w
//	c = b + sqrt(k·y)
//	d = (1−baseRatio)·b·sqrt(k/y) / (2·c²)
//	e = d·(y/x)·(priceY/priceX)
//
// The signal is Positive if a+d > e, Negative if a+d < e and Zero otherwise.
// A curve with nothing bonded or boosted carries no information and gives
// Zero.
func ComputeSignal(cv Curve, priceY, priceX decimal.Dec) (Signal, error) {
	if cv.TotalBond.IsZero() || cv.Bond.IsZero() || cv.Boosted.IsZero() {
		return Zero, nil
	}
	if priceY.IsZero() || priceX.IsZero() {
		return Zero, errors.Wrap(errors.ErrInput, "zero price")
	}
	if cv.Bond.GT(cv.TotalBond) || cv.Weight.GT(cv.TotalWeight) {
		return Zero, errors.Wrap(errors.ErrState, "vault share greater than total")
	}

	c := calc{}
	T := c.dec(cv.TotalBond)
	y := c.dec(cv.Bond)
	k := c.dec(cv.Amplification)
	x := c.dec(cv.Boosted)

	a := c.quo(c.mul(cv.BaseRatio, c.sub(T, y)), c.mul(T, T))
	b := c.dec(c.subUint(cv.TotalWeight, cv.Weight))
	cc := c.add(b, c.sqrt(c.mul(k, y)))
	if c.err == nil && cc.IsZero() {
		return Zero, nil
	}
	d := c.quo(
		c.mul(c.mul(c.sub(decimal.OneDec(), cv.BaseRatio), b), c.sqrt(c.quo(k, y))),
		c.mul(decimal.NewDec(2), c.mul(cc, cc)),
	)
	e := c.quo(c.mul(c.mul(d, c.quo(y, x)), priceY), priceX)
	left := c.add(a, d)
	if c.err != nil {
		return Zero, errors.Wrap(c.err, "signal")
	}

	switch left.Cmp(e) {
	case 1:
		return Positive, nil
	case -1:
		return Negative, nil
	default:
		return Zero, nil
	}
}

// calc chains decimal operations and keeps the first error.
type calc struct {
	err error
}

func (c *calc) keep(d decimal.Dec, err error) decimal.Dec {
	if c.err == nil && err != nil {
		c.err = err
	}
	return d
}

func (c *calc) dec(u decimal.Uint) decimal.Dec   { return c.keep(u.Dec()) }
func (c *calc) add(a, b decimal.Dec) decimal.Dec { return c.keep(a.Add(b)) }
func (c *calc) sub(a, b decimal.Dec) decimal.Dec { return c.keep(a.Sub(b)) }
func (c *calc) mul(a, b decimal.Dec) decimal.Dec { return c.keep(a.Mul(b)) }
func (c *calc) quo(a, b decimal.Dec) decimal.Dec { return c.keep(a.Quo(b)) }
func (c *calc) sqrt(a decimal.Dec) decimal.Dec   { return c.keep(a.Sqrt()) }

func (c *calc) subUint(a, b decimal.Uint) decimal.Uint {
	res, err := a.Sub(b)
	if c.err == nil && err != nil {
		c.err = err
	}
	return res
}
