package decimal

import (
	"encoding/json"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/iov-one/nexus/errors"
)

// Uint is a non negative integer amount of token units.
type Uint struct {
	i uint256.Int
}

// NewUint returns a Uint of given value.
func NewUint(n uint64) Uint {
	var u Uint
	u.i.SetUint64(n)
	return u
}

// ZeroUint returns zero.
func ZeroUint() Uint {
	return Uint{}
}

// ParseUint parses a base 10 integer representation.
func ParseUint(s string) (Uint, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Uint{}, errors.Wrapf(errors.ErrInput, "invalid integer %q", s)
	}
	return uintFromBig(b)
}

// MustParseUint is like ParseUint but panics on error. Use only for
// constants and tests.
func MustParseUint(s string) Uint {
	u, err := ParseUint(s)
	if err != nil {
		panic(err)
	}
	return u
}

func uintFromBig(b *big.Int) (Uint, error) {
	if b.Sign() < 0 {
		return Uint{}, errors.Wrap(errors.ErrUnderflow, "negative integer")
	}
	i, overflow := uint256.FromBig(b)
	if overflow {
		return Uint{}, errors.Wrap(errors.ErrOverflow, "integer exceeds 256 bits")
	}
	return Uint{i: *i}, nil
}

// Add returns u + o.
func (u Uint) Add(o Uint) (Uint, error) {
	var res Uint
	if _, overflow := res.i.AddOverflow(&u.i, &o.i); overflow {
		return Uint{}, errors.Wrap(errors.ErrOverflow, "add")
	}
	return res, nil
}

// Sub returns u - o.
func (u Uint) Sub(o Uint) (Uint, error) {
	var res Uint
	if _, underflow := res.i.SubOverflow(&u.i, &o.i); underflow {
		return Uint{}, errors.Wrapf(errors.ErrUnderflow, "%s - %s", u, o)
	}
	return res, nil
}

// Mul returns u * o.
func (u Uint) Mul(o Uint) (Uint, error) {
	var res Uint
	if _, overflow := res.i.MulOverflow(&u.i, &o.i); overflow {
		return Uint{}, errors.Wrap(errors.ErrOverflow, "mul")
	}
	return res, nil
}

// Quo returns the integer division u / o.
func (u Uint) Quo(o Uint) (Uint, error) {
	if o.IsZero() {
		return Uint{}, errors.Wrap(errors.ErrInput, "division by zero")
	}
	var res Uint
	res.i.Div(&u.i, &o.i)
	return res, nil
}

// Cmp compares u and o and returns -1, 0 or +1.
func (u Uint) Cmp(o Uint) int {
	return u.i.Cmp(&o.i)
}

// Equal returns true if both values are the same.
func (u Uint) Equal(o Uint) bool {
	return u.i.Eq(&o.i)
}

// LT returns true if u < o.
func (u Uint) LT(o Uint) bool {
	return u.i.Lt(&o.i)
}

// GT returns true if u > o.
func (u Uint) GT(o Uint) bool {
	return u.i.Gt(&o.i)
}

// IsZero returns true if u is zero.
func (u Uint) IsZero() bool {
	return u.i.IsZero()
}

// MinUint returns the smaller of both values.
func MinUint(a, b Uint) Uint {
	if a.LT(b) {
		return a
	}
	return b
}

// Uint64 returns the value as uint64 and false if it does not fit.
func (u Uint) Uint64() (uint64, bool) {
	if !u.i.IsUint64() {
		return 0, false
	}
	return u.i.Uint64(), true
}

// BigInt returns a math/big representation of this value.
func (u Uint) BigInt() *big.Int {
	return u.i.ToBig()
}

// Dec returns a decimal of the same value.
func (u Uint) Dec() (Dec, error) {
	var res Dec
	if _, overflow := res.i.MulOverflow(&u.i, &scale); overflow {
		return Dec{}, errors.Wrap(errors.ErrOverflow, "integer to decimal")
	}
	return res, nil
}

func (u Uint) String() string {
	return u.i.ToBig().String()
}

// MarshalJSON encodes as a decimal string to keep full precision.
func (u Uint) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number.
func (u *Uint) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrInput, "integer must be a string or a number")
		}
		s = n.String()
	}
	v, err := ParseUint(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalYAML encodes as a decimal string.
func (u Uint) MarshalYAML() (interface{}, error) {
	return u.String(), nil
}

// UnmarshalYAML accepts any scalar holding a base 10 integer.
func (u *Uint) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return errors.Wrap(errors.ErrInput, "integer must be a scalar")
	}
	v, err := ParseUint(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalAmino encodes the value for the record codec.
func (u Uint) MarshalAmino() (string, error) {
	return u.String(), nil
}

// UnmarshalAmino decodes the value written by MarshalAmino.
func (u *Uint) UnmarshalAmino(s string) error {
	v, err := ParseUint(s)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
