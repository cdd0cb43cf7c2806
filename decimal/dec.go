package decimal

import (
	"encoding/json"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/iov-one/nexus/errors"
	shopspring "github.com/shopspring/decimal"
)

// Precision is the number of fractional digits a Dec holds.
const Precision = 18

var (
	scale    = *uint256.NewInt(1_000_000_000_000_000_000)
	bigScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(Precision), nil)
)

// Dec is a non negative fixed-point decimal with 18 fractional digits.
type Dec struct {
	i uint256.Int
}

// ZeroDec returns 0.
func ZeroDec() Dec {
	return Dec{}
}

// OneDec returns 1.
func OneDec() Dec {
	return Dec{i: scale}
}

// NewDec returns a decimal representing given integer.
func NewDec(n uint64) Dec {
	d, err := NewUint(n).Dec()
	if err != nil {
		// A uint64 always fits.
		panic(err)
	}
	return d
}

// NewDecFromRatio returns num / denom.
func NewDecFromRatio(num, denom uint64) (Dec, error) {
	return NewDec(num).Quo(NewDec(denom))
}

// ParseDec parses a decimal string, for example "0.0999999". More than 18
// fractional digits or a negative value is an error.
func ParseDec(s string) (Dec, error) {
	v, err := shopspring.NewFromString(s)
	if err != nil {
		return Dec{}, errors.Wrapf(errors.ErrInput, "invalid decimal %q", s)
	}
	if v.IsNegative() {
		return Dec{}, errors.Wrapf(errors.ErrUnderflow, "negative decimal %q", s)
	}
	scaled := v.Shift(Precision)
	if !scaled.IsInteger() {
		return Dec{}, errors.Wrapf(errors.ErrInput, "decimal %q exceeds %d fractional digits", s, Precision)
	}
	return decFromBig(scaled.BigInt())
}

// MustParseDec is like ParseDec but panics on error. Use only for
// constants and tests.
func MustParseDec(s string) Dec {
	d, err := ParseDec(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decFromBig(b *big.Int) (Dec, error) {
	if b.Sign() < 0 {
		return Dec{}, errors.Wrap(errors.ErrUnderflow, "negative decimal")
	}
	i, overflow := uint256.FromBig(b)
	if overflow {
		return Dec{}, errors.Wrap(errors.ErrOverflow, "decimal exceeds 256 bits")
	}
	return Dec{i: *i}, nil
}

// Add returns d + o.
func (d Dec) Add(o Dec) (Dec, error) {
	var res Dec
	if _, overflow := res.i.AddOverflow(&d.i, &o.i); overflow {
		return Dec{}, errors.Wrap(errors.ErrOverflow, "add")
	}
	return res, nil
}

// Sub returns d - o.
func (d Dec) Sub(o Dec) (Dec, error) {
	var res Dec
	if _, underflow := res.i.SubOverflow(&d.i, &o.i); underflow {
		return Dec{}, errors.Wrapf(errors.ErrUnderflow, "%s - %s", d, o)
	}
	return res, nil
}

// Mul returns d * o truncated to 18 fractional digits.
func (d Dec) Mul(o Dec) (Dec, error) {
	prod := new(big.Int).Mul(d.i.ToBig(), o.i.ToBig())
	return decFromBig(prod.Quo(prod, bigScale))
}

// MulUint returns d * u. The result is exact.
func (d Dec) MulUint(u Uint) (Dec, error) {
	var res Dec
	if _, overflow := res.i.MulOverflow(&d.i, &u.i); overflow {
		return Dec{}, errors.Wrap(errors.ErrOverflow, "mul")
	}
	return res, nil
}

// Quo returns d / o truncated to 18 fractional digits.
func (d Dec) Quo(o Dec) (Dec, error) {
	if o.IsZero() {
		return Dec{}, errors.Wrap(errors.ErrInput, "division by zero")
	}
	num := new(big.Int).Mul(d.i.ToBig(), bigScale)
	return decFromBig(num.Quo(num, o.i.ToBig()))
}

// QuoUint returns d / u truncated to 18 fractional digits.
func (d Dec) QuoUint(u Uint) (Dec, error) {
	if u.IsZero() {
		return Dec{}, errors.Wrap(errors.ErrInput, "division by zero")
	}
	var res Dec
	res.i.Div(&d.i, &u.i)
	return res, nil
}

// Sqrt returns the square root truncated to 18 fractional digits.
func (d Dec) Sqrt() (Dec, error) {
	// sqrt(v / 10^18) * 10^18 == sqrt(v * 10^18)
	v := new(big.Int).Mul(d.i.ToBig(), bigScale)
	return decFromBig(v.Sqrt(v))
}

// Floor returns the integer part.
func (d Dec) Floor() Uint {
	var res Uint
	res.i.Div(&d.i, &scale)
	return res
}

// Frac returns the fractional part. Floor and Frac together always add up
// to the original value.
func (d Dec) Frac() Dec {
	var res Dec
	res.i.Mod(&d.i, &scale)
	return res
}

// Ceil returns the smallest integer that is not lower than d.
func (d Dec) Ceil() (Uint, error) {
	floor := d.Floor()
	if d.Frac().IsZero() {
		return floor, nil
	}
	return floor.Add(NewUint(1))
}

// Cmp compares d and o and returns -1, 0 or +1.
func (d Dec) Cmp(o Dec) int {
	return d.i.Cmp(&o.i)
}

// Equal returns true if both values are the same.
func (d Dec) Equal(o Dec) bool {
	return d.i.Eq(&o.i)
}

// LT returns true if d < o.
func (d Dec) LT(o Dec) bool {
	return d.i.Lt(&o.i)
}

// GT returns true if d > o.
func (d Dec) GT(o Dec) bool {
	return d.i.Gt(&o.i)
}

// IsZero returns true if d is zero.
func (d Dec) IsZero() bool {
	return d.i.IsZero()
}

// MinDec returns the smaller of both values.
func MinDec(a, b Dec) Dec {
	if a.LT(b) {
		return a
	}
	return b
}

// String returns the shortest decimal representation, for example "99.9999".
func (d Dec) String() string {
	return shopspring.NewFromBigInt(d.i.ToBig(), -Precision).String()
}

// MarshalJSON encodes as a decimal string to keep full precision.
func (d Dec) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number.
func (d *Dec) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrInput, "decimal must be a string or a number")
		}
		s = n.String()
	}
	v, err := ParseDec(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalYAML encodes as a decimal string.
func (d Dec) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// UnmarshalYAML accepts any scalar holding a decimal number.
func (d *Dec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return errors.Wrap(errors.ErrInput, "decimal must be a scalar")
	}
	v, err := ParseDec(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// MarshalAmino encodes the value for the record codec.
func (d Dec) MarshalAmino() (string, error) {
	return d.i.ToBig().String(), nil
}

// UnmarshalAmino decodes the value written by MarshalAmino.
func (d *Dec) UnmarshalAmino(s string) error {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return errors.Wrapf(errors.ErrInput, "invalid encoded decimal %q", s)
	}
	v, err := decFromBig(b)
	if err != nil {
		return err
	}
	*d = v
	return nil
}
