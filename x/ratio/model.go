package ratio

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Config declares how and how often the ratios can move.
type Config struct {
	// Period is the minimal time between two rebalances.
	Period nexus.Seconds `json:"period"`
	// Step is the relative move of ratio A, in (0, 1).
	Step decimal.Dec `json:"step"`
	MinA decimal.Dec `json:"min_a"`
	MaxA decimal.Dec `json:"max_a"`
	MinB decimal.Dec `json:"min_b"`
	MaxB decimal.Dec `json:"max_b"`
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	one := decimal.OneDec()
	var errs error
	if c.Period < 0 {
		errs = errors.AppendField(errs, "Period", errors.ErrInput)
	}
	if c.Step.IsZero() || !c.Step.LT(one) {
		errs = errors.AppendField(errs, "Step", errors.ErrInput.New("must be in (0, 1)"))
	}
	bounds := []struct {
		name string
		val  decimal.Dec
	}{
		{"MinA", c.MinA}, {"MaxA", c.MaxA}, {"MinB", c.MinB}, {"MaxB", c.MaxB},
	}
	for _, b := range bounds {
		if b.val.GT(one) {
			errs = errors.AppendField(errs, b.name, errors.ErrInput.New("greater than one"))
		}
	}
	if !c.MinA.LT(c.MaxA) {
		errs = errors.AppendField(errs, "MinA", errors.ErrInput.New("not lower than max"))
	}
	if !c.MinB.LT(c.MaxB) {
		errs = errors.AppendField(errs, "MinB", errors.ErrInput.New("not lower than max"))
	}
	return errs
}

// State is the current split and the time it was last calculated.
type State struct {
	A    decimal.Dec    `json:"ratio_a"`
	B    decimal.Dec    `json:"ratio_b"`
	C    decimal.Dec    `json:"ratio_c"`
	Last nexus.UnixTime `json:"last_calculation_time"`
}

// Validate returns ErrInvalidRatioState unless the ratios add up to exactly
// one and A and B are within their bounds.
func (s State) Validate(c Config) error {
	sum, err := s.A.Add(s.B)
	if err == nil {
		sum, err = sum.Add(s.C)
	}
	if err != nil || !sum.Equal(decimal.OneDec()) {
		return errors.Wrapf(ErrInvalidRatioState, "%s + %s + %s is not one", s.A, s.B, s.C)
	}
	if s.A.LT(c.MinA) || s.A.GT(c.MaxA) {
		return errors.Wrapf(ErrInvalidRatioState, "ratio A %s not in [%s, %s]", s.A, c.MinA, c.MaxA)
	}
	if s.B.LT(c.MinB) || s.B.GT(c.MaxB) {
		return errors.Wrapf(ErrInvalidRatioState, "ratio B %s not in [%s, %s]", s.B, c.MinB, c.MaxB)
	}
	return nil
}

// Split divides total by the ratios. A and B get the truncated product and C
// gets what is left, so that nothing is lost.
func (s State) Split(total decimal.Uint) (a, b, c decimal.Uint, err error) {
	td, err := total.Dec()
	if err != nil {
		return a, b, c, err
	}
	ad, err := td.Mul(s.A)
	if err != nil {
		return a, b, c, err
	}
	bd, err := td.Mul(s.B)
	if err != nil {
		return a, b, c, err
	}
	a, b = ad.Floor(), bd.Floor()
	ab, err := a.Add(b)
	if err != nil {
		return a, b, c, err
	}
	c, err = total.Sub(ab)
	return a, b, c, err
}
