package rewards

import (
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// earned returns the pending reward of the account together with what it
// earned since it was last settled.
func (a *StreamAccount) earned(global decimal.Dec, balance decimal.Uint) (decimal.Dec, error) {
	delta, err := global.Sub(a.Index)
	if err != nil {
		return decimal.Dec{}, errors.Wrap(errors.ErrState, "staker index ahead of global index")
	}
	earned, err := delta.MulUint(balance)
	if err != nil {
		return decimal.Dec{}, err
	}
	return earned.Add(a.Pending)
}

// Settle brings the staker position in given stream up to the global index.
// The whole part of the reward is returned and the fraction is kept as
// pending.
func Settle(global decimal.Dec, acc *StakerAccount, s Stream) (decimal.Uint, error) {
	pos := acc.Stream(s)
	combined, err := pos.earned(global, acc.Balance)
	if err != nil {
		return decimal.Uint{}, errors.Wrapf(err, "settle %s", s)
	}
	pos.Pending = combined.Frac()
	pos.Index = global
	return combined.Floor(), nil
}

// fold brings the staker position up to the global index keeping the whole
// reward as pending.
func fold(global decimal.Dec, acc *StakerAccount, s Stream) error {
	pos := acc.Stream(s)
	combined, err := pos.earned(global, acc.Balance)
	if err != nil {
		return errors.Wrapf(err, "settle %s", s)
	}
	pos.Pending = combined
	pos.Index = global
	return nil
}
