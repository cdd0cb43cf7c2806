package rewards

import (
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
)

// Checkpoint folds the balance accrued since the previous checkpoint into
// the global index and returns the accrued amount.
//
// A stream balance must never decrease outside of a claim, so a current
// balance lower than the previous one is ErrUnderflow. When nothing is
// staked the accrued amount cannot be distributed. The previous balance is
// still advanced so that amount is not counted again, and the global index
// is left untouched. Such an amount stays in the pool unattributed.
func (g *GlobalRewardState) Checkpoint(current, totalStaked decimal.Uint) (decimal.Uint, error) {
	accrued, err := current.Sub(g.PrevBalance)
	if err != nil {
		return decimal.Uint{}, errors.Wrapf(errors.ErrUnderflow, "balance %s dropped below checkpoint %s", current, g.PrevBalance)
	}
	if accrued.IsZero() {
		return accrued, nil
	}
	g.PrevBalance = current
	if totalStaked.IsZero() {
		return accrued, nil
	}
	perUnit, err := accrued.Dec()
	if err != nil {
		return decimal.Uint{}, err
	}
	if perUnit, err = perUnit.QuoUint(totalStaked); err != nil {
		return decimal.Uint{}, err
	}
	if g.GlobalIndex, err = g.GlobalIndex.Add(perUnit); err != nil {
		return decimal.Uint{}, errors.Wrap(err, "global index")
	}
	return accrued, nil
}
