package app

import (
	"reflect"
	"sort"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/governance"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/rewards"
	"github.com/iov-one/nexus/x/vault"
)

// messages maps a route path to the type of the message delivered there.
var messages = map[string]reflect.Type{}

func init() {
	for _, m := range []nexus.Msg{
		&cash.TransferMsg{},
		&cash.SendMsg{},
		&cash.SwapMsg{},

		&governance.ProposeMsg{},
		&governance.AcceptMsg{},

		&launch.BondMsg{},
		&launch.BoostMsg{},
		&launch.UnbondMsg{},
		&launch.ActivateBoostMsg{},
		&launch.AccrueMsg{},
		&launch.WithdrawRewardsMsg{},
		&launch.ClaimWithdrawnMsg{},
		&launch.MintMsg{},

		&rewards.CreatePoolMsg{},
		&rewards.BondMsg{},
		&rewards.UnbondMsg{},
		&rewards.ClaimMsg{},
		&rewards.ClaimForMsg{},
		&rewards.UpdateGlobalIndexMsg{},
		&rewards.RewardMsg{},
		&rewards.IncreaseBalanceMsg{},
		&rewards.DecreaseBalanceMsg{},
		&rewards.UpdatePoolMsg{},

		&vault.DepositMsg{},
		&vault.WithdrawMsg{},
		&vault.RebalanceMsg{},
		&vault.UpdateRatiosMsg{},
		&vault.UpdateConfigurationMsg{},
		&vault.ClaimVirtualRewardsMsg{},
		&vault.ClaimRealRewardsMsg{},
	} {
		if _, ok := messages[m.Path()]; ok {
			panic("duplicated message path " + m.Path())
		}
		messages[m.Path()] = reflect.TypeOf(m).Elem()
	}
}

// NewMsg returns an empty message for given path.
func NewMsg(path string) (nexus.Msg, error) {
	tp, ok := messages[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown message path %q", path)
	}
	return reflect.New(tp).Interface().(nexus.Msg), nil
}

// Paths returns all known message paths in alphabetical order.
func Paths() []string {
	paths := make([]string, 0, len(messages))
	for p := range messages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
