package launch

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/x/ratio"
)

// RewardInfo describes the launch rewards of a holder.
type RewardInfo struct {
	Bond    decimal.Uint `json:"bond"`
	Pending decimal.Uint `json:"pending"`
	Vested  decimal.Uint `json:"vested"`
}

// Querier reads the launch pool state.
type Querier struct{}

// RewardInfo returns the rewards of given holder.
func (Querier) RewardInfo(db nexus.ReadOnlyKVStore, holder nexus.Address) (RewardInfo, error) {
	h, err := loadHolder(db, holder)
	if err != nil {
		return RewardInfo{}, err
	}
	return RewardInfo{Bond: h.Bond, Pending: h.Pending, Vested: h.Vested}, nil
}

// Curve returns the bonding curve inputs as seen by given holder.
func (Querier) Curve(db nexus.ReadOnlyKVStore, holder nexus.Address) (ratio.Curve, error) {
	conf, err := loadConf(db)
	if err != nil {
		return ratio.Curve{}, err
	}
	h, err := loadHolder(db, holder)
	if err != nil {
		return ratio.Curve{}, err
	}
	dist, err := loadDistribution(db)
	if err != nil {
		return ratio.Curve{}, err
	}
	return ratio.Curve{
		BaseRatio:     conf.BaseRatio,
		TotalBond:     dist.TotalBond,
		Bond:          h.Bond,
		TotalWeight:   dist.TotalWeight,
		Weight:        h.Weight,
		Amplification: h.ActiveBoost,
		Boosted:       h.Boost,
	}, nil
}
