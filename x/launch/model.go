package launch

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/gconf"
	"github.com/iov-one/nexus/orm"
	"github.com/iov-one/nexus/x/cash"
)

const pkg = "launch"

// Address returns the account that holds all tokens bonded to the launch
// pool. It must be the minter of the boost token.
func Address() nexus.Address {
	return nexus.NewCondition("launch", "pool", nil).Address()
}

// Configuration of the launch pool.
type Configuration struct {
	Admin       nexus.Address `json:"admin"`
	BondToken   string        `json:"bond_token"`
	BoostToken  string        `json:"boost_token"`
	RewardToken string        `json:"reward_token"`
	// BaseRatio is the share of launch rewards paid for the bond alone.
	BaseRatio decimal.Dec `json:"base_ratio"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	errs = errors.AppendField(errs, "BondToken", cash.ValidateToken(c.BondToken))
	errs = errors.AppendField(errs, "BoostToken", cash.ValidateToken(c.BoostToken))
	errs = errors.AppendField(errs, "RewardToken", cash.ValidateToken(c.RewardToken))
	if c.BaseRatio.GT(decimal.OneDec()) {
		errs = errors.AppendField(errs, "BaseRatio", errors.ErrInput)
	}
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkg, &conf); err != nil {
		return nil, errors.Wrap(err, "launch configuration")
	}
	return &conf, nil
}

// Holder is the position of a single account in the launch pool.
type Holder struct {
	Bond decimal.Uint
	// Boost is the amount of boost tokens bonded.
	Boost decimal.Uint
	// ActiveBoost is the boost amount in effect since the last activation.
	ActiveBoost decimal.Uint
	Weight      decimal.Uint
	Pending     decimal.Uint
	Vested      decimal.Uint
}

var _ orm.Model = (*Holder)(nil)

func (h *Holder) Validate() error {
	return nil
}

// Distribution holds the pool wide totals.
type Distribution struct {
	TotalBond   decimal.Uint
	TotalWeight decimal.Uint
}

var _ orm.Model = (*Distribution)(nil)

func (d *Distribution) Validate() error {
	return nil
}

var (
	holders       = orm.NewModelBucket("launch_holder")
	distributions = orm.NewModelBucket("launch_distribution")
	distKey       = []byte("total")
)

func loadHolder(db nexus.ReadOnlyKVStore, addr nexus.Address) (*Holder, error) {
	var h Holder
	switch err := holders.One(db, addr, &h); {
	case errors.ErrNotFound.Is(err):
		return &h, nil
	case err != nil:
		return nil, err
	}
	return &h, nil
}

func saveHolder(db nexus.KVStore, addr nexus.Address, h *Holder) error {
	return holders.Put(db, addr, h)
}

func loadDistribution(db nexus.ReadOnlyKVStore) (*Distribution, error) {
	var d Distribution
	switch err := distributions.One(db, distKey, &d); {
	case errors.ErrNotFound.Is(err):
		return &d, nil
	case err != nil:
		return nil, err
	}
	return &d, nil
}

func saveDistribution(db nexus.KVStore, d *Distribution) error {
	return distributions.Put(db, distKey, d)
}
