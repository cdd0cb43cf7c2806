package vault

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/gconf"
	"github.com/iov-one/nexus/orm"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/ratio"
)

const pkg = "vault"

// Address returns the account of the vault. The vault holds the launch pool
// position, mints the share tokens and is the reward operator of all three
// reward pools.
func Address() nexus.Address {
	return nexus.NewCondition("vault", "instance", nil).Address()
}

// Configuration of the vault.
type Configuration struct {
	// Owner can force a rebalance.
	Owner nexus.Address `json:"owner"`

	BondToken   string `json:"bond_token"`
	BoostToken  string `json:"boost_token"`
	RewardToken string `json:"reward_token"`
	// BondShare and BoostShare are minted one to one for deposits.
	BondShare  string `json:"bond_share"`
	BoostShare string `json:"boost_share"`
	// BondPair and BoostPair price the deposited tokens in reward tokens.
	BondPair  string `json:"bond_pair"`
	BoostPair string `json:"boost_pair"`

	PoolA string `json:"pool_a"`
	PoolB string `json:"pool_b"`
	PoolC string `json:"pool_c"`

	Period nexus.Seconds `json:"period"`
	Step   decimal.Dec   `json:"step"`
	MinA   decimal.Dec   `json:"min_a"`
	MaxA   decimal.Dec   `json:"max_a"`
	MinB   decimal.Dec   `json:"min_b"`
	MaxB   decimal.Dec   `json:"max_b"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Owner", c.Owner.Validate())
	tokens := []struct {
		field, name string
	}{
		{"BondToken", c.BondToken},
		{"BoostToken", c.BoostToken},
		{"RewardToken", c.RewardToken},
		{"BondShare", c.BondShare},
		{"BoostShare", c.BoostShare},
	}
	for _, t := range tokens {
		errs = errors.AppendField(errs, t.field, cash.ValidateToken(t.name))
	}
	if c.BondToken == c.BoostToken {
		errs = errors.AppendField(errs, "BoostToken", errors.ErrDuplicate)
	}
	required := []struct {
		field, value string
	}{
		{"BondPair", c.BondPair},
		{"BoostPair", c.BoostPair},
		{"PoolA", c.PoolA},
		{"PoolB", c.PoolB},
		{"PoolC", c.PoolC},
	}
	for _, r := range required {
		if r.value == "" {
			errs = errors.AppendField(errs, r.field, errors.ErrEmpty)
		}
	}
	return errors.Append(errs, c.Ratio().Validate())
}

// Ratio returns the ratio controller settings.
func (c *Configuration) Ratio() ratio.Config {
	return ratio.Config{
		Period: c.Period,
		Step:   c.Step,
		MinA:   c.MinA,
		MaxA:   c.MaxA,
		MinB:   c.MinB,
		MaxB:   c.MaxB,
	}
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkg, &conf); err != nil {
		return nil, errors.Wrap(err, "vault configuration")
	}
	return &conf, nil
}

// ratioRecord persists the reward split. Bounds are checked before saving,
// against the configuration in use.
type ratioRecord struct {
	State ratio.State
}

var _ orm.Model = (*ratioRecord)(nil)

func (r *ratioRecord) Validate() error {
	one := decimal.OneDec()
	return r.State.Validate(ratio.Config{MaxA: one, MaxB: one})
}

var (
	ratios   = orm.NewModelBucket("vault_ratio")
	ratioKey = []byte("split")
)

// LoadRatios returns the current reward split.
func LoadRatios(db nexus.ReadOnlyKVStore) (ratio.State, error) {
	var r ratioRecord
	if err := ratios.One(db, ratioKey, &r); err != nil {
		return ratio.State{}, errors.Wrap(err, "vault ratios")
	}
	return r.State, nil
}

// saveRatios stores the split. A split outside of the configured bounds is
// ErrInvalidRatioState and nothing is written.
func saveRatios(db nexus.KVStore, conf *Configuration, st ratio.State) error {
	if err := st.Validate(conf.Ratio()); err != nil {
		return err
	}
	return ratios.Put(db, ratioKey, &ratioRecord{State: st})
}
