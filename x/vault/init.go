package vault

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/gconf"
	"github.com/iov-one/nexus/x/ratio"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ nexus.Initializer = Initializer{}

// FromGenesis stores the vault configuration and the initial split listed
// under the "vault" key.
func (Initializer) FromGenesis(opts nexus.Options, db nexus.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, pkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}
	var genesis struct {
		RatioA decimal.Dec `json:"ratio_a"`
		RatioB decimal.Dec `json:"ratio_b"`
		RatioC decimal.Dec `json:"ratio_c"`
	}
	if err := opts.ReadOptions("vault", &genesis); err != nil {
		return errors.Wrap(err, "cannot load vault genesis")
	}
	st := ratio.State{A: genesis.RatioA, B: genesis.RatioB, C: genesis.RatioC}
	if err := saveRatios(db, &conf, st); err != nil {
		return errors.Wrap(err, "initial ratios")
	}
	return nil
}
