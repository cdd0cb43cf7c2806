package rewards

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/x/governance"
)

// GenesisPool declares a pool created at genesis. The owner becomes the pool
// governance.
type GenesisPool struct {
	Name string `json:"name"`
	Pool
}

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ nexus.Initializer = Initializer{}

// FromGenesis creates all pools listed under the "rewards" key.
func (Initializer) FromGenesis(opts nexus.Options, db nexus.KVStore) error {
	var genesis struct {
		Pools []GenesisPool `json:"pools"`
	}
	if err := opts.ReadOptions("rewards", &genesis); err != nil {
		return errors.Wrap(err, "cannot load rewards genesis")
	}
	for _, gp := range genesis.Pools {
		p := gp.Pool
		if err := CreatePool(db, gp.Name, &p); err != nil {
			return err
		}
		if err := governance.Init(db, Namespace(gp.Name), p.Owner); err != nil {
			return errors.Wrapf(err, "pool %q governance", gp.Name)
		}
	}
	return nil
}
