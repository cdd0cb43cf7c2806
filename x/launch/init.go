package launch

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ nexus.Initializer = Initializer{}

// FromGenesis stores the launch pool configuration.
func (Initializer) FromGenesis(opts nexus.Options, db nexus.KVStore) error {
	return gconf.InitConfig(db, opts, pkg, &Configuration{})
}
