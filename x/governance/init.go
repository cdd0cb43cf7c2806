package governance

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// Initializer fulfils the Initializer interface to load data from the genesis
// file
type Initializer struct{}

var _ nexus.Initializer = Initializer{}

// FromGenesis sets the initial governance of every listed namespace.
func (Initializer) FromGenesis(opts nexus.Options, db nexus.KVStore) error {
	var entries []struct {
		Namespace string        `json:"namespace"`
		Address   nexus.Address `json:"address"`
	}
	if err := opts.ReadOptions("governance", &entries); err != nil {
		return errors.Wrap(err, "cannot load governance")
	}
	for _, e := range entries {
		if err := Init(db, e.Namespace, e.Address); err != nil {
			return errors.Wrapf(err, "namespace %q", e.Namespace)
		}
	}
	return nil
}
