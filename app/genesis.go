package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// Genesis file format. AppOptions are passed to the extension initializers.
type Genesis struct {
	ChainID    string        `json:"chain_id"`
	AppOptions nexus.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// WriteGenesis stores the genesis in given file, overwriting it.
func WriteGenesis(filePath string, gen Genesis) error {
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return errors.Wrapf(errors.ErrInput, "writing genesis file: %s", err)
	}
	return nil
}

//------- storing chainID ---------

var chainIDKey = []byte("_internal:chain_id")

// loadChainID returns the chain id stored if any
func loadChainID(db nexus.ReadOnlyKVStore) (string, error) {
	v, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(db nexus.KVStore, chainID string) error {
	if !nexus.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch has, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "chain id")
	case has:
		return errors.Wrap(errors.ErrDuplicate, "chain id already set")
	}
	return db.Set(chainIDKey, []byte(chainID))
}
