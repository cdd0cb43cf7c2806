package orm

import (
	"github.com/iov-one/nexus/errors"
	amino "github.com/tendermint/go-amino"
)

// SchemaVersion is the first byte of every stored record.
const SchemaVersion byte = 1

var cdc = amino.NewCodec()

// Model is anything that can be persisted.
type Model interface {
	// Validate returns error if the model is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// RegisterInterface registers an interface type so that its implementations
// can be stored in a field or a bucket of that interface type. ptr must be a
// pointer to an interface, for example (*Continuation)(nil).
//
// Use this function only during a program startup phase.
func RegisterInterface(ptr interface{}) {
	cdc.RegisterInterface(ptr, nil)
}

// RegisterConcrete registers an implementation of a registered interface
// under given unique name.
//
// Use this function only during a program startup phase.
func RegisterConcrete(o interface{}, name string) {
	cdc.RegisterConcrete(o, name, nil)
}

// Marshal serializes given value into its stored representation.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := cdc.MarshalBinaryBare(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrType, "marshal %T: %s", o, err)
	}
	return append([]byte{SchemaVersion}, bz...), nil
}

// Unmarshal loads a value written by Marshal into dest. dest must be a
// pointer.
func Unmarshal(raw []byte, dest interface{}) error {
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrModel, "empty record")
	}
	if raw[0] != SchemaVersion {
		return errors.Wrapf(errors.ErrModel, "unsupported schema version %d", raw[0])
	}
	if err := cdc.UnmarshalBinaryBare(raw[1:], dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
