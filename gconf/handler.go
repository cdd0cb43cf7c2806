package gconf

import (
	"reflect"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// PatchMsg is a message carrying a partial configuration. Only non zero
// fields of the patch are applied.
type PatchMsg interface {
	nexus.Msg
	GetPatch() Configuration
}

// Authorizer returns an error if the signer of the processed message is not
// allowed to update the configuration.
type Authorizer func(ctx nexus.Context, db nexus.ReadOnlyKVStore) error

// Validator is an optional, extension specific check of the patched
// configuration against the rest of the extension state.
type Validator func(ctx nexus.Context, db nexus.KVStore, conf Configuration) error

// UpdateConfigurationHandler processes configuration patch messages.
type UpdateConfigurationHandler struct {
	pkg      string
	config   func() Configuration
	auth     Authorizer
	validate Validator
}

var _ nexus.Handler = UpdateConfigurationHandler{}

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message. newConfig must return a new, empty
// configuration instance of the type used by the package.
//
// The configuration must exist, it is created from the genesis. validate may
// be nil.
func NewUpdateConfigurationHandler(
	pkg string,
	newConfig func() Configuration,
	auth Authorizer,
	validate Validator,
) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:      pkg,
		config:   newConfig,
		auth:     auth,
		validate: validate,
	}
}

// Deliver applies the patch.
func (h UpdateConfigurationHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	pm, ok := msg.(PatchMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := h.auth(ctx, db); err != nil {
		return nil, errors.Wrap(err, "configuration update")
	}

	conf := h.config()
	if err := Load(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}
	if err := Patch(conf, pm.GetPatch()); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if h.validate != nil {
		if err := h.validate(ctx, db, conf); err != nil {
			return nil, errors.Wrap(err, "patched configuration")
		}
	}
	if err := Save(db, h.pkg, conf); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	nexus.GetLogger(ctx).Info("configuration updated", "pkg", h.pkg)
	return &nexus.Result{Log: "configuration updated"}, nil
}

// Patch copies every non zero field of payload into config. Both must be
// pointers to the same struct type.
func Patch(config, payload Configuration) error {
	if payload == nil || reflect.ValueOf(payload).IsNil() {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	pType := reflect.TypeOf(payload)
	cType := reflect.TypeOf(config)
	if pType != cType || cType.Kind() != reflect.Ptr || cType.Elem().Kind() != reflect.Struct {
		return errors.Wrapf(errors.ErrType, "patch %T does not match configuration %T", payload, config)
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()

	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)

		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}

		cval.Field(i).Set(got)
	}

	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}
