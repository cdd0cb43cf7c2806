package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket is a prefixed subspace of the DB holding models of the same
// type. It is a generic building block that should generally be embedded in
// a type-safe wrapper.
type ModelBucket struct {
	name   string
	prefix []byte
}

// NewModelBucket creates a bucket to store models. It panics on an invalid
// name.
func NewModelBucket(name string) ModelBucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("illegal bucket: %s", name))
	}
	return ModelBucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// Name returns the name of this bucket.
func (b ModelBucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b ModelBucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// One loads the model stored under given key into dest. It returns
// errors.ErrNotFound if there is no such model.
func (b ModelBucket) One(db nexus.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "get %s: %s", b.name, err)
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return Unmarshal(raw, dest)
}

// Has returns true if a model is stored under given key.
func (b ModelBucket) Has(db nexus.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrapf(errors.ErrDatabase, "has %s: %s", b.name, err)
	}
	return ok, nil
}

// Put validates and writes given model under given key.
func (b ModelBucket) Put(db nexus.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s model", b.name)
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.DBKey(key), raw); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "set %s: %s", b.name, err)
	}
	return nil
}

// Delete removes the model stored under given key. It returns
// errors.ErrNotFound if there is no such model.
func (b ModelBucket) Delete(db nexus.KVStore, key []byte) error {
	dbkey := b.DBKey(key)
	ok, err := db.Has(dbkey)
	if err != nil {
		return errors.Wrapf(errors.ErrDatabase, "has %s: %s", b.name, err)
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	if err := db.Delete(dbkey); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "delete %s: %s", b.name, err)
	}
	return nil
}

// Keys returns all keys (without the bucket prefix) that start with given
// prefix, in ascending order.
func (b ModelBucket) Keys(db nexus.ReadOnlyKVStore, prefix []byte) ([][]byte, error) {
	start := b.DBKey(prefix)
	it, err := db.Iterator(start, prefixEnd(start))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterator %s: %s", b.name, err)
	}
	defer it.Release()

	var keys [][]byte
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, append([]byte{}, k[len(b.prefix):]...))
	}
}

// prefixEnd returns the smallest key that is greater than every key that
// starts with given prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
