/*
Package pebble provides a persistent CommitKVStore backed by a pebble
database.

All writes of a delivered operation reach the database through the btree
cache wrap, whose batch is committed atomically. Commit records the version
and a digest of the whole state under a reserved key.
*/
package pebble

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/store"
)

// commitKey holds the latest commit info. It sorts before every bucket key
// and is never returned by an iterator.
var commitKey = []byte("\x00commit")

// Store is a CommitKVStore persisting data in a pebble database.
type Store struct {
	db *pebble.DB
}

var _ nexus.CommitKVStore = (*Store)(nil)

// Option configures the database.
type Option func(*pebble.Options)

// InMemory keeps all files in memory. Use it for tests.
func InMemory() Option {
	return func(o *pebble.Options) {
		o.FS = vfs.NewMem()
	}
}

// Open opens or creates a database in given directory.
func Open(dir string, opts ...Option) (*Store, error) {
	o := &pebble.Options{
		Cache:        pebble.NewCache(16 << 20),
		MemTableSize: 8 << 20,
	}
	for _, fn := range opts {
		fn(o)
	}
	db, err := pebble.Open(dir, o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return &Store{db: db}, nil
}

// Get returns nil iff key doesn't exist.
func (s *Store) Get(key []byte) ([]byte, error) {
	value, closer, err := s.db.Get(key)
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "get: %s", err)
	}
	defer closer.Close()

	result := make([]byte, len(value))
	copy(result, value)
	return result, nil
}

// Has checks if a key exists.
func (s *Store) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	return v != nil, err
}

// Set writes the key synchronously.
func (s *Store) Set(key, value []byte) error {
	if err := s.db.Set(key, value, pebble.Sync); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "set: %s", err)
	}
	return nil
}

// Delete removes the key synchronously.
func (s *Store) Delete(key []byte) error {
	if err := s.db.Delete(key, pebble.Sync); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "delete: %s", err)
	}
	return nil
}

// Iterator over a domain of keys in ascending order. The reserved commit key
// is skipped.
func (s *Store) Iterator(start, end []byte) (nexus.Iterator, error) {
	if start == nil || string(start) <= string(commitKey) {
		start = append(append([]byte{}, commitKey...), 0)
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: start,
		UpperBound: end,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "iterator: %s", err)
	}
	return &iterator{iter: iter}, nil
}

// NewBatch returns a batch that is applied atomically.
func (s *Store) NewBatch() nexus.Batch {
	return &batch{batch: s.db.NewBatch()}
}

// CacheWrap returns a cache whose Write commits all writes atomically.
func (s *Store) CacheWrap() nexus.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit increments the version and stores a digest of the current state.
func (s *Store) Commit() (nexus.CommitID, error) {
	last, err := s.LatestVersion()
	if err != nil {
		return nexus.CommitID{}, err
	}
	hash, err := s.stateHash()
	if err != nil {
		return nexus.CommitID{}, err
	}
	id := nexus.CommitID{Version: last.Version + 1, Hash: hash}
	raw := make([]byte, 8, 8+len(hash))
	binary.BigEndian.PutUint64(raw, uint64(id.Version))
	raw = append(raw, hash...)
	if err := s.Set(commitKey, raw); err != nil {
		return nexus.CommitID{}, err
	}
	return id, nil
}

// LatestVersion returns the info written by the last Commit.
func (s *Store) LatestVersion() (nexus.CommitID, error) {
	raw, err := s.Get(commitKey)
	if err != nil {
		return nexus.CommitID{}, err
	}
	if raw == nil {
		return nexus.CommitID{}, nil
	}
	if len(raw) < 8 {
		return nexus.CommitID{}, errors.Wrap(errors.ErrDatabase, "malformed commit info")
	}
	return nexus.CommitID{
		Version: int64(binary.BigEndian.Uint64(raw[:8])),
		Hash:    raw[8:],
	}, nil
}

func (s *Store) stateHash() ([]byte, error) {
	it, err := s.Iterator(nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Release()

	h := sha256.New()
	var size [8]byte
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return h.Sum(nil), nil
		}
		if err != nil {
			return nil, err
		}
		binary.BigEndian.PutUint64(size[:], uint64(len(k)))
		h.Write(size[:])
		h.Write(k)
		binary.BigEndian.PutUint64(size[:], uint64(len(v)))
		h.Write(size[:])
		h.Write(v)
	}
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "close: %s", err)
	}
	return nil
}

type batch struct {
	batch *pebble.Batch
}

func (b *batch) Set(key, value []byte) error {
	return b.batch.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	return b.batch.Delete(key, nil)
}

// Write commits the batch. The batch is reset and can be reused.
func (b *batch) Write() error {
	if err := b.batch.Commit(pebble.Sync); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "commit batch: %s", err)
	}
	b.batch.Reset()
	return nil
}

type iterator struct {
	iter    *pebble.Iterator
	started bool
}

func (it *iterator) Next() (key, value []byte, err error) {
	var ok bool
	if !it.started {
		it.started = true
		ok = it.iter.First()
	} else {
		ok = it.iter.Next()
	}
	if !ok {
		if err := it.iter.Error(); err != nil {
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "iterate: %s", err)
		}
		return nil, nil, errors.ErrIteratorDone
	}
	val, err := it.iter.ValueAndErr()
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrDatabase, "iterator value: %s", err)
	}
	key = append([]byte{}, it.iter.Key()...)
	value = append([]byte{}, val...)
	return key, value, nil
}

func (it *iterator) Release() {
	if it.iter != nil {
		it.iter.Close()
		it.iter = nil
	}
}
