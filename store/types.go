package store

import "github.com/iov-one/nexus"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = nexus.ReadOnlyKVStore
	SetDeleter       = nexus.SetDeleter
	KVStore          = nexus.KVStore
	Batch            = nexus.Batch
	Iterator         = nexus.Iterator
	CacheableKVStore = nexus.CacheableKVStore
	KVCacheWrap      = nexus.KVCacheWrap
	CommitKVStore    = nexus.CommitKVStore
	CommitID         = nexus.CommitID
)

// Model groups together key and value to return
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
