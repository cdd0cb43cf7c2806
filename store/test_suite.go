package store

import (
	"testing"

	"github.com/iov-one/nexus/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestSuite provides many methods that can be called in package-specific test code.
We just customize the store being tested (pass in constructor), the rest of the
logic is generic to the KVStore interface.

It is shared between btree_test.go and pebble/pebble_test.go, but can be used
for any implementation of KVStore.
*/
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh store and a function releasing it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite that tests stores returned by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{
		makeBase: constructor,
	}
}

// GetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	// make sure the store is empty at start but returns results
	// that are written to it
	k, v := []byte("french"), []byte("fry")
	s.AssertGetHas(t, base, k, nil, false)
	require.NoError(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	// now layer a cache on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	s.AssertGetHas(t, cache, k2, nil, false)
	require.NoError(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	s.AssertGetHas(t, base, k3, nil, false)

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	require.NoError(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := [][]byte{[]byte("k0"), []byte("k1"), []byte("k2"), []byte("k3")}
	vs := [][]byte{[]byte("v0"), []byte("v1"), []byte("v2"), []byte("v3"), []byte("v4")}

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[4]), SetOp(ks[3], vs[3]), DelOp(ks[2])},
			parentQueries: []Model{Pair(ks[1], vs[1]), Pair(ks[2], vs[2]), Pair(ks[3], nil)},
			childQueries:  []Model{Pair(ks[1], vs[4]), Pair(ks[2], nil), Pair(ks[3], vs[3])},
		},
		"delete and set again": {
			parentOps:     []Op{SetOp(ks[0], vs[0])},
			childOps:      []Op{DelOp(ks[0]), SetOp(ks[0], vs[2])},
			parentQueries: []Model{Pair(ks[0], vs[0])},
			childQueries:  []Model{Pair(ks[0], vs[2])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent, cleanup := s.makeBase()
			defer cleanup()

			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
			}

			// write child to parent and make sure it also shows proper data
			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
			}
		})
	}
}

// IteratorRanges makes sure the iterator combines parent and cache data and
// honors the range limits.
func (s *TestSuite) IteratorRanges(t *testing.T) {
	parent, cleanup := s.makeBase()
	defer cleanup()

	for _, op := range []Op{
		SetOp([]byte("a"), []byte("1")),
		SetOp([]byte("c"), []byte("3")),
		SetOp([]byte("e"), []byte("5")),
		SetOp([]byte("g"), []byte("7")),
	} {
		require.NoError(t, op.Apply(parent))
	}

	child := parent.CacheWrap()
	for _, op := range []Op{
		SetOp([]byte("b"), []byte("2")),
		SetOp([]byte("c"), []byte("33")),
		DelOp([]byte("e")),
		SetOp([]byte("h"), []byte("8")),
	} {
		require.NoError(t, op.Apply(child))
	}

	cases := map[string]struct {
		start, end []byte
		want       []Model
	}{
		"everything": {
			want: []Model{
				Pair([]byte("a"), []byte("1")),
				Pair([]byte("b"), []byte("2")),
				Pair([]byte("c"), []byte("33")),
				Pair([]byte("g"), []byte("7")),
				Pair([]byte("h"), []byte("8")),
			},
		},
		"with start": {
			start: []byte("c"),
			want: []Model{
				Pair([]byte("c"), []byte("33")),
				Pair([]byte("g"), []byte("7")),
				Pair([]byte("h"), []byte("8")),
			},
		},
		"with end": {
			end: []byte("c"),
			want: []Model{
				Pair([]byte("a"), []byte("1")),
				Pair([]byte("b"), []byte("2")),
			},
		},
		"both limits": {
			start: []byte("b"),
			end:   []byte("h"),
			want: []Model{
				Pair([]byte("b"), []byte("2")),
				Pair([]byte("c"), []byte("33")),
				Pair([]byte("g"), []byte("7")),
			},
		},
		"empty range": {
			start: []byte("d"),
			end:   []byte("f"),
			want:  nil,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := child.Iterator(tc.start, tc.end)
			require.NoError(t, err)
			defer it.Release()
			assert.Equal(t, tc.want, consume(t, it))
		})
	}
}

func consume(t testing.TB, it Iterator) []Model {
	t.Helper()
	var res []Model
	for {
		k, v, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return res
		}
		require.NoError(t, err)
		res = append(res, Pair(k, v))
	}
}

// AssertGetHas makes sure that this key returns
// the given value or nil, and has returns true or false
func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}
