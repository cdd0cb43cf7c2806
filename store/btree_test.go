package store

import (
	"testing"
)

func btreeSuite() *TestSuite {
	return NewTestSuite(func() (CacheableKVStore, func()) {
		return MemStore(), func() {}
	})
}

func TestBTreeCacheGetSet(t *testing.T) {
	btreeSuite().GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	btreeSuite().CacheConflicts(t)
}

func TestBTreeIteratorRanges(t *testing.T) {
	btreeSuite().IteratorRanges(t)
}

func TestBTreeNestedCacheWrap(t *testing.T) {
	s := btreeSuite()
	base := MemStore()
	k, v := []byte("key"), []byte("value")

	outer := base.CacheWrap()
	inner := outer.CacheWrap()
	if err := inner.Set(k, v); err != nil {
		t.Fatal(err)
	}
	s.AssertGetHas(t, outer, k, nil, false)

	if err := inner.Write(); err != nil {
		t.Fatal(err)
	}
	s.AssertGetHas(t, outer, k, v, true)
	s.AssertGetHas(t, base, k, nil, false)

	outer.Discard()
	s.AssertGetHas(t, base, k, nil, false)
}
