package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/nexus/errors"
)

// collectRange returns a snapshot of all btree items within [start, end)
// in ascending order. Deleted items are included so that they can hide the
// parent values.
func collectRange(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// mergeIterator combines the cached items with the parent iterator. When
// both contain the same key, the cached item wins.
type mergeIterator struct {
	items  []btree.Item
	parent Iterator

	// head of the parent iterator, valid if parentKey is not nil
	parentKey   []byte
	parentValue []byte
	parentDone  bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []btree.Item, parent Iterator) *mergeIterator {
	return &mergeIterator{items: items, parent: parent}
}

func (m *mergeIterator) loadParent() error {
	if m.parentKey != nil || m.parentDone {
		return nil
	}
	k, v, err := m.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.parentDone = true
		return nil
	}
	if err != nil {
		return err
	}
	m.parentKey, m.parentValue = k, v
	return nil
}

// Next returns the next item or errors.ErrIteratorDone.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if err := m.loadParent(); err != nil {
			return nil, nil, err
		}

		if len(m.items) == 0 {
			if m.parentDone {
				return nil, nil, errors.ErrIteratorDone
			}
			k, v := m.parentKey, m.parentValue
			m.parentKey, m.parentValue = nil, nil
			return k, v, nil
		}

		item := m.items[0]
		ikey := item.(keyer).Key()
		if !m.parentDone {
			switch cmp := bytes.Compare(m.parentKey, ikey); {
			case cmp < 0:
				k, v := m.parentKey, m.parentValue
				m.parentKey, m.parentValue = nil, nil
				return k, v, nil
			case cmp == 0:
				// Cached item overwrites the parent value.
				m.parentKey, m.parentValue = nil, nil
			}
		}

		m.items = m.items[1:]
		switch t := item.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			continue
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
		}
	}
}

// Release releases the parent iterator.
func (m *mergeIterator) Release() {
	m.items = nil
	m.parent.Release()
}
