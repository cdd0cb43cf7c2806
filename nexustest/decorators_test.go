package nexustest

import (
	"testing"

	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest/assert"
	"github.com/iov-one/nexus/store"
)

func TestDecoratorWithError(t *testing.T) {
	d := &Decorator{DeliverErr: errors.ErrUnauthorized}
	h := &Handler{}
	db := store.MemStore()

	_, err := Decorate(h, d).Deliver(Ctx(nil), db, &Msg{RoutePath: "test/msg"})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 1, d.DeliverCallCount())
	assert.Equal(t, 0, h.DeliverCallCount())
}

func TestDecoratorCallsHandler(t *testing.T) {
	d := &Decorator{}
	h := &Handler{}
	db := store.MemStore()

	_, err := Decorate(h, d).Deliver(Ctx(nil), db, &Msg{RoutePath: "test/msg"})
	assert.Nil(t, err)
	assert.Equal(t, 1, d.DeliverCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}

func TestNewAddressIsUnique(t *testing.T) {
	a, b := NewAddress(), NewAddress()
	if a.Equals(b) {
		t.Fatal("addresses must be unique")
	}
	assert.Nil(t, a.Validate())
	assert.Equal(t, a, ParseAddress(t, a.String()))
}
