package app

import (
	"context"
	"testing"

	"github.com/iov-one/nexus/errors"
	"github.com/iov-one/nexus/nexustest"
	"github.com/iov-one/nexus/nexustest/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	good := &nexustest.Handler{}
	bad := &nexustest.Handler{DeliverErr: errors.ErrUnauthorized}
	r.Handle("test/good", good)
	r.Handle("test/bad", bad)

	// make sure invalid registrations panic
	assert.Panics(t, func() { r.Handle("test/good", good) })
	assert.Panics(t, func() { r.Handle("l:7", good) })
	assert.Panics(t, func() { r.Handle("nopath", good) })

	ctx := context.Background()

	_, err := r.Deliver(ctx, nil, &nexustest.Msg{RoutePath: "test/good"})
	assert.Nil(t, err)
	assert.Equal(t, 1, good.DeliverCallCount())

	// check errors handler is also looked up
	_, err = r.Deliver(ctx, nil, &nexustest.Msg{RoutePath: "test/bad"})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 1, bad.DeliverCallCount())

	// make sure not found returns an error handler as well
	_, err = r.Handler("test/missing").Deliver(ctx, nil, nil)
	assert.IsErr(t, ErrNoSuchPath, err)
	_, err = r.Deliver(ctx, nil, &nexustest.Msg{RoutePath: "test/missing"})
	assert.IsErr(t, ErrNoSuchPath, err)
	assert.Equal(t, 1, good.DeliverCallCount())
}
