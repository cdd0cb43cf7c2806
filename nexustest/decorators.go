package nexustest

import "github.com/iov-one/nexus"

// Decorator is a mock implementation of the nexus.Decorator interface.
//
// Set DeliverErr to force error response. If the error attribute is not set
// then wrapped handler method is called and its result returned.
// Regardless of the method call result the counter is incremented.
type Decorator struct {
	deliverCall int
	// DeliverErr if set is returned by the Deliver method before calling
	// the wrapped handler.
	DeliverErr error
}

var _ nexus.Decorator = (*Decorator)(nil)

func (d *Decorator) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg, next nexus.Handler) (*nexus.Result, error) {
	d.deliverCall++

	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, msg)
}

func (d *Decorator) DeliverCallCount() int {
	return d.deliverCall
}

// Decorate returns a handler that passes every message through given
// decorator.
func Decorate(h nexus.Handler, d nexus.Decorator) nexus.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn nexus.Handler
	dc nexus.Decorator
}

var _ nexus.Handler = (*decoratedHandler)(nil)

func (d *decoratedHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	return d.dc.Deliver(ctx, db, msg, d.hn)
}
