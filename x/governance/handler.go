package governance

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// RegisterRoutes registers handlers for governance handoff messages.
func RegisterRoutes(r nexus.Registry) {
	r.Handle(pathProposeMsg, proposeHandler{})
	r.Handle(pathAcceptMsg, acceptHandler{})
}

type proposeHandler struct{}

func (proposeHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*ProposeMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := Propose(ctx, db, m.Namespace, m.Address, m.Wait); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "governance handoff proposed"}, nil
}

type acceptHandler struct{}

func (acceptHandler) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	m, ok := msg.(*AcceptMsg)
	if !ok {
		return nil, errors.WithType(errors.ErrMsg, msg)
	}
	if err := Accept(ctx, db, m.Namespace); err != nil {
		return nil, err
	}
	return &nexus.Result{Log: "governance handoff accepted"}, nil
}
