package app

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// MaxCallDepth limits how deep calls issued by handlers can be nested.
const MaxCallDepth = 16

// Host delivers messages and executes the calls returned by handlers. Every
// call runs on top of its own savepoint. A failed call is rolled back and,
// depending on its failure policy, aborts the whole operation or is only
// reported to the issuing handler.
type Host struct {
	handler nexus.Handler
	router  *Router
	exec    nexus.Executor
}

// NewHost returns a host that routes messages with r through the chain of
// decorators and moves tokens with exec.
func NewHost(r *Router, exec nexus.Executor, decorators Decorators) *Host {
	return &Host{
		handler: decorators.WithHandler(r),
		router:  r,
		exec:    exec,
	}
}

// Deliver processes a single top level operation. All writes done by the
// message handler, the calls it issued and the replies to those calls are
// written to db only if none of them failed.
func (h *Host) Deliver(ctx nexus.Context, db nexus.CacheableKVStore, msg nexus.Msg) (res *nexus.Result, err error) {
	defer errors.Recover(&err)

	cache := db.CacheWrap()
	res, err = h.run(ctx, cache, msg, 0)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return res, nil
}

func (h *Host) run(ctx nexus.Context, db nexus.CacheableKVStore, msg nexus.Msg, depth int) (*nexus.Result, error) {
	if depth > MaxCallDepth {
		return nil, errors.Wrapf(ErrCallDepth, "%s at depth %d", msg.Path(), depth)
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "validate %s", msg.Path())
	}
	res, err := h.handler.Deliver(ctx, db, msg)
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &nexus.Result{}
	}
	if err := h.execute(ctx, db, msg.Path(), res.Calls, depth); err != nil {
		return nil, err
	}
	return res, nil
}

// execute runs calls in order. Replies are delivered to the handler
// registered for path as soon as the call they refer to finished, and the
// calls they return are executed before the next call in the list.
func (h *Host) execute(ctx nexus.Context, db nexus.CacheableKVStore, path string, calls []nexus.Call, depth int) error {
	for i, c := range calls {
		data, callErr := h.call(ctx, db, c, depth+1)
		if callErr != nil && c.OnFailure != nexus.Tolerate {
			return errors.Wrapf(callErr, "%s call #%d", c.Kind, i)
		}
		if callErr != nil {
			nexus.GetLogger(ctx).Info("tolerated call failure",
				"path", path, "call", c.Kind.String(), "err", callErr)
		}
		if !c.ReplyOn.Wants(callErr) {
			continue
		}

		rh, ok := h.router.Handler(path).(nexus.ReplyHandler)
		if !ok {
			return errors.Wrapf(errors.ErrType, "%s handler does not accept replies", path)
		}
		res, err := rh.Reply(ctx, db, nexus.Reply{ID: c.ReplyID, Err: callErr, Data: data})
		if err != nil {
			return errors.Wrapf(err, "reply %d", c.ReplyID)
		}
		if res == nil {
			continue
		}
		if err := h.execute(ctx, db, path, res.Calls, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// call executes a single call on a savepoint. Nothing the call wrote is
// kept if it fails.
func (h *Host) call(ctx nexus.Context, db nexus.CacheableKVStore, c nexus.Call, depth int) ([]byte, error) {
	cache := db.CacheWrap()
	data, err := h.dispatch(ctx, cache, c, depth)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return data, nil
}

func (h *Host) dispatch(ctx nexus.Context, db nexus.CacheableKVStore, c nexus.Call, depth int) ([]byte, error) {
	switch c.Kind {
	case nexus.CallTransfer, nexus.CallMint, nexus.CallBurn:
		return nil, h.exec.Execute(ctx, db, c)
	case nexus.CallSend:
		if err := h.exec.Execute(ctx, db, c); err != nil {
			return nil, err
		}
		if c.Msg == nil {
			return nil, nil
		}
		hookCtx := nexus.WithReceipt(nexus.WithSigner(ctx, c.From), nexus.Receipt{
			Sender:    c.From,
			Recipient: c.To,
			Token:     c.Token,
			Amount:    c.Amount,
		})
		res, err := h.run(hookCtx, db, c.Msg, depth)
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	case nexus.CallExecute:
		if c.Msg == nil {
			return nil, errors.Wrap(errors.ErrHuman, "execute call without a message")
		}
		res, err := h.run(nexus.WithoutReceipt(nexus.WithSigner(ctx, c.From)), db, c.Msg, depth)
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown call kind %s", c.Kind)
	}
}
