package app

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

// Recovery is a decorator to recover from panics in handlers,
// so we can log them as errors
type Recovery struct{}

var _ nexus.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Deliver turns panics into normal errors
func (Recovery) Deliver(ctx nexus.Context, store nexus.KVStore, msg nexus.Msg, next nexus.Handler) (_ *nexus.Result, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, msg)
}
