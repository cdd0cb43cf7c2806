package nexustest

import (
	"context"
	"time"

	"github.com/iov-one/nexus"
)

// BlockTime is the default block time of contexts created by this package.
var BlockTime = time.Date(2022, time.March, 1, 12, 0, 0, 0, time.UTC)

// Ctx returns a context with the default block time and given signer. The
// signer may be nil.
func Ctx(signer nexus.Address) nexus.Context {
	return CtxAt(BlockTime, signer)
}

// CtxAt returns a context with given block time and signer.
func CtxAt(now time.Time, signer nexus.Address) nexus.Context {
	ctx := nexus.WithBlockTime(context.Background(), now)
	if signer != nil {
		ctx = nexus.WithSigner(ctx, signer)
	}
	return ctx
}

// Later returns a context for a block that is given duration after the
// default block time.
func Later(d time.Duration, signer nexus.Address) nexus.Context {
	return CtxAt(BlockTime.Add(d), signer)
}
