/*
Package nexus defines all common interfaces to tie together the
reward accounting extensions, as well as implementations of some of
the simpler components (when interfaces would be too much overhead).

We pass context through context.Context between app, decorators and
handlers. To do so, nexus defines some common keys to store info, such
as block time, chain id and the signer of the message.

There should exist two functions for every XYZ of type T
that we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level
modules overwriting the value (eg. block time, chain id).
*/
package nexus

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/nexus/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain.
type Context = context.Context

type contextKey int // local to the nexus module

const (
	contextKeyBlockTime contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
	contextKeySigner
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID is the RegExp to ensure valid chain IDs
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// WithBlockTime sets the block time for the context. Block time is the
// only notion of "now" any extension may use.
func WithBlockTime(ctx Context, t time.Time) Context {
	if _, ok := ctx.Value(contextKeyBlockTime).(time.Time); ok {
		panic("block time already set")
	}
	return context.WithValue(ctx, contextKeyBlockTime, t.UTC())
}

// BlockTime returns current block wall clock time as declared in the context.
// An error is returned if a block time is not present in the context.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(contextKeyBlockTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return t, nil
}

// BlockUnixTime returns the block time in seconds.
func BlockUnixTime(ctx Context) (UnixTime, error) {
	t, err := BlockTime(ctx)
	if err != nil {
		return 0, err
	}
	return AsUnixTime(t), nil
}

// IsExpired returns true if given time is in the past as compared to the "now"
// as declared for the block. Expiration is inclusive, meaning that if current
// time is equal to the expiration time than this function returns true.
//
// This function panic if the block time is not provided in the context.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockUnixTime(ctx)
	if err != nil {
		panic(err)
	}
	return t <= now
}

// WithHeight sets the block height for the context.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := ctx.Value(contextKeyHeight).(int64); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height.
// If none set, it returns 0, false.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain id for the Context.
// It panics on an invalid chain id or if the value was already set.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.Wrapf(errors.ErrInput, "chain id %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain id set on the context.
func GetChainID(ctx Context) string {
	val, _ := ctx.Value(contextKeyChainID).(string)
	return val
}

// WithLogger sets the logger for this Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithSigner sets the address that authorized the currently processed
// message. Nested calls executed on behalf of an extension replace the
// signer with the extension address.
func WithSigner(ctx Context, signer Address) Context {
	return context.WithValue(ctx, contextKeySigner, signer)
}

// GetSigner returns the address that authorized the currently processed
// message or nil.
func GetSigner(ctx Context) Address {
	val, _ := ctx.Value(contextKeySigner).(Address)
	return val
}

// HasSigner returns true if the given address signed the currently
// processed message.
func HasSigner(ctx Context, addr Address) bool {
	signer := GetSigner(ctx)
	return signer != nil && signer.Equals(addr)
}
