package nexus

import (
	"context"
	"fmt"

	"github.com/iov-one/nexus/decimal"
)

// CallKind declares what a Call does.
type CallKind int

const (
	// CallTransfer moves tokens between two accounts.
	CallTransfer CallKind = iota + 1
	// CallSend moves tokens and delivers a hook message to the receiving
	// extension. The hook handler can read the Receipt from the context.
	CallSend
	// CallMint creates new tokens. Only the minter of a token is allowed
	// to do that.
	CallMint
	// CallBurn destroys tokens held by the caller.
	CallBurn
	// CallExecute routes a message to another extension, on behalf of the
	// calling extension.
	CallExecute
)

func (k CallKind) String() string {
	switch k {
	case CallTransfer:
		return "transfer"
	case CallSend:
		return "send"
	case CallMint:
		return "mint"
	case CallBurn:
		return "burn"
	case CallExecute:
		return "execute"
	default:
		return fmt.Sprintf("CallKind(%d)", int(k))
	}
}

// ReplyOn declares when the issuing handler wants to receive the outcome of
// a call.
type ReplyOn int

const (
	ReplyNever ReplyOn = iota
	ReplySuccess
	ReplyError
	ReplyAlways
)

// Wants returns true if a reply must be delivered for a call that finished
// with given error.
func (r ReplyOn) Wants(err error) bool {
	switch r {
	case ReplyAlways:
		return true
	case ReplySuccess:
		return err == nil
	case ReplyError:
		return err != nil
	default:
		return false
	}
}

// FailurePolicy declares what a failed call means for the whole operation.
// There is no default, each call site must choose one.
type FailurePolicy int

const (
	// Abort rolls back the whole operation if the call fails.
	Abort FailurePolicy = iota + 1
	// Tolerate discards the writes of the failed call only and continues.
	// The issuing handler learns about the failure through a reply.
	Tolerate
)

// Call is an abstract instruction returned by a handler. Handlers never move
// tokens or call other extensions on their own. They describe what should
// happen and the host executes it once the handler returned.
type Call struct {
	Kind CallKind
	// Token is the token identifier for all token related calls.
	Token string
	// From is the account that pays for a transfer, send or burn, and the
	// signer of an executed message.
	From Address
	// To is the receiving account. Not used by burn and execute.
	To     Address
	Amount decimal.Uint
	// Msg is the hook message of a send or the executed message.
	Msg Msg

	ReplyOn   ReplyOn
	ReplyID   uint64
	OnFailure FailurePolicy
}

// Transfer returns a call that moves tokens. The call aborts the operation
// on failure.
func Transfer(token string, from, to Address, amount decimal.Uint) Call {
	return Call{Kind: CallTransfer, Token: token, From: from, To: to, Amount: amount, OnFailure: Abort}
}

// Send returns a call that moves tokens to an extension and delivers the hook
// message to it. The call aborts the operation on failure.
func Send(token string, from, to Address, amount decimal.Uint, hook Msg) Call {
	return Call{Kind: CallSend, Token: token, From: from, To: to, Amount: amount, Msg: hook, OnFailure: Abort}
}

// Mint returns a call that creates new tokens. The call aborts the operation
// on failure.
func Mint(token string, minter, to Address, amount decimal.Uint) Call {
	return Call{Kind: CallMint, Token: token, From: minter, To: to, Amount: amount, OnFailure: Abort}
}

// Burn returns a call that destroys tokens. The call aborts the operation on
// failure.
func Burn(token string, from Address, amount decimal.Uint) Call {
	return Call{Kind: CallBurn, Token: token, From: from, Amount: amount, OnFailure: Abort}
}

// Execute returns a call that routes given message to another extension with
// the caller as the signer. The call aborts the operation on failure.
func Execute(caller Address, msg Msg) Call {
	return Call{Kind: CallExecute, From: caller, Msg: msg, OnFailure: Abort}
}

// WithReply returns a copy of this call that asks the host to deliver a reply
// with given id.
func (c Call) WithReply(id uint64, on ReplyOn) Call {
	c.ReplyID = id
	c.ReplyOn = on
	return c
}

// Tolerate returns a copy of this call that does not abort the operation on
// failure.
func (c Call) Tolerate() Call {
	c.OnFailure = Tolerate
	return c
}

// Reply is the outcome of a call delivered to the handler that issued it.
type Reply struct {
	ID uint64
	// Err is the failure of the call, nil on success.
	Err error
	// Data is the result data of an executed message.
	Data []byte
}

// Executor executes token calls on behalf of the host.
type Executor interface {
	Execute(ctx Context, store KVStore, call Call) error
}

// Receipt describes the tokens that arrived together with a send hook
// message.
type Receipt struct {
	Sender Address
	// Recipient is the account that received the tokens, usually the
	// address of the extension instance the hook is meant for.
	Recipient Address
	Token     string
	Amount    decimal.Uint
}

type receiptKey struct{}

// WithReceipt attaches the receipt of a send call to the context of the hook
// message delivery.
func WithReceipt(ctx Context, r Receipt) Context {
	return context.WithValue(ctx, receiptKey{}, r)
}

// GetReceipt returns the receipt attached by the host when the processed
// message was delivered as a send hook.
func GetReceipt(ctx Context) (Receipt, bool) {
	r, ok := ctx.Value(receiptKey{}).(Receipt)
	return r, ok
}

// WithoutReceipt hides a receipt attached to the context. Messages executed
// on behalf of an extension never carry the receipt of the hook that issued
// them.
func WithoutReceipt(ctx Context) Context {
	if _, ok := GetReceipt(ctx); !ok {
		return ctx
	}
	return context.WithValue(ctx, receiptKey{}, nil)
}
