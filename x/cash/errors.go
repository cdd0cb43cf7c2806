package cash

import "github.com/iov-one/nexus/errors"

var (
	// ErrInsufficientFunds is returned when an account does not hold
	// enough tokens.
	ErrInsufficientFunds = errors.Register(320, "insufficient funds")

	// ErrEmptyReserve is returned when a price is requested from a pair
	// that does not hold one of its tokens.
	ErrEmptyReserve = errors.Register(321, "empty reserve")
)
