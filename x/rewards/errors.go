package rewards

import "github.com/iov-one/nexus/errors"

var (
	// ErrNoRewards is returned when a claim would pay nothing.
	ErrNoRewards = errors.Register(400, "no rewards")

	// ErrInsufficientBalance is returned when a staker unbonds more than
	// it has staked.
	ErrInsufficientBalance = errors.Register(401, "insufficient staked balance")
)
