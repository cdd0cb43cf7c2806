package app

import "github.com/iov-one/nexus/errors"

var (
	// ErrNoSuchPath is returned for a message no handler is registered
	// for.
	ErrNoSuchPath = errors.Register(200, "no such path")

	// ErrCallDepth is returned when calls issued by handlers are nested
	// deeper than MaxCallDepth.
	ErrCallDepth = errors.Register(201, "call depth exceeded")
)
