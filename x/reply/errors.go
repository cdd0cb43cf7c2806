package reply

import "github.com/iov-one/nexus/errors"

// ErrUnknownReplyID is returned when a reply arrives for a continuation that
// was never stashed or was already taken.
var ErrUnknownReplyID = errors.Register(300, "unknown reply id")
