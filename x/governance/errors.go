package governance

import "github.com/iov-one/nexus/errors"

// ErrStaleGovernanceTransfer is returned when a handoff is accepted after its
// expiration or by an address that it was not proposed to.
var ErrStaleGovernanceTransfer = errors.Register(310, "stale governance transfer")
