package ratio

import "github.com/iov-one/nexus/errors"

// ErrInvalidRatioState is returned when ratios do not add up to one or one of
// them is out of its bounds.
var ErrInvalidRatioState = errors.Register(500, "invalid ratio state")
