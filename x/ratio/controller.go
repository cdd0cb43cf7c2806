package ratio

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/decimal"
)

// Outcome describes what a rebalance did.
type Outcome int

const (
	// Skipped means the period did not elapse yet. Nothing changed.
	Skipped Outcome = iota
	// Unchanged means the signal was Zero. Only the gate timer moved.
	Unchanged
	// Moved means ratios A and B were updated.
	Moved
	// Rejected means the move would break a bound. Only the gate timer
	// moved.
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Moved:
		return "moved"
	case Rejected:
		return "rejected"
	default:
		return "skipped"
	}
}

// SignalFunc computes the current signal. It is called only when the
// rebalance gate is open.
type SignalFunc func() (Signal, error)

// Rebalance moves the ratios one step in the direction of the signal if at
// least one period elapsed since the last calculation.
//
// Once the period elapsed, the returned state always carries now as the last
// calculation time, also when the move is rejected. An error means the
// signal could not be computed and the whole operation must fail.
func Rebalance(now nexus.UnixTime, conf Config, st State, signal SignalFunc) (State, Outcome, error) {
	if now.Time().Sub(st.Last.Time()) < conf.Period.Duration() {
		return st, Skipped, nil
	}
	st.Last = now
	return Step(conf, st, signal)
}

// Step moves the ratios one step in the direction of the signal, ignoring
// the period. A rejected or Zero move returns st unchanged.
func Step(conf Config, st State, signal SignalFunc) (State, Outcome, error) {
	sig, err := signal()
	if err != nil {
		return st, Skipped, err
	}

	var a decimal.Dec
	switch sig {
	case Positive:
		a, err = st.A.Mul(conf.Step)
	case Negative:
		a, err = st.A.Quo(conf.Step)
	default:
		return st, Unchanged, nil
	}
	if err != nil {
		return st, Rejected, nil
	}
	if a.LT(conf.MinA) || a.GT(conf.MaxA) {
		return st, Rejected, nil
	}
	ac, err := a.Add(st.C)
	if err != nil {
		return st, Rejected, nil
	}
	b, err := decimal.OneDec().Sub(ac)
	if err != nil {
		// A + C above one.
		return st, Rejected, nil
	}

	next := st
	next.A = a
	next.B = b
	if next.Validate(conf) != nil {
		return st, Rejected, nil
	}
	return next, Moved, nil
}
