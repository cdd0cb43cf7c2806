package app

import (
	"time"

	"github.com/iov-one/nexus"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ nexus.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Deliver logs error -> error, success -> info
func (Logging) Deliver(ctx nexus.Context, store nexus.KVStore, msg nexus.Msg, next nexus.Handler) (*nexus.Result, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, msg)
	var resLog string
	if err == nil && res != nil {
		resLog = res.Log
	}
	logDuration(ctx, start, msg.Path(), resLog, err)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx nexus.Context, start time.Time, path, msg string, err error) {
	delta := time.Since(start)
	logger := nexus.GetLogger(ctx).With("path", path, "duration", delta/time.Microsecond)

	// Although message can be empty, we still want to emit a log entry
	// because it contains other relevant information beside the message.
	if err != nil {
		logger.Error(msg, "err", err)
	} else {
		logger.Info(msg)
	}
}
