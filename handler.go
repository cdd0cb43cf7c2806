package nexus

import (
	"encoding/json"
)

// Msg is a request processed by a Handler. Every message declares the path
// used to route it and knows how to validate itself.
type Msg interface {
	// Path returns the routing path for this message.
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one of the fields is invalid.
	Validate() error
}

// Handler is a core engine that can process a few specific messages.
// This could represent "bond tokens to a pool", or "claim rewards".
type Handler interface {
	Deliver(ctx Context, store KVStore, msg Msg) (*Result, error)
}

// ReplyHandler is implemented by handlers that issue calls with a reply
// request. The host delivers the outcome of such a call to the handler that
// issued it, within the same operation and in the order the calls were
// issued.
type ReplyHandler interface {
	Handler
	Reply(ctx Context, store KVStore, reply Reply) (*Result, error)
}

// Decorator wraps a Handler to provide common functionality
// like logging or metrics to many Handlers.
type Decorator interface {
	Deliver(ctx Context, store KVStore, msg Msg, next Handler) (*Result, error)
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

// Result is the outcome of a successfully processed message.
type Result struct {
	// Log is a human readable summary.
	Log string
	// Data is an optional, handler specific payload.
	Data []byte
	// Calls are executed by the host in order, after the handler
	// returned.
	Calls []Call
}

// Options are the app options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	return json.Unmarshal(msg, obj)
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer(inits)
}

type chainInitializer []Initializer

func (c chainInitializer) FromGenesis(opts Options, kv KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
