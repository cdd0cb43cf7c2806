package app

import (
	"reflect"

	"github.com/iov-one/nexus"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []nexus.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		app.NewMetrics(prometheus.DefaultRegisterer),
	).WithHandler(
		myapp.Router(),
	)
*/
func ChainDecorators(chain ...nexus.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...nexus.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := make([]nexus.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	newChain = append(newChain, chain...)
	return Decorators{newChain}
}

// cutoffNil will in-place remove all nil values from given slice.
func cutoffNil(ds []nexus.Decorator) []nexus.Decorator {
	var cutoff int
	for i := 0; i < len(ds); i++ {
		ds[i-cutoff] = ds[i]
		if ds[i] == nil || (reflect.ValueOf(ds[i]).Kind() == reflect.Ptr && reflect.ValueOf(ds[i]).IsNil()) {
			cutoff++
		}
	}
	return ds[:len(ds)-cutoff]
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h nexus.Handler) nexus.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler. Simplified version of a closure.
type step struct {
	d    nexus.Decorator
	next nexus.Handler
}

var _ nexus.Handler = step{}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx nexus.Context, store nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	return s.d.Deliver(ctx, store, msg, s.next)
}
