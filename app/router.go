package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// Router allows us to register many handlers with different paths and
// dispatch each message to the handler registered for its path.
type Router struct {
	routes map[string]nexus.Handler
}

var _ nexus.Registry = (*Router)(nil)
var _ nexus.Handler = (*Router)(nil)

// NewRouter returns a new, empty router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]nexus.Handler),
	}
}

// Handle adds a new handler for given path. It panics if the path is not
// valid or already taken.
func (r *Router) Handle(path string, h nexus.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q, expected <extension>/<message>", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path. A handler that
// always fails with ErrNoSuchPath is returned for unknown paths.
func (r *Router) Handler(path string) nexus.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Deliver dispatches msg to the handler registered for its path.
func (r *Router) Deliver(ctx nexus.Context, db nexus.KVStore, msg nexus.Msg) (*nexus.Result, error) {
	return r.Handler(msg.Path()).Deliver(ctx, db, msg)
}

type notFoundHandler string

func (path notFoundHandler) Deliver(nexus.Context, nexus.KVStore, nexus.Msg) (*nexus.Result, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}
