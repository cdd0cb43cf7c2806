/*
Package app links together all the various components
to construct the nexusd app.
*/
package app

import (
	"github.com/iov-one/nexus"
	"github.com/iov-one/nexus/app"
	"github.com/iov-one/nexus/x/cash"
	"github.com/iov-one/nexus/x/governance"
	"github.com/iov-one/nexus/x/launch"
	"github.com/iov-one/nexus/x/rewards"
	"github.com/iov-one/nexus/x/vault"
	"github.com/prometheus/client_golang/prometheus"
)

// Chain returns a chain of decorators, to handle logging, recovery and
// metrics. A nil registerer disables metrics.
func Chain(reg prometheus.Registerer) app.Decorators {
	var metrics nexus.Decorator
	if reg != nil {
		metrics = app.NewMetrics(reg)
	}
	return app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		metrics,
	)
}

// Router returns a router with the handlers of every extension. All token
// movements go through ctrl.
func Router(ctrl cash.BaseController) *app.Router {
	r := app.NewRouter()
	cash.RegisterRoutes(r, ctrl)
	governance.RegisterRoutes(r)
	launch.RegisterRoutes(r)
	rewards.RegisterRoutes(r, ctrl)
	vault.RegisterRoutes(r, ctrl, launch.Querier{})
	return r
}

// Initializers returns the genesis initializers of every extension. Tokens
// and governance must exist before the pools referring to them.
func Initializers() nexus.Initializer {
	return nexus.ChainInitializers(
		&cash.Initializer{},
		governance.Initializer{},
		launch.Initializer{},
		rewards.Initializer{},
		vault.Initializer{},
	)
}

// NewHost returns the host executing all messages of the nexusd app.
func NewHost(reg prometheus.Registerer) *app.Host {
	ctrl := cash.NewController()
	return app.NewHost(Router(ctrl), cash.NewExecutor(ctrl), Chain(reg))
}
