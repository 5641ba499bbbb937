// Package onboarding walks a visitor through joining a guild: Discord sign
// in, guild choice, Battle.net sign in and character choice.
package onboarding

import (
	"github.com/gorilla/mux"

	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Module provides the onboarding routes.
type Module struct {
	gateways Gateways
}

// New returns an onboarding module without a backend.
func New() Module {
	return Module{}
}

// NewWithGateways returns an onboarding module backed by gateways.
func NewWithGateways(gateways Gateways) Module {
	return Module{gateways: gateways}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "onboarding" }

// Mount wires onboarding route handlers.
func (m Module) Mount() (module.Mount, error) {
	router := mux.NewRouter()
	registerRoutes(router, newHandlers(newService(m.gateways)))
	return module.Mount{Prefix: routepath.Onboarding, Handler: router}, nil
}
