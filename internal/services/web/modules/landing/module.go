// Package landing serves the public entry page and the health probe.
package landing

import (
	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/guard"
	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Module provides the landing routes.
type Module struct {
	gateway  AuthGateway
	profiles guard.ProfileResolver
}

// New returns a landing module without a backend. Every visitor is treated
// as signed out.
func New() Module {
	return Module{}
}

// NewWithGateway returns a landing module that sends signed-in visitors to
// their first guild.
func NewWithGateway(gateway AuthGateway, profiles guard.ProfileResolver) Module {
	return Module{gateway: gateway, profiles: profiles}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "landing" }

// Mount wires landing route handlers.
func (m Module) Mount() (module.Mount, error) {
	router := mux.NewRouter()
	svc := newService(m.gateway)
	registerRoutes(router, newHandlers(svc, m.profiles))
	return module.Mount{Prefix: routepath.Root, Handler: router}, nil
}
