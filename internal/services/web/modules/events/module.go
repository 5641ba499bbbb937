// Package events serves single event pages.
package events

import (
	"github.com/gorilla/mux"

	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Module provides event routes.
type Module struct {
	gateway EventGateway
}

// New returns an events module without a backend.
func New() Module {
	return Module{}
}

// NewWithGateway returns an events module backed by gateway.
func NewWithGateway(gateway EventGateway) Module {
	return Module{gateway: gateway}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "events" }

// Mount wires event route handlers.
func (m Module) Mount() (module.Mount, error) {
	router := mux.NewRouter()
	registerRoutes(router, newHandlers(newService(m.gateway)))
	return module.Mount{Prefix: routepath.EventsPrefix, Handler: router}, nil
}
