// Package user serves the signed-in visitor's header data, guild selection
// and logout.
package user

import (
	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Module provides profile and logout routes.
type Module struct {
	gateway  AccountGateway
	sessions SessionEnder
	cdn      imagecdn.CDN
}

// New returns a user module without a backend.
func New() Module {
	return Module{cdn: imagecdn.New("")}
}

// NewWithGateway returns a user module backed by gateway. Logout forgets the
// visitor's session through sessions.
func NewWithGateway(gateway AccountGateway, sessions SessionEnder, cdn imagecdn.CDN) Module {
	return Module{gateway: gateway, sessions: sessions, cdn: cdn}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "user" }

// Mount wires profile and logout handlers.
func (m Module) Mount() (module.Mount, error) {
	router := mux.NewRouter()
	registerRoutes(router, newHandlers(newService(m.gateway, m.cdn), m.sessions))
	return module.Mount{
		Prefix:  routepath.Profile,
		Paths:   []string{routepath.Logout},
		Handler: router,
	}, nil
}
