// Package guild serves a guild's profile page and its event scheduling form.
package guild

import (
	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Module provides guild routes.
type Module struct {
	gateway GuildGateway
	cdn     imagecdn.CDN
}

// New returns a guild module without a backend.
func New() Module {
	return Module{cdn: imagecdn.New("")}
}

// NewWithGateway returns a guild module backed by gateway.
func NewWithGateway(gateway GuildGateway, cdn imagecdn.CDN) Module {
	return Module{gateway: gateway, cdn: cdn}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "guild" }

// Mount wires guild route handlers.
func (m Module) Mount() (module.Mount, error) {
	router := mux.NewRouter()
	registerRoutes(router, newHandlers(newService(m.gateway, m.cdn)))
	return module.Mount{Prefix: routepath.GuildPrefix, Handler: router}, nil
}
