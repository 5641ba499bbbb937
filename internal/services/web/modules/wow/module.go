// Package wow serves World of Warcraft lookups used by character selection.
package wow

import (
	"time"

	"github.com/gorilla/mux"

	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
	"github.com/eighthwonder/eighthwonder/internal/services/web/storage"
)

// CacheTTLs bounds how long each lookup is served from the response cache.
type CacheTTLs struct {
	Regions    time.Duration
	Realms     time.Duration
	Characters time.Duration
}

// DefaultCacheTTLs keeps realm data for a day and characters for minutes.
func DefaultCacheTTLs() CacheTTLs {
	return CacheTTLs{
		Regions:    24 * time.Hour,
		Realms:     24 * time.Hour,
		Characters: 5 * time.Minute,
	}
}

// Module provides wow routes.
type Module struct {
	gateway WowGateway
	cache   *storage.Cache
	ttls    CacheTTLs
}

// New returns a wow module without a backend.
func New() Module {
	return Module{ttls: DefaultCacheTTLs()}
}

// NewWithGateway returns a wow module backed by gateway. Reads go through
// cache when it is not nil.
func NewWithGateway(gateway WowGateway, cache *storage.Cache, ttls CacheTTLs) Module {
	return Module{gateway: gateway, cache: cache, ttls: ttls}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "wow" }

// Mount wires wow route handlers.
func (m Module) Mount() (module.Mount, error) {
	router := mux.NewRouter()
	registerRoutes(router, newHandlers(newService(m.gateway, m.cache, m.ttls)))
	return module.Mount{Prefix: routepath.WowPrefix, Handler: router}, nil
}
