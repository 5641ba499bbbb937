// Package authproxy relays the Discord and Battle.net sign-in routes to the
// backend so its session cookies are set on the web origin.
package authproxy

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Module provides the /auth/ proxy.
type Module struct {
	backendURL string
	transport  http.RoundTripper
}

// New returns a proxy to backendURL. A nil transport uses
// http.DefaultTransport.
func New(backendURL string, transport http.RoundTripper) Module {
	return Module{backendURL: strings.TrimSpace(backendURL), transport: transport}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "authproxy" }

// Mount builds the reverse proxy.
func (m Module) Mount() (module.Mount, error) {
	if m.backendURL == "" {
		return module.Mount{}, fmt.Errorf("backend url is required")
	}
	target, err := url.Parse(m.backendURL)
	if err != nil {
		return module.Mount{}, fmt.Errorf("parse backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return module.Mount{}, fmt.Errorf("backend url %q must be absolute", m.backendURL)
	}
	return module.Mount{Prefix: routepath.AuthPrefix, Handler: newProxy(target, m.transport)}, nil
}
