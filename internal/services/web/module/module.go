// Package module defines the feature contract used by web composition.
package module

import "net/http"

// Mount describes a module route mount.
//
// Prefix is matched as a path prefix. Paths lists extra exact paths the
// module also owns outside its prefix.
type Mount struct {
	Prefix  string
	Paths   []string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount() (Mount, error)
}
