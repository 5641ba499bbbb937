package app

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/mux"

	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	// Guard wraps every protected module. A nil guard lets all requests in.
	Guard            httpx.Middleware
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

type mounted struct {
	id      string
	prefix  string
	paths   []string
	handler http.Handler
}

// Compose builds a root HTTP handler from module groups. Exact paths win
// over prefixes and longer prefixes win over shorter ones.
func Compose(input ComposeInput) (http.Handler, error) {
	var mounts []mounted
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		m, err := resolveMount(feature, seen, nil)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, m)
	}
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		m, err := resolveMount(feature, seen, input.Guard)
		if err != nil {
			return nil, err
		}
		mounts = append(mounts, m)
	}

	sort.SliceStable(mounts, func(i, j int) bool {
		return len(mounts[i].prefix) > len(mounts[j].prefix)
	})

	root := mux.NewRouter()
	for _, m := range mounts {
		for _, path := range m.paths {
			root.Path(path).Handler(m.handler)
		}
	}
	for _, m := range mounts {
		root.PathPrefix(m.prefix).Handler(m.handler)
	}
	return root, nil
}

func resolveMount(feature module.Module, seen map[string]string, guard httpx.Middleware) (mounted, error) {
	mount, err := feature.Mount()
	if err != nil {
		return mounted{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return mounted{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	if err := validatePath(mount.Prefix); err != nil {
		return mounted{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), mount.Prefix, err)
	}
	if err := claim(seen, "prefix "+mount.Prefix, feature.ID()); err != nil {
		return mounted{}, err
	}
	for _, path := range mount.Paths {
		if err := validatePath(path); err != nil {
			return mounted{}, fmt.Errorf("mount module %q has invalid path %q: %w", feature.ID(), path, err)
		}
		if err := claim(seen, "path "+path, feature.ID()); err != nil {
			return mounted{}, err
		}
	}

	handler := mount.Handler
	if guard != nil {
		handler = guard(handler)
	}
	return mounted{id: feature.ID(), prefix: mount.Prefix, paths: mount.Paths, handler: handler}, nil
}

func claim(seen map[string]string, key, id string) error {
	if previous, ok := seen[key]; ok {
		return fmt.Errorf("module %q duplicates %s owned by module %q", id, key, previous)
	}
	seen[key] = id
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.TrimSpace(path) != path {
		return fmt.Errorf("prefix must not include surrounding whitespace")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("prefix must begin with /")
	}
	return nil
}
