package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Registry owns every live Workspace and evicts idle ones.
type Registry struct {
	fetcher ProfileFetcher
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Workspace
}

// NewRegistry returns a registry whose workspaces load profiles through fetcher.
func NewRegistry(fetcher ProfileFetcher, idleTTL time.Duration) (*Registry, error) {
	if fetcher == nil {
		return nil, errors.New("profile fetcher is required")
	}
	if idleTTL <= 0 {
		return nil, errors.New("session idle ttl must be positive")
	}
	return &Registry{
		fetcher:  fetcher,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: map[string]*Workspace{},
	}, nil
}

// Get returns the live workspace for id and marks it active.
func (r *Registry) Get(id string) (*Workspace, bool) {
	r.mu.Lock()
	ws, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	now := r.now()
	if now.Sub(ws.idleSince()) > r.idleTTL {
		r.Delete(id)
		return nil, false
	}
	ws.touch(now)
	return ws, true
}

// Create starts a workspace under a fresh random id.
func (r *Registry) Create() *Workspace {
	ws := newWorkspace(uuid.NewString(), r.fetcher, r.now())
	r.mu.Lock()
	r.sessions[ws.ID()] = ws
	r.mu.Unlock()
	return ws
}

// Delete forgets the workspace.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts workspaces idle for longer than the TTL and returns how many it evicted.
func (r *Registry) Sweep() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, ws := range r.sessions {
		if now.Sub(ws.idleSince()) > r.idleTTL {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps on every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idleTTL
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.WithFields(log.Fields{"evicted": n, "live": r.Len()}).Debug("idle sessions evicted")
			}
		}
	}
}
