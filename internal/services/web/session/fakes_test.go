package session

import (
	"context"
	"sync"

	"github.com/eighthwonder/eighthwonder/internal/platform/requestctx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeFetcher struct {
	mu          sync.Mutex
	profile     *backend.UserProfile
	err         error
	calls       int
	lastCookies int
}

func (f *fakeFetcher) Profile(ctx context.Context) (*backend.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastCookies = len(requestctx.BackendCookiesFromContext(ctx))
	return f.profile, f.err
}

func (f *fakeFetcher) set(profile *backend.UserProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile = profile
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func profileWithGuilds(ids ...backend.ID) *backend.UserProfile {
	profile := &backend.UserProfile{ID: "7"}
	for _, id := range ids {
		profile.Guilds = append(profile.Guilds, backend.GuildRelationship{Guild: backend.Guild{ID: id}})
	}
	return profile
}
