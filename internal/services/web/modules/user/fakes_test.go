package user

import (
	"context"
	"net/http"
	"sync"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeGateway struct {
	cookies []*http.Cookie
	err     error
	calls   int
}

func (f *fakeGateway) Logout(context.Context) ([]*http.Cookie, error) {
	f.calls++
	return f.cookies, f.err
}

type fakeProfiles struct {
	mu      sync.Mutex
	profile *backend.UserProfile
	err     error
	calls   int
}

func (f *fakeProfiles) Profile(context.Context) (*backend.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.profile, f.err
}

func (f *fakeProfiles) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSessions struct {
	deleted []string
}

func (f *fakeSessions) Delete(id string) {
	f.deleted = append(f.deleted, id)
}

func testProfile() *backend.UserProfile {
	return &backend.UserProfile{
		ID:       "7",
		Username: "thrall",
		Avatar:   "a1b2",
		Guilds: []backend.GuildRelationship{
			{Guild: backend.Guild{ID: "42", DiscordName: "Horde", Icon: "h0rd3", BotPresent: true}, Permission: backend.PermissionOwner},
			{Guild: backend.Guild{ID: "43", DiscordName: "Alliance", IconURL: "https://img.example/a.png"}, Permission: backend.PermissionVisible},
		},
	}
}
