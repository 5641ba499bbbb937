package onboarding

import (
	"context"
	"sync"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeAuth struct {
	authenticated bool
	err           error
}

func (f fakeAuth) IsAuthenticated(context.Context) (bool, error) { return f.authenticated, f.err }

type fakeProfiles struct {
	profile *backend.UserProfile
}

func (f fakeProfiles) Profile(context.Context) (*backend.UserProfile, error) { return f.profile, nil }

type fakePlayers struct {
	mu         sync.Mutex
	players    []backend.ID
	characters []backend.ID
}

func (f *fakePlayers) RegisterPlayer(_ context.Context, guildID, _ backend.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = append(f.players, guildID)
	return nil
}

func (f *fakePlayers) RegisterCharacter(_ context.Context, _, _, characterID backend.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.characters = append(f.characters, characterID)
	return nil
}

type fakeBattleNet struct {
	authenticated bool
	characters    []backend.WowCharacter
}

func (f fakeBattleNet) IsAuthenticated(context.Context) (bool, error) { return f.authenticated, nil }

func (f fakeBattleNet) Characters(context.Context) ([]backend.WowCharacter, error) {
	return f.characters, nil
}

func guilds(ids ...backend.ID) *backend.UserProfile {
	profile := &backend.UserProfile{ID: "7"}
	for _, id := range ids {
		profile.Guilds = append(profile.Guilds, backend.GuildRelationship{
			Guild:      backend.Guild{ID: id, DiscordName: "guild " + id.String()},
			Permission: backend.PermissionVisible,
		})
	}
	return profile
}
