package onboarding

import (
	"context"
	"sync"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeAuth struct {
	authenticated bool
	err           error
	calls         int
}

func (f *fakeAuth) IsAuthenticated(context.Context) (bool, error) {
	f.calls++
	return f.authenticated, f.err
}

type fakeProfiles struct {
	profile *backend.UserProfile
	err     error
	calls   int
}

func (f *fakeProfiles) Profile(context.Context) (*backend.UserProfile, error) {
	f.calls++
	return f.profile, f.err
}

type fakeSelection struct {
	mu       sync.Mutex
	selected backend.ID
}

func (f *fakeSelection) SelectedGuild() backend.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selected
}

func (f *fakeSelection) SelectGuild(id backend.ID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = id
}

type registration struct {
	guildID, userID, characterID backend.ID
}

type fakePlayers struct {
	players    []registration
	characters []registration
	err        error
}

func (f *fakePlayers) RegisterPlayer(_ context.Context, guildID, userID backend.ID) error {
	f.players = append(f.players, registration{guildID: guildID, userID: userID})
	return f.err
}

func (f *fakePlayers) RegisterCharacter(_ context.Context, guildID, userID, characterID backend.ID) error {
	f.characters = append(f.characters, registration{guildID: guildID, userID: userID, characterID: characterID})
	return f.err
}

type fakeBattleNet struct {
	authenticated bool
	characters    []backend.WowCharacter
	err           error
}

func (f *fakeBattleNet) IsAuthenticated(context.Context) (bool, error) {
	return f.authenticated, nil
}

func (f *fakeBattleNet) Characters(context.Context) ([]backend.WowCharacter, error) {
	return f.characters, f.err
}

type flowFakes struct {
	discord   *fakeAuth
	profiles  *fakeProfiles
	selection *fakeSelection
	players   *fakePlayers
	battleNet *fakeBattleNet
}

func newFlowFakes(guilds ...backend.ID) *flowFakes {
	profile := &backend.UserProfile{ID: "7", Username: "funky"}
	for _, id := range guilds {
		profile.Guilds = append(profile.Guilds, backend.GuildRelationship{
			Guild:      backend.Guild{ID: id},
			Permission: backend.PermissionVisible,
		})
	}
	return &flowFakes{
		discord:   &fakeAuth{authenticated: true},
		profiles:  &fakeProfiles{profile: profile},
		selection: &fakeSelection{},
		players:   &fakePlayers{},
		battleNet: &fakeBattleNet{
			authenticated: true,
			characters:    []backend.WowCharacter{{ID: "99", Name: "Funkypewpew", Realm: "Argent Dawn"}},
		},
	}
}

func (f *flowFakes) deps() Dependencies {
	return Dependencies{
		Discord:   f.discord,
		Profiles:  f.profiles,
		Selection: f.selection,
		Players:   f.players,
		BattleNet: f.battleNet,
	}
}
