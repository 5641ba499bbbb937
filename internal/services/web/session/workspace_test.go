package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/onboarding"
)

func TestWorkspaceProfileIsCachedUntilReset(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{profile: profileWithGuilds("1")}
	ws := newWorkspace("s1", fetcher, time.Now())

	for i := 0; i < 3; i++ {
		_, err := ws.Profile(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, fetcher.callCount())

	ws.ResetProfile()
	_, err := ws.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestWorkspaceKeepsExactlyOneSelectedGuild(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{profile: profileWithGuilds("1", "2")}
	ws := newWorkspace("s1", fetcher, time.Now())

	_, err := ws.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backend.ID("1"), ws.SelectedGuild())

	ws.SelectGuild("2")
	_, err = ws.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backend.ID("2"), ws.SelectedGuild())

	fetcher.set(profileWithGuilds("3"))
	ws.ResetProfile()
	_, err = ws.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backend.ID("3"), ws.SelectedGuild())

	fetcher.set(nil)
	ws.ResetProfile()
	profile, err := ws.Profile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.True(t, ws.SelectedGuild().Empty())
}

func TestWorkspaceOnboardingSlot(t *testing.T) {
	t.Parallel()

	ws := newWorkspace("s1", &fakeFetcher{}, time.Now())
	_, ok := ws.Onboarding()
	assert.False(t, ok)

	flow, err := onboarding.NewFlow(onboarding.Dependencies{
		Discord:   stubAuth{},
		Profiles:  ws,
		Selection: ws,
		Players:   stubPlayers{},
		BattleNet: stubBattleNet{},
	})
	require.NoError(t, err)
	ws.SetOnboarding(flow)
	got, ok := ws.Onboarding()
	assert.True(t, ok)
	assert.Same(t, flow, got)
}

type stubAuth struct{}

func (stubAuth) IsAuthenticated(context.Context) (bool, error) { return false, nil }

type stubPlayers struct{}

func (stubPlayers) RegisterPlayer(context.Context, backend.ID, backend.ID) error { return nil }
func (stubPlayers) RegisterCharacter(context.Context, backend.ID, backend.ID, backend.ID) error {
	return nil
}

type stubBattleNet struct{}

func (stubBattleNet) IsAuthenticated(context.Context) (bool, error) { return false, nil }
func (stubBattleNet) Characters(context.Context) ([]backend.WowCharacter, error) {
	return nil, nil
}
