package guild

import (
	"context"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeGateway struct {
	guild       backend.Guild
	err         error
	created     backend.Event
	createErr   error
	createCalls int
	lastInput   backend.EventInput
	lastGuildID backend.ID
}

func (f *fakeGateway) Guild(_ context.Context, guildID backend.ID) (backend.Guild, error) {
	f.lastGuildID = guildID
	return f.guild, f.err
}

func (f *fakeGateway) CreateEvent(_ context.Context, guildID backend.ID, input backend.EventInput) (backend.Event, error) {
	f.createCalls++
	f.lastGuildID = guildID
	f.lastInput = input
	return f.created, f.createErr
}

type fakeProfiles struct {
	profile *backend.UserProfile
}

func (f fakeProfiles) Profile(context.Context) (*backend.UserProfile, error) {
	return f.profile, nil
}
