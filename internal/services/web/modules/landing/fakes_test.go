package landing

import (
	"context"
	"net/http"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeGateway struct {
	authenticated bool
	err           error
	calls         int
}

func (f *fakeGateway) IsAuthenticated(context.Context) (bool, error) {
	f.calls++
	return f.authenticated, f.err
}

type fakeProfiles struct {
	profile *backend.UserProfile
	calls   int
}

func (f *fakeProfiles) resolve(*http.Request) (*backend.UserProfile, error) {
	f.calls++
	return f.profile, nil
}
