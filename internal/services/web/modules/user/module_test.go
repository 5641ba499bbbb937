package user

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/sessioncookie"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
)

type fixture struct {
	handler  http.Handler
	ws       *session.Workspace
	gateway  *fakeGateway
	profiles *fakeProfiles
	sessions *fakeSessions
}

func newFixture(t *testing.T, profile *backend.UserProfile) fixture {
	t.Helper()
	profiles := &fakeProfiles{profile: profile}
	registry, err := session.NewRegistry(profiles, time.Hour)
	require.NoError(t, err)
	gateway := &fakeGateway{}
	sessions := &fakeSessions{}
	mount, err := NewWithGateway(gateway, sessions, imagecdn.New("https://cdn.example")).Mount()
	require.NoError(t, err)
	assert.Equal(t, routepath.Profile, mount.Prefix)
	assert.Equal(t, []string{routepath.Logout}, mount.Paths)
	return fixture{handler: mount.Handler, ws: registry.Create(), gateway: gateway, profiles: profiles, sessions: sessions}
}

func (f fixture) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req = req.WithContext(session.WithWorkspace(req.Context(), f.ws))
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)
	return rr
}

func TestModuleID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user", New().ID())
}

func TestHeaderView(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	rr := f.do(http.MethodGet, routepath.Profile, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view HeaderView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	require.NotNil(t, view.User)
	assert.Equal(t, "thrall", view.User.Username)
	assert.Equal(t, "https://cdn.example/avatars/7/a1b2.png", view.User.AvatarURL)
	require.Len(t, view.Guilds, 2)
	assert.Equal(t, "https://cdn.example/icons/42/h0rd3.png", view.Guilds[0].IconURL)
	assert.Equal(t, "https://img.example/a.png", view.Guilds[1].IconURL)
	assert.Equal(t, backend.ID("42"), view.SelectedGuildID)
	assert.True(t, view.Guilds[0].Selected)
	assert.False(t, view.Guilds[1].Selected)
}

func TestHeaderWithoutIconHashOmitsURL(t *testing.T) {
	t.Parallel()

	profile := &backend.UserProfile{ID: "7", Username: "jaina"}
	f := newFixture(t, profile)
	rr := f.do(http.MethodGet, routepath.Profile, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "avatar_url")
}

func TestHeaderForSignedOutVisitor(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	rr := f.do(http.MethodGet, routepath.Profile, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHeaderWithoutSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Profile, nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSelectGuild(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	rr := f.do(http.MethodPost, routepath.ProfileGuild, url.Values{"guild_id": {"43"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var view HeaderView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, backend.ID("43"), view.SelectedGuildID)
	assert.Equal(t, backend.ID("43"), f.ws.SelectedGuild())
	assert.Equal(t, 1, f.profiles.callCount())
}

func TestSelectGuildRejectsForeignOrMissingGuild(t *testing.T) {
	t.Parallel()

	for name, form := range map[string]url.Values{
		"missing": {},
		"foreign": {"guild_id": {"99"}},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t, testProfile())
			rr := f.do(http.MethodPost, routepath.ProfileGuild, form)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), "guild_id")
		})
	}
}

func TestLogout(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	_ = f.do(http.MethodGet, routepath.Profile, nil)

	rr := f.do(http.MethodPost, routepath.Logout, nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, routepath.LogoutRedirect, rr.Header().Get("Location"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), sessioncookie.Name+"=")
	assert.Equal(t, 1, f.gateway.calls)
	assert.Equal(t, []string{f.ws.ID()}, f.sessions.deleted)

	_ = f.do(http.MethodGet, routepath.Profile, nil)
	assert.Equal(t, 2, f.profiles.callCount())
}

func TestLogoutRelaysBackendCookies(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	f.gateway.cookies = []*http.Cookie{{Name: "session", Value: "signed-out", Path: "/", HttpOnly: true}}

	rr := f.do(http.MethodPost, routepath.Logout, nil)
	require.Equal(t, http.StatusFound, rr.Code)

	byName := map[string]*http.Cookie{}
	for _, cookie := range rr.Result().Cookies() {
		byName[cookie.Name] = cookie
	}
	require.Contains(t, byName, "session")
	assert.Equal(t, "signed-out", byName["session"].Value)
	require.Contains(t, byName, sessioncookie.Name)
	assert.Empty(t, byName[sessioncookie.Name].Value)
}

func TestLogoutFailureKeepsSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	f.gateway.err = &backend.StatusError{Status: http.StatusBadGateway}

	rr := f.do(http.MethodPost, routepath.Logout, nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Empty(t, f.sessions.deleted)
}

func TestLogoutRequiresPost(t *testing.T) {
	t.Parallel()

	f := newFixture(t, testProfile())
	rr := f.do(http.MethodGet, routepath.Logout, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestUnconfiguredLogoutIsUnavailable(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount()
	require.NoError(t, err)
	registry, err := session.NewRegistry(&fakeProfiles{}, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, routepath.Logout, nil)
	req = req.WithContext(session.WithWorkspace(req.Context(), registry.Create()))
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
