package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/sessioncookie"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeBackend struct {
	authenticated atomic.Bool
	profileCalls  atomic.Int32
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/auth/discord/is_authenticated":
		if f.authenticated.Load() {
			_, _ = w.Write([]byte(`{"authenticated":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"authenticated":false}`))
	case "/api/user":
		f.profileCalls.Add(1)
		if !f.authenticated.Load() {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"1","username":"ana","guilds":[{"guild":{"id":"7","discord_name":"Wonder"},"permission":"OWNER"}]}`))
	default:
		http.NotFound(w, r)
	}
}

func newTestServer(t *testing.T, config Config) (*Server, *fakeBackend) {
	t.Helper()

	fake := &fakeBackend{}
	backend := httptest.NewServer(fake)
	t.Cleanup(backend.Close)

	if config.HTTPAddr == "" {
		config.HTTPAddr = "127.0.0.1:0"
	}
	config.BackendURL = backend.URL
	if config.SessionSecret == "" {
		config.SessionSecret = testSecret
	}
	server, err := NewServer(context.Background(), config)
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return server, fake
}

func TestNewServerRequiresHTTPAddr(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{BackendURL: "http://localhost:5000", SessionSecret: testSecret})
	require.Error(t, err)
}

func TestNewServerRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{
		HTTPAddr:      "127.0.0.1:0",
		BackendURL:    "http://localhost:5000",
		SessionSecret: "short",
	})
	require.Error(t, err)
}

func TestNewServerRejectsRelativeBackendURL(t *testing.T) {
	t.Parallel()

	_, err := NewServer(context.Background(), Config{
		HTTPAddr:      "127.0.0.1:0",
		BackendURL:    "/api",
		SessionSecret: testSecret,
	})
	require.Error(t, err)
}

func TestServerHealthIssuesSessionCookie(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, Config{})
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/up", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessioncookie.Name {
			found = true
			assert.True(t, cookie.HttpOnly)
		}
	}
	assert.True(t, found, "session cookie not issued")
}

func TestServerLandingForAnonymousVisitor(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, Config{})
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"authenticated":false,"login_url":"/auth/discord/oauth"}`, rec.Body.String())
}

func TestServerProtectedRouteRedirectsAnonymousVisitor(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, Config{})
	for _, path := range []string{"/profile", "/guild/7", "/events/3", "/wow/regions"} {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestServerLandingRedirectsToFirstGuild(t *testing.T) {
	t.Parallel()

	server, fake := newTestServer(t, Config{})
	fake.authenticated.Store(true)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/guild/7", rec.Header().Get("Location"))
}

func TestServerReusesWorkspaceProfileAcrossRequests(t *testing.T) {
	t.Parallel()

	server, fake := newTestServer(t, Config{})
	fake.authenticated.Store(true)

	first := httptest.NewRecorder()
	server.Handler().ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRequest(http.MethodGet, "/profile", nil)
	for _, cookie := range first.Result().Cookies() {
		second.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, second)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ana"`)
	assert.Equal(t, int32(1), fake.profileCalls.Load())
}

func TestServerOpensSQLiteCache(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, Config{CachePath: filepath.Join(t.TempDir(), "cache.db")})
	_, ok := server.store.(expiryPurger)
	assert.True(t, ok)
}

func TestServerWithoutCacheStore(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, Config{})
	assert.Nil(t, server.store)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()
	cancel()
	require.NoError(t, <-done)
}

func TestNilServer(t *testing.T) {
	t.Parallel()

	var server *Server
	require.Error(t, server.ListenAndServe(context.Background()))
	server.Close()
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
