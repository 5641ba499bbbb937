package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef-secret"

func newTestCodec(t *testing.T) Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)
	return codec
}

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	token, err := codec.Issue("visitor-1")
	require.NoError(t, err)

	sessionID, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "visitor-1", sessionID)
	assert.Equal(t, 3600, codec.MaxAge())
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	other, err := NewCodec("another-secret-value-1234", time.Hour)
	require.NoError(t, err)
	token, err := other.Issue("visitor-1")
	require.NoError(t, err)

	_, err = newTestCodec(t).Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCodecRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := codec.Issue("visitor-1")
	require.NoError(t, err)

	codec.now = time.Now
	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestNewCodecValidatesInput(t *testing.T) {
	t.Parallel()

	_, err := NewCodec("short", time.Hour)
	assert.Error(t, err)
	_, err = NewCodec(testSecret, 0)
	assert.Error(t, err)
	_, err = newTestCodec(t).Issue(" ")
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t)
	_, ok := Read(nil, codec)
	assert.False(t, ok)

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	_, ok = Read(req, codec)
	assert.False(t, ok)

	req.AddCookie(&http.Cookie{Name: Name, Value: "not-a-jwt"})
	_, ok = Read(req, codec)
	assert.False(t, ok)

	token, err := codec.Issue("visitor-2")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: token})
	sessionID, ok := Read(req, codec)
	assert.True(t, ok)
	assert.Equal(t, "visitor-2", sessionID)
}

func TestWriteAndClear(t *testing.T) {
	t.Parallel()

	secure := httptest.NewRecorder()
	Write(secure, httptest.NewRequest(http.MethodGet, "https://app.example.test", nil), "tok", 60)
	cookie, err := http.ParseSetCookie(secure.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	assert.Equal(t, Name, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 60, cookie.MaxAge)

	proxied := httptest.NewRequest(http.MethodGet, "http://app.example.test", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	assert.True(t, isHTTPS(proxied))

	plain := httptest.NewRecorder()
	Clear(plain, httptest.NewRequest(http.MethodGet, "http://app.example.test", nil))
	cleared, err := http.ParseSetCookie(plain.Header().Get("Set-Cookie"))
	require.NoError(t, err)
	assert.False(t, cleared.Secure)
	assert.Equal(t, -1, cleared.MaxAge)

	Write(nil, nil, "ignored", 0)
	Clear(nil, nil)
}
