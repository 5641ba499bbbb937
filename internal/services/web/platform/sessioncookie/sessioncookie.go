// Package sessioncookie centralizes the signed visitor session cookie.
//
// The cookie value is an HS256 JWT whose subject is the visitor session id,
// so a forged or expired cookie never resolves to a server-side session.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Name is the canonical web session cookie name.
const Name = "eighth_wonder_session"

const issuer = "eighth-wonder-web"

// ErrInvalid is returned for cookies that fail signature or claim checks.
var ErrInvalid = errors.New("invalid session cookie")

// Codec signs and verifies session tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a codec signing with secret. Tokens expire after ttl.
func NewCodec(secret string, ttl time.Duration) (Codec, error) {
	secret = strings.TrimSpace(secret)
	if len(secret) < 16 {
		return Codec{}, fmt.Errorf("session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return Codec{}, fmt.Errorf("session ttl must be positive")
	}
	return Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token for sessionID.
func (c Codec) Issue(sessionID string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	now := c.clock()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Parse verifies token and returns the session id it carries.
func (c Codec) Parse(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalid)
	}
	return claims.Subject, nil
}

// MaxAge returns the cookie lifetime in seconds.
func (c Codec) MaxAge() int { return int(c.ttl / time.Second) }

func (c Codec) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

// Read returns the verified session id carried by the request cookie.
func Read(r *http.Request, codec Codec) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	sessionID, err := codec.Parse(value)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

// Write sets the session cookie carrying token.
func Write(w http.ResponseWriter, r *http.Request, token string, maxAge int) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// Clear expires the session cookie.
func Clear(w http.ResponseWriter, r *http.Request) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	if r.URL != nil && strings.EqualFold(r.URL.Scheme, "https") {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
