package backend

import (
	"context"
	"net/http"
)

const (
	pathUser                  = "/api/user"
	pathDiscordAuthenticated  = "/auth/discord/is_authenticated"
	pathDiscordLogout         = "/auth/discord/logout"
	pathBattleNetAuthenticate = "/auth/bnet/is_authenticated"
)

// authCheck is the body of the provider authentication checks.
type authCheck struct {
	Authenticated bool `json:"authenticated"`
}

// UserService reads the signed-in user's profile and Discord session.
type UserService struct {
	client *Client
}

// NewUserService returns a user service over client.
func NewUserService(client *Client) UserService {
	return UserService{client: client}
}

// Profile fetches the profile. A 401 means nobody is signed in and yields a
// nil profile with no error.
func (s UserService) Profile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := s.client.Get(ctx, pathUser, &profile); err != nil {
		if IsStatus(err, http.StatusUnauthorized) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// IsAuthenticated reports whether the visitor holds a Discord session.
func (s UserService) IsAuthenticated(ctx context.Context) (bool, error) {
	var check authCheck
	if err := s.client.Get(ctx, pathDiscordAuthenticated, &check); err != nil {
		return false, err
	}
	return check.Authenticated, nil
}

// Logout ends the visitor's Discord session on the backend. The backend
// keeps that session in a cookie, so the returned cookies must reach the
// browser.
func (s UserService) Logout(ctx context.Context) ([]*http.Cookie, error) {
	return s.client.Navigate(ctx, pathDiscordLogout)
}
