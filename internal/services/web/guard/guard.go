// Package guard gates routes on the visitor's authentication state.
package guard

import (
	"context"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// Checker reports whether the visitor is signed in.
type Checker interface {
	IsAuthenticated(context.Context) (bool, error)
}

// ProfileResolver returns the visitor's profile, nil when signed out.
type ProfileResolver func(*http.Request) (*backend.UserProfile, error)

// RequireAuthenticated lets signed-in visitors through and redirects everyone
// else to fallback, which defaults to the root path.
func RequireAuthenticated(checker Checker, fallback string) httpx.Middleware {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = routepath.Root
	}
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := checker.IsAuthenticated(r.Context())
			if err != nil {
				log.WithError(err).WithFields(log.Fields{"path": r.URL.Path}).Warn("authentication check failed")
				httpx.WriteError(w, err)
				return
			}
			if !ok {
				httpx.WriteRedirect(w, r, fallback)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RedirectToFirstGuild sends a signed-in visitor to the page of the first
// guild in their profile. Visitors without one continue to next.
func RedirectToFirstGuild(checker Checker, profiles ProfileResolver) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := checker.IsAuthenticated(r.Context())
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			profile, err := profiles(r)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			if guild, found := profile.FirstGuild(); found && !guild.ID.Empty() {
				httpx.WriteRedirect(w, r, routepath.Guild(guild.ID.String()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
