package session

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/eighthwonder/eighthwonder/internal/platform/requestctx"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/sessioncookie"
)

type workspaceContextKey struct{}

// WithWorkspace stores ws in ctx.
func WithWorkspace(ctx context.Context, ws *Workspace) context.Context {
	return context.WithValue(ctx, workspaceContextKey{}, ws)
}

// FromContext returns the workspace stored by Middleware.
func FromContext(ctx context.Context) (*Workspace, bool) {
	if ctx == nil {
		return nil, false
	}
	ws, ok := ctx.Value(workspaceContextKey{}).(*Workspace)
	return ws, ok && ws != nil
}

// Require returns the request's workspace or an error when the session
// middleware did not run.
func Require(r *http.Request) (*Workspace, error) {
	if r == nil {
		return nil, apperrors.E(apperrors.KindUnknown, "request is required")
	}
	ws, ok := FromContext(r.Context())
	if !ok {
		return nil, apperrors.E(apperrors.KindUnknown, "visitor session is not attached")
	}
	return ws, nil
}

// Middleware attaches the visitor's workspace to every request, creating one
// and issuing the signed cookie when the request carries no valid session.
// The visitor's other cookies belong to the backend and are forwarded on
// backend calls.
func Middleware(registry *Registry, codec sessioncookie.Codec) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ws *Workspace
			if id, ok := sessioncookie.Read(r, codec); ok {
				ws, _ = registry.Get(id)
			}
			if ws == nil {
				ws = registry.Create()
				token, err := codec.Issue(ws.ID())
				if err != nil {
					log.WithError(err).Error("issue session cookie")
					httpx.WriteError(w, err)
					return
				}
				sessioncookie.Write(w, r, token, codec.MaxAge())
			}

			ctx := WithWorkspace(r.Context(), ws)
			ctx = requestctx.WithSessionID(ctx, ws.ID())
			ctx = requestctx.WithBackendCookies(ctx, backendCookies(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func backendCookies(r *http.Request) []*http.Cookie {
	var cookies []*http.Cookie
	for _, cookie := range r.Cookies() {
		if cookie.Name == sessioncookie.Name {
			continue
		}
		cookies = append(cookies, cookie)
	}
	return cookies
}
