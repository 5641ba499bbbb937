package landing

import (
	"net/http"

	"github.com/eighthwonder/eighthwonder/internal/services/web/guard"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
)

type handlers struct {
	service  service
	profiles guard.ProfileResolver
}

func newHandlers(s service, profiles guard.ProfileResolver) handlers {
	return handlers{service: s, profiles: profiles}
}

// root serves the landing view. Signed-in visitors with a guild are sent to
// it first.
func (h handlers) root() http.Handler {
	var index http.Handler = http.HandlerFunc(h.handleIndex)
	if h.profiles != nil {
		index = guard.RedirectToFirstGuild(h.service, h.profiles)(index)
	}
	return refreshProfile(index)
}

// refreshProfile drops the cached profile when the visitor lands with
// ?refresh=1, which logout redirects to.
func refreshProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("refresh") == "1" {
			if ws, ok := session.FromContext(r.Context()); ok {
				ws.ResetProfile()
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadView(httpx.RequestContext(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
