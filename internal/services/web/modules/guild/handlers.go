package guild

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	var profile *backend.UserProfile
	if ws, ok := session.FromContext(ctx); ok {
		loaded, err := ws.Profile(ctx)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		profile = loaded
	}
	view, err := h.service.loadProfile(ctx, guildID(r), profile)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h handlers) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	form, err := httpx.ReadForm(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	input, fields := parseEventForm(form)
	if !fields.Empty() {
		_ = httpx.WriteFormErrors(w, "event is invalid", fields)
		return
	}
	row, err := h.service.createEvent(httpx.RequestContext(r), guildID(r), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusCreated, row)
}

func guildID(r *http.Request) backend.ID {
	return backend.ID(mux.Vars(r)["guildID"])
}
