package wow

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleRegions(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadRegions(httpx.RequestContext(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h handlers) handleRealms(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.loadRealms(httpx.RequestContext(r), mux.Vars(r)["region"])
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, list)
}

func (h handlers) handleCharacterLookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lookup, fields := parseCharacterLookup(map[string]string{
		"region":    query.Get("region"),
		"realm":     query.Get("realm"),
		"character": query.Get("character"),
	})
	if !fields.Empty() {
		_ = httpx.WriteFormErrors(w, "character selection is invalid", fields)
		return
	}
	character, err := h.service.lookupCharacter(httpx.RequestContext(r), lookup)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, character)
}
