package events

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleEvent(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadEvent(httpx.RequestContext(r), eventID(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h handlers) handleNextEvent(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.loadNextEvent(httpx.RequestContext(r), eventID(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func eventID(r *http.Request) backend.ID {
	return backend.ID(mux.Vars(r)["eventID"])
}
