package onboarding

import (
	"net/http"

	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
)

type handlers struct {
	service service
}

func newHandlers(s service) handlers {
	return handlers{service: s}
}

func (h handlers) handleStart(w http.ResponseWriter, r *http.Request) {
	ws, err := session.Require(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	snap, err := h.service.start(httpx.RequestContext(r), ws)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, snap)
}

func (h handlers) handleSelectGuild(w http.ResponseWriter, r *http.Request) {
	ws, form, ok := readInput(w, r)
	if !ok {
		return
	}
	snap, fields, err := h.service.selectGuild(httpx.RequestContext(r), ws, form["guild_id"])
	writeSnapshot(w, snap, fields, err)
}

func (h handlers) handleSelectCharacter(w http.ResponseWriter, r *http.Request) {
	ws, form, ok := readInput(w, r)
	if !ok {
		return
	}
	snap, fields, err := h.service.selectCharacter(httpx.RequestContext(r), ws, form["character_id"])
	writeSnapshot(w, snap, fields, err)
}

func (h handlers) handleComplete(w http.ResponseWriter, r *http.Request) {
	ws, err := session.Require(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	snap, err := h.service.complete(httpx.RequestContext(r), ws)
	writeSnapshot(w, snap, nil, err)
}

func readInput(w http.ResponseWriter, r *http.Request) (*session.Workspace, map[string]string, bool) {
	ws, err := session.Require(r)
	if err != nil {
		httpx.WriteError(w, err)
		return nil, nil, false
	}
	form, err := httpx.ReadForm(r)
	if err != nil {
		httpx.WriteError(w, err)
		return nil, nil, false
	}
	return ws, form, true
}

func writeSnapshot(w http.ResponseWriter, snap any, fields httpx.FieldErrors, err error) {
	switch {
	case err != nil:
		httpx.WriteError(w, err)
	case !fields.Empty():
		_ = httpx.WriteFormErrors(w, "onboarding input is invalid", fields)
	default:
		_ = httpx.WriteJSON(w, http.StatusOK, snap)
	}
}
