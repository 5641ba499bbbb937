package user

import (
	"net/http"

	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/sessioncookie"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
	"github.com/eighthwonder/eighthwonder/internal/services/web/session"
)

type handlers struct {
	service  service
	sessions SessionEnder
}

func newHandlers(s service, sessions SessionEnder) handlers {
	return handlers{service: s, sessions: sessions}
}

func (h handlers) handleHeader(w http.ResponseWriter, r *http.Request) {
	ws, err := session.Require(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	view, err := h.service.loadHeader(httpx.RequestContext(r), ws)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h handlers) handleSelectGuild(w http.ResponseWriter, r *http.Request) {
	ws, err := session.Require(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	form, err := httpx.ReadForm(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	view, fields, err := h.service.selectGuild(httpx.RequestContext(r), ws, form["guild_id"])
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if !fields.Empty() {
		_ = httpx.WriteFormErrors(w, "guild selection is invalid", fields)
		return
	}
	_ = httpx.WriteJSON(w, http.StatusOK, view)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	ws, err := session.Require(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	backendCookies, err := h.service.logout(httpx.RequestContext(r), ws)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if h.sessions != nil {
		h.sessions.Delete(ws.ID())
	}
	for _, cookie := range backendCookies {
		http.SetCookie(w, cookie)
	}
	sessioncookie.Clear(w, r)
	httpx.WriteRedirect(w, r, routepath.LogoutRedirect)
}
