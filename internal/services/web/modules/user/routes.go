package user

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func registerRoutes(router *mux.Router, h handlers) {
	if router == nil {
		return
	}
	router.HandleFunc(routepath.Profile, h.handleHeader).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(routepath.ProfileGuild, h.handleSelectGuild).Methods(http.MethodPost)
	router.HandleFunc(routepath.Logout, h.handleLogout).Methods(http.MethodPost)
}
