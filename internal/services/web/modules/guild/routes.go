package guild

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func registerRoutes(router *mux.Router, h handlers) {
	if router == nil {
		return
	}
	router.HandleFunc(routepath.GuildPattern, h.handleProfile).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(routepath.GuildEventsPattern, h.handleCreateEvent).Methods(http.MethodPost)
}
