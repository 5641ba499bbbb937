package events

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func registerRoutes(router *mux.Router, h handlers) {
	if router == nil {
		return
	}
	router.HandleFunc(routepath.EventPattern, h.handleEvent).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(routepath.EventNextPattern, h.handleNextEvent).Methods(http.MethodGet, http.MethodHead)
}
