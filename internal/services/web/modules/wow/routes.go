package wow

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func registerRoutes(router *mux.Router, h handlers) {
	if router == nil {
		return
	}
	router.HandleFunc(routepath.WowRegions, h.handleRegions).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(routepath.WowRealmsPattern, h.handleRealms).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(routepath.WowCharacterLookup, h.handleCharacterLookup).Methods(http.MethodGet, http.MethodHead)
}
