package landing

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func registerRoutes(router *mux.Router, h handlers) {
	if router == nil {
		return
	}
	router.Handle(routepath.Root, h.root()).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc(routepath.Health, h.handleHealth).Methods(http.MethodGet, http.MethodHead)
}
