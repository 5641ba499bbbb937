package onboarding

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func registerRoutes(router *mux.Router, h handlers) {
	if router == nil {
		return
	}
	router.HandleFunc(routepath.Onboarding, h.handleStart).Methods(http.MethodGet)
	router.HandleFunc(routepath.OnboardingGuild, h.handleSelectGuild).Methods(http.MethodPost)
	router.HandleFunc(routepath.OnboardingCharacter, h.handleSelectCharacter).Methods(http.MethodPost)
	router.HandleFunc(routepath.OnboardingComplete, h.handleComplete).Methods(http.MethodPost)
}
