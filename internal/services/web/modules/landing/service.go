package landing

import (
	"context"

	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// AuthGateway reports whether the visitor holds a Discord session.
type AuthGateway interface {
	IsAuthenticated(context.Context) (bool, error)
}

// View is the landing page payload.
type View struct {
	Authenticated bool   `json:"authenticated"`
	LoginURL      string `json:"login_url"`
}

type service struct {
	gateway AuthGateway
}

type unavailableGateway struct{}

func (unavailableGateway) IsAuthenticated(context.Context) (bool, error) {
	return false, apperrors.E(apperrors.KindUnavailable, "authentication backend is not configured")
}

func newService(gateway AuthGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) IsAuthenticated(ctx context.Context) (bool, error) {
	return s.gateway.IsAuthenticated(ctx)
}

func (s service) loadView(ctx context.Context) (View, error) {
	authenticated, err := s.gateway.IsAuthenticated(ctx)
	if err != nil {
		return View{}, err
	}
	return View{Authenticated: authenticated, LoginURL: routepath.DiscordLogin}, nil
}
