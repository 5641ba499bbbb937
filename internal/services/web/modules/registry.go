package modules

import (
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/authproxy"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/events"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/guild"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/landing"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/onboarding"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/user"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/wow"
)

// DefaultPublicModules returns the modules reachable without signing in.
// Onboarding is public because its first step is the sign-in check.
func DefaultPublicModules(deps Dependencies) []Module {
	return []Module{
		landing.NewWithGateway(deps.Users, deps.Profiles),
		authproxy.New(deps.BackendURL, deps.BackendTransport),
		onboarding.NewWithGateways(onboarding.Gateways{
			Discord:   deps.Users,
			Players:   deps.Guilds,
			BattleNet: deps.Wow,
		}),
	}
}

// DefaultProtectedModules returns the modules that require a Discord
// session. Modules whose client is missing answer 503.
func DefaultProtectedModules(deps Dependencies) []Module {
	return []Module{
		user.NewWithGateway(deps.Users, deps.Sessions, deps.CDN),
		guild.NewWithGateway(deps.Guilds, deps.CDN),
		events.NewWithGateway(deps.Events),
		wow.NewWithGateway(deps.Wow, deps.Cache, deps.CacheTTLs),
	}
}
