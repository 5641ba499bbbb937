// Package modules defines web module registry helpers.
package modules

import (
	"net/http"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	"github.com/eighthwonder/eighthwonder/internal/services/web/guard"
	module "github.com/eighthwonder/eighthwonder/internal/services/web/module"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/events"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/guild"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/landing"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/user"
	"github.com/eighthwonder/eighthwonder/internal/services/web/modules/wow"
	flow "github.com/eighthwonder/eighthwonder/internal/services/web/onboarding"
	"github.com/eighthwonder/eighthwonder/internal/services/web/storage"
)

// Mount aliases the module mount contract.
type Mount = module.Mount

// Module aliases the module interface contract.
type Module = module.Module

// UserClient is the Discord account surface the landing, user and
// onboarding modules share.
type UserClient interface {
	landing.AuthGateway
	user.AccountGateway
}

// GuildClient reads guilds and registers players.
type GuildClient interface {
	guild.GuildGateway
	flow.PlayerRegistry
}

// WowClient reads game data and the visitor's Battle.net characters.
type WowClient interface {
	wow.WowGateway
	flow.CharacterSource
}

// Dependencies carries the backend clients and shared infrastructure needed
// to compose the module registry. Each client is typed as the narrow
// interface its consumers declare.
type Dependencies struct {
	BackendURL       string
	BackendTransport http.RoundTripper
	CDN              imagecdn.CDN

	Users  UserClient
	Guilds GuildClient
	Events events.EventGateway
	Wow    WowClient

	Cache     *storage.Cache
	CacheTTLs wow.CacheTTLs

	// Sessions forgets visitor sessions on logout.
	Sessions user.SessionEnder
	// Profiles resolves the visitor's cached profile.
	Profiles guard.ProfileResolver
}
