// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root                = "/"
	Health              = "/up"
	AuthPrefix          = "/auth/"
	DiscordLogin        = "/auth/discord/oauth"
	Profile             = "/profile"
	ProfileGuild        = "/profile/guild"
	Logout              = "/logout"
	LogoutRedirect      = "/?refresh=1"
	GuildPrefix         = "/guild/"
	GuildPattern        = GuildPrefix + "{guildID}"
	GuildEventsPattern  = GuildPrefix + "{guildID}/events"
	EventsPrefix        = "/events/"
	EventPattern        = EventsPrefix + "{eventID}"
	EventNextPattern    = EventsPrefix + "{eventID}/next"
	WowPrefix           = "/wow/"
	WowRegions          = "/wow/regions"
	WowRealmsPattern    = "/wow/regions/{region}/realms"
	WowCharacterLookup  = "/wow/characters/lookup"
	Onboarding          = "/onboarding"
	OnboardingGuild     = "/onboarding/guild"
	OnboardingCharacter = "/onboarding/character"
	OnboardingComplete  = "/onboarding/complete"
)

// Guild returns the guild profile route.
func Guild(guildID string) string {
	return GuildPrefix + escapeSegment(guildID)
}

// GuildEvents returns the guild event creation route.
func GuildEvents(guildID string) string {
	return Guild(guildID) + "/events"
}

// Event returns the event detail route.
func Event(eventID string) string {
	return EventsPrefix + escapeSegment(eventID)
}

// EventNext returns the next-occurrence route of a repeating event.
func EventNext(eventID string) string {
	return Event(eventID) + "/next"
}

// WowRealms returns the realm listing route of a region.
func WowRealms(region string) string {
	return "/wow/regions/" + escapeSegment(region) + "/realms"
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
