// Package web serves the Eighth Wonder browser API.
//
// It keeps one workspace per visitor, proxies authentication to the guild
// backend, and composes the landing, onboarding, guild, event and game data
// modules behind the authentication guard.
package web
