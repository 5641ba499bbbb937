// Package session keeps per-visitor server-side state: the cached profile,
// the selected guild and the onboarding run.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/cachedendpoint"
	"github.com/eighthwonder/eighthwonder/internal/services/web/onboarding"
)

// ProfileFetcher loads the signed-in profile from the backend.
type ProfileFetcher interface {
	Profile(context.Context) (*backend.UserProfile, error)
}

// Workspace is one visitor's state.
type Workspace struct {
	id      string
	profile *cachedendpoint.Endpoint[*backend.UserProfile]

	mu            sync.Mutex
	selectedGuild backend.ID
	flow          *onboarding.Flow
	lastSeen      time.Time
}

func newWorkspace(id string, fetcher ProfileFetcher, now time.Time) *Workspace {
	return &Workspace{
		id:       id,
		profile:  cachedendpoint.New(fetcher.Profile),
		lastSeen: now,
	}
}

// ID returns the session identifier.
func (w *Workspace) ID() string { return w.id }

// Profile returns the cached profile, fetching it once per reset. Loading a
// profile keeps exactly one guild selected: the previous selection when the
// profile still has it, otherwise the first relationship, or none when the
// profile has no guilds.
func (w *Workspace) Profile(ctx context.Context) (*backend.UserProfile, error) {
	profile, err := w.profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := profile.Relationship(w.selectedGuild); !ok {
		w.selectedGuild = ""
		if first, ok := profile.FirstGuild(); ok {
			w.selectedGuild = first.ID
		}
	}
	return profile, nil
}

// ResetProfile drops the cached profile. The next Profile call refetches.
func (w *Workspace) ResetProfile() {
	w.profile.Reset()
}

// SelectedGuild returns the selected guild id.
func (w *Workspace) SelectedGuild() backend.ID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedGuild
}

// SelectGuild replaces the selected guild.
func (w *Workspace) SelectGuild(guildID backend.ID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selectedGuild = guildID
}

// Onboarding returns the visitor's onboarding run, if one was started.
func (w *Workspace) Onboarding() (*onboarding.Flow, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flow, w.flow != nil
}

// SetOnboarding replaces the visitor's onboarding run.
func (w *Workspace) SetOnboarding(flow *onboarding.Flow) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.flow = flow
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastSeen = now
}

func (w *Workspace) idleSince() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}
