package onboarding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
)

// ErrWrongStep is returned when an input arrives at a step that does not accept it.
var ErrWrongStep = apperrors.E(apperrors.KindInvalidInput, "operation not allowed at the current onboarding step")

// Authenticator checks a provider session.
type Authenticator interface {
	IsAuthenticated(context.Context) (bool, error)
}

// ProfileSource returns the signed-in profile, or nil when signed out.
type ProfileSource interface {
	Profile(context.Context) (*backend.UserProfile, error)
}

// GuildSelection holds the visitor's selected guild.
type GuildSelection interface {
	SelectedGuild() backend.ID
	SelectGuild(backend.ID)
}

// PlayerRegistry associates players and characters with guilds.
type PlayerRegistry interface {
	RegisterPlayer(ctx context.Context, guildID, userID backend.ID) error
	RegisterCharacter(ctx context.Context, guildID, userID, characterID backend.ID) error
}

// CharacterSource checks the Battle.net session and lists its characters.
type CharacterSource interface {
	IsAuthenticated(context.Context) (bool, error)
	Characters(context.Context) ([]backend.WowCharacter, error)
}

// Dependencies are the collaborators of a Flow.
type Dependencies struct {
	Discord   Authenticator
	Profiles  ProfileSource
	Selection GuildSelection
	Players   PlayerRegistry
	BattleNet CharacterSource
}

func (d Dependencies) validate() error {
	switch {
	case d.Discord == nil:
		return errors.New("discord authenticator is required")
	case d.Profiles == nil:
		return errors.New("profile source is required")
	case d.Selection == nil:
		return errors.New("guild selection is required")
	case d.Players == nil:
		return errors.New("player registry is required")
	case d.BattleNet == nil:
		return errors.New("battle.net source is required")
	}
	return nil
}

// Snapshot is the state surfaced to the visitor.
type Snapshot struct {
	Step                Step                        `json:"step"`
	Loading             bool                        `json:"loading"`
	Relationships       []backend.GuildRelationship `json:"relationships,omitempty"`
	SelectedGuildID     backend.ID                  `json:"selected_guild_id,omitempty"`
	Characters          []backend.WowCharacter      `json:"characters,omitempty"`
	SelectedCharacterID backend.ID                  `json:"selected_character_id,omitempty"`
}

// Flow is one visitor's onboarding run.
type Flow struct {
	deps Dependencies
	seq  *Sequencer

	ops sync.Mutex

	mu                sync.Mutex
	profile           *backend.UserProfile
	characters        []backend.WowCharacter
	selectedCharacter backend.ID
}

// NewFlow returns a flow positioned at StepLoading.
func NewFlow(deps Dependencies) (*Flow, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	f := &Flow{deps: deps}
	f.seq = NewSequencer(StepLoading, map[Step]Transition{
		StepLoading:                 {Load: f.loadDiscordAuthentication, Next: StepDiscordAuthentication},
		StepDiscordAuthentication:   {Load: f.loadDiscordAssociation, Next: StepDiscordAssociation},
		StepDiscordAssociation:      {Load: f.loadBattleNetAuthentication, Next: StepBattleNetAuthentication},
		StepBattleNetAuthentication: {Load: f.loadCharacterAssociation, Next: StepCharacterAssociation},
		StepCharacterAssociation:    {Load: f.finalizeCharacterAssociation, Next: StepCompleted},
	})
	return f, nil
}

// Start runs the flow from its current step until it needs the visitor.
func (f *Flow) Start(ctx context.Context) (Snapshot, error) {
	f.ops.Lock()
	defer f.ops.Unlock()
	_, err := f.seq.LoadNextStep(ctx)
	return f.Snapshot(), err
}

// SelectGuild picks the guild to join. Valid at StepDiscordAssociation.
func (f *Flow) SelectGuild(ctx context.Context, guildID backend.ID) (Snapshot, error) {
	f.ops.Lock()
	defer f.ops.Unlock()
	if step := f.seq.Current(); step != StepDiscordAssociation {
		return f.Snapshot(), fmt.Errorf("select guild at %s: %w", step, ErrWrongStep)
	}
	f.mu.Lock()
	_, known := f.profile.Relationship(guildID)
	f.mu.Unlock()
	if !known {
		return f.Snapshot(), apperrors.E(apperrors.KindInvalidInput, "guild is not one of the visitor's guilds")
	}
	f.deps.Selection.SelectGuild(guildID)
	_, err := f.seq.LoadNextStep(ctx)
	return f.Snapshot(), err
}

// SelectCharacter picks the character to register. Valid at StepCharacterAssociation.
func (f *Flow) SelectCharacter(ctx context.Context, characterID backend.ID) (Snapshot, error) {
	f.ops.Lock()
	defer f.ops.Unlock()
	if step := f.seq.Current(); step != StepCharacterAssociation {
		return f.Snapshot(), fmt.Errorf("select character at %s: %w", step, ErrWrongStep)
	}
	f.mu.Lock()
	known := false
	for _, character := range f.characters {
		if !character.ID.Empty() && character.ID == characterID {
			known = true
			break
		}
	}
	if known {
		f.selectedCharacter = characterID
	}
	f.mu.Unlock()
	if !known {
		return f.Snapshot(), apperrors.E(apperrors.KindInvalidInput, "character is not one of the visitor's characters")
	}
	_, err := f.seq.LoadNextStep(ctx)
	return f.Snapshot(), err
}

// Complete finishes onboarding without registering a character. Valid at
// StepCharacterAssociation, including when the account has no characters.
func (f *Flow) Complete(ctx context.Context) (Snapshot, error) {
	f.ops.Lock()
	defer f.ops.Unlock()
	if step := f.seq.Current(); step != StepCharacterAssociation {
		return f.Snapshot(), fmt.Errorf("complete at %s: %w", step, ErrWrongStep)
	}
	f.mu.Lock()
	f.selectedCharacter = ""
	f.mu.Unlock()
	_, err := f.seq.LoadNextStep(ctx)
	return f.Snapshot(), err
}

// Step returns the current step.
func (f *Flow) Step() Step { return f.seq.Current() }

// Snapshot returns the visitor-facing state without waiting for a running load.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := Snapshot{
		Step:                f.seq.Current(),
		Loading:             f.seq.Loading(),
		SelectedCharacterID: f.selectedCharacter,
	}
	if guildChosen(snap.Step) {
		snap.SelectedGuildID = f.deps.Selection.SelectedGuild()
	}
	if f.profile != nil {
		snap.Relationships = append([]backend.GuildRelationship(nil), f.profile.Guilds...)
	}
	if f.characters != nil {
		snap.Characters = append([]backend.WowCharacter(nil), f.characters...)
	}
	return snap
}

// guildChosen reports whether the visitor has passed the guild choice. The
// workspace may hold a default selection before that.
func guildChosen(step Step) bool {
	switch step {
	case StepBattleNetAuthentication, StepCharacterAssociation, StepCompleted:
		return true
	}
	return false
}

func (f *Flow) loadDiscordAuthentication(ctx context.Context) (bool, error) {
	return f.deps.Discord.IsAuthenticated(ctx)
}

func (f *Flow) loadDiscordAssociation(ctx context.Context) (bool, error) {
	profile, err := f.deps.Profiles.Profile(ctx)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	f.profile = profile
	f.mu.Unlock()
	if profile != nil && len(profile.Guilds) == 1 {
		f.deps.Selection.SelectGuild(profile.Guilds[0].Guild.ID)
		return true, nil
	}
	return false, nil
}

func (f *Flow) loadBattleNetAuthentication(ctx context.Context) (bool, error) {
	guildID := f.deps.Selection.SelectedGuild()
	f.mu.Lock()
	var userID backend.ID
	if f.profile != nil {
		userID = f.profile.ID
	}
	f.mu.Unlock()
	if guildID.Empty() || userID.Empty() {
		log.WithFields(log.Fields{
			"guild_id": guildID.String(),
			"user_id":  userID.String(),
		}).Error("onboarding: selected guild or user has no id")
		return false, nil
	}
	if err := f.deps.Players.RegisterPlayer(ctx, guildID, userID); err != nil {
		return false, err
	}
	return f.deps.BattleNet.IsAuthenticated(ctx)
}

func (f *Flow) loadCharacterAssociation(ctx context.Context) (bool, error) {
	characters, err := f.deps.BattleNet.Characters(ctx)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	f.characters = characters
	f.mu.Unlock()
	return false, nil
}

func (f *Flow) finalizeCharacterAssociation(ctx context.Context) (bool, error) {
	guildID := f.deps.Selection.SelectedGuild()
	f.mu.Lock()
	characterID := f.selectedCharacter
	var userID backend.ID
	if f.profile != nil {
		userID = f.profile.ID
	}
	f.mu.Unlock()
	if characterID.Empty() {
		return true, nil
	}
	if guildID.Empty() || userID.Empty() {
		log.WithFields(log.Fields{
			"guild_id":     guildID.String(),
			"user_id":      userID.String(),
			"character_id": characterID.String(),
		}).Error("onboarding: cannot register character without guild and user ids")
		return true, nil
	}
	if err := f.deps.Players.RegisterCharacter(ctx, guildID, userID, characterID); err != nil {
		return false, err
	}
	return true, nil
}
