package onboarding

import (
	"context"
	"strings"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	flow "github.com/eighthwonder/eighthwonder/internal/services/web/onboarding"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

// Gateways are the backend collaborators shared by every visitor's flow.
type Gateways struct {
	Discord   flow.Authenticator
	Players   flow.PlayerRegistry
	BattleNet flow.CharacterSource
}

// Workspace is the per-visitor state a flow reads and updates.
type Workspace interface {
	flow.ProfileSource
	flow.GuildSelection
	Onboarding() (*flow.Flow, bool)
	SetOnboarding(*flow.Flow)
}

type service struct {
	gateways Gateways
}

type unavailableGateway struct{}

func (unavailableGateway) IsAuthenticated(context.Context) (bool, error) {
	return false, errUnavailable
}

func (unavailableGateway) RegisterPlayer(context.Context, backend.ID, backend.ID) error {
	return errUnavailable
}

func (unavailableGateway) RegisterCharacter(context.Context, backend.ID, backend.ID, backend.ID) error {
	return errUnavailable
}

func (unavailableGateway) Characters(context.Context) ([]backend.WowCharacter, error) {
	return nil, errUnavailable
}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "onboarding backend is not configured")

func newService(gateways Gateways) service {
	if gateways.Discord == nil {
		gateways.Discord = unavailableGateway{}
	}
	if gateways.Players == nil {
		gateways.Players = unavailableGateway{}
	}
	if gateways.BattleNet == nil {
		gateways.BattleNet = unavailableGateway{}
	}
	return service{gateways: gateways}
}

// start replaces the visitor's flow with a fresh one and runs it until it
// needs input.
func (s service) start(ctx context.Context, ws Workspace) (flow.Snapshot, error) {
	f, err := flow.NewFlow(flow.Dependencies{
		Discord:   s.gateways.Discord,
		Profiles:  ws,
		Selection: ws,
		Players:   s.gateways.Players,
		BattleNet: s.gateways.BattleNet,
	})
	if err != nil {
		return flow.Snapshot{}, err
	}
	ws.SetOnboarding(f)
	return f.Start(ctx)
}

func (s service) selectGuild(ctx context.Context, ws Workspace, rawGuildID string) (flow.Snapshot, httpx.FieldErrors, error) {
	f, err := current(ws)
	if err != nil {
		return flow.Snapshot{}, nil, err
	}
	guildID := backend.ID(strings.TrimSpace(rawGuildID))
	if guildID.Empty() {
		fields := httpx.FieldErrors{}
		fields.Add("guild_id", "guild is required")
		return f.Snapshot(), fields, nil
	}
	snap, err := f.SelectGuild(ctx, guildID)
	return snap, nil, err
}

func (s service) selectCharacter(ctx context.Context, ws Workspace, rawCharacterID string) (flow.Snapshot, httpx.FieldErrors, error) {
	f, err := current(ws)
	if err != nil {
		return flow.Snapshot{}, nil, err
	}
	characterID := backend.ID(strings.TrimSpace(rawCharacterID))
	if characterID.Empty() {
		fields := httpx.FieldErrors{}
		fields.Add("character_id", "character is required")
		return f.Snapshot(), fields, nil
	}
	snap, err := f.SelectCharacter(ctx, characterID)
	return snap, nil, err
}

// complete finishes the flow without a character, for accounts with none
// or visitors who skip the choice.
func (s service) complete(ctx context.Context, ws Workspace) (flow.Snapshot, error) {
	f, err := current(ws)
	if err != nil {
		return flow.Snapshot{}, err
	}
	return f.Complete(ctx)
}

func current(ws Workspace) (*flow.Flow, error) {
	f, ok := ws.Onboarding()
	if !ok {
		return nil, apperrors.E(apperrors.KindInvalidInput, "onboarding has not started")
	}
	return f, nil
}
