package guild

import (
	"context"
	"strings"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
)

// GuildGateway reads guilds and schedules their events.
type GuildGateway interface {
	Guild(ctx context.Context, guildID backend.ID) (backend.Guild, error)
	CreateEvent(ctx context.Context, guildID backend.ID, input backend.EventInput) (backend.Event, error)
}

// ProfileView is the guild page payload.
type ProfileView struct {
	ID              backend.ID         `json:"id"`
	Name            string             `json:"name"`
	IconURL         string             `json:"icon_url,omitempty"`
	BotPresent      bool               `json:"bot_present"`
	Permission      backend.Permission `json:"permission"`
	CanCreateEvents bool               `json:"can_create_events"`
	Events          []EventRow         `json:"events"`
	Repetitions     []string           `json:"repetitions"`
	Timezones       []string           `json:"timezones"`
}

type service struct {
	gateway GuildGateway
	cdn     imagecdn.CDN
}

type unavailableGateway struct{}

func (unavailableGateway) Guild(context.Context, backend.ID) (backend.Guild, error) {
	return backend.Guild{}, apperrors.E(apperrors.KindUnavailable, "guild backend is not configured")
}

func (unavailableGateway) CreateEvent(context.Context, backend.ID, backend.EventInput) (backend.Event, error) {
	return backend.Event{}, apperrors.E(apperrors.KindUnavailable, "guild backend is not configured")
}

func newService(gateway GuildGateway, cdn imagecdn.CDN) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, cdn: cdn}
}

// loadProfile reads the guild and maps it for display. The visitor's
// permission comes from their own profile, so visitors outside the guild
// see it as NONE.
func (s service) loadProfile(ctx context.Context, guildID backend.ID, profile *backend.UserProfile) (ProfileView, error) {
	if guildID.Empty() {
		return ProfileView{}, apperrors.E(apperrors.KindInvalidInput, "guild id is required")
	}
	guild, err := s.gateway.Guild(ctx, guildID)
	if err != nil {
		return ProfileView{}, err
	}

	permission := backend.PermissionNone
	if rel, ok := profile.Relationship(guild.ID); ok {
		permission = rel.Permission
	}
	view := ProfileView{
		ID:              guild.ID,
		Name:            guild.DiscordName,
		IconURL:         s.iconURL(guild),
		BotPresent:      guild.BotPresent,
		Permission:      permission,
		CanCreateEvents: permission == backend.PermissionOwner,
		Events:          mapEventRows(guild.Events),
		Repetitions:     repetitionOptions(),
		Timezones:       backend.Timezones,
	}
	return view, nil
}

func (s service) createEvent(ctx context.Context, guildID backend.ID, input backend.EventInput) (EventRow, error) {
	if guildID.Empty() {
		return EventRow{}, apperrors.E(apperrors.KindInvalidInput, "guild id is required")
	}
	event, err := s.gateway.CreateEvent(ctx, guildID, input)
	if err != nil {
		return EventRow{}, err
	}
	return mapEventRow(event), nil
}

func (s service) iconURL(guild backend.Guild) string {
	if resolved := strings.TrimSpace(guild.IconURL); resolved != "" {
		return resolved
	}
	url, _ := s.cdn.IconURL(imagecdn.TypeIcons, guild.ID.String(), guild.Icon)
	return url
}

func repetitionOptions() []string {
	return []string{
		string(backend.RepetitionNone),
		string(backend.RepetitionDaily),
		string(backend.RepetitionWeekly),
	}
}
