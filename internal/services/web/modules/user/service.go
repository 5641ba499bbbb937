package user

import (
	"context"
	"net/http"
	"strings"

	"github.com/eighthwonder/eighthwonder/internal/platform/assets/imagecdn"
	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

// AccountGateway ends the backend's Discord session and returns the cookies
// that record it.
type AccountGateway interface {
	Logout(context.Context) ([]*http.Cookie, error)
}

// SessionEnder forgets a visitor session.
type SessionEnder interface {
	Delete(id string)
}

// Workspace is the per-visitor state the module reads and updates.
type Workspace interface {
	ID() string
	Profile(context.Context) (*backend.UserProfile, error)
	ResetProfile()
	SelectedGuild() backend.ID
	SelectGuild(backend.ID)
}

// HeaderView is the signed-in header payload.
type HeaderView struct {
	User            *UserView   `json:"user"`
	Guilds          []GuildView `json:"guilds"`
	SelectedGuildID backend.ID  `json:"selected_guild_id,omitempty"`
}

// UserView is the visitor's identity with a resolved avatar.
type UserView struct {
	ID            backend.ID `json:"id"`
	Username      string     `json:"username"`
	Discriminator string     `json:"discriminator,omitempty"`
	AvatarURL     string     `json:"avatar_url,omitempty"`
}

// GuildView is one guild relationship with a resolved icon.
type GuildView struct {
	ID         backend.ID         `json:"id"`
	Name       string             `json:"name"`
	IconURL    string             `json:"icon_url,omitempty"`
	Permission backend.Permission `json:"permission"`
	BotPresent bool               `json:"bot_present"`
	Selected   bool               `json:"selected"`
}

type service struct {
	gateway AccountGateway
	cdn     imagecdn.CDN
}

type unavailableGateway struct{}

func (unavailableGateway) Logout(context.Context) ([]*http.Cookie, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "account backend is not configured")
}

func newService(gateway AccountGateway, cdn imagecdn.CDN) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, cdn: cdn}
}

func (s service) loadHeader(ctx context.Context, ws Workspace) (HeaderView, error) {
	profile, err := ws.Profile(ctx)
	if err != nil {
		return HeaderView{}, err
	}
	if profile == nil {
		return HeaderView{}, apperrors.E(apperrors.KindUnauthorized, "sign in with Discord first")
	}
	selected := ws.SelectedGuild()
	view := HeaderView{
		User: &UserView{
			ID:            profile.ID,
			Username:      profile.Username,
			Discriminator: profile.Discriminator,
			AvatarURL:     s.iconURL(profile.IconURL, imagecdn.TypeAvatars, profile.ID, profile.Avatar),
		},
		Guilds:          make([]GuildView, 0, len(profile.Guilds)),
		SelectedGuildID: selected,
	}
	for _, rel := range profile.Guilds {
		view.Guilds = append(view.Guilds, GuildView{
			ID:         rel.Guild.ID,
			Name:       rel.Guild.DiscordName,
			IconURL:    s.iconURL(rel.Guild.IconURL, imagecdn.TypeIcons, rel.Guild.ID, rel.Guild.Icon),
			Permission: rel.Permission,
			BotPresent: rel.Guild.BotPresent,
			Selected:   rel.Guild.ID == selected,
		})
	}
	return view, nil
}

// selectGuild switches the selected guild. Only the visitor's own guilds can
// be selected.
func (s service) selectGuild(ctx context.Context, ws Workspace, rawGuildID string) (HeaderView, httpx.FieldErrors, error) {
	guildID := backend.ID(strings.TrimSpace(rawGuildID))
	fields := httpx.FieldErrors{}
	if guildID.Empty() {
		fields.Add("guild_id", "guild is required")
		return HeaderView{}, fields, nil
	}
	profile, err := ws.Profile(ctx)
	if err != nil {
		return HeaderView{}, nil, err
	}
	if profile == nil {
		return HeaderView{}, nil, apperrors.E(apperrors.KindUnauthorized, "sign in with Discord first")
	}
	if _, ok := profile.Relationship(guildID); !ok {
		fields.Add("guild_id", "guild is not one of your guilds")
		return HeaderView{}, fields, nil
	}
	ws.SelectGuild(guildID)
	view, err := s.loadHeader(ctx, ws)
	return view, nil, err
}

func (s service) logout(ctx context.Context, ws Workspace) ([]*http.Cookie, error) {
	cookies, err := s.gateway.Logout(ctx)
	if err != nil {
		return nil, err
	}
	ws.ResetProfile()
	return cookies, nil
}

// iconURL prefers the URL the backend resolved and falls back to the CDN.
func (s service) iconURL(resolved, imageType string, id backend.ID, hash string) string {
	if resolved = strings.TrimSpace(resolved); resolved != "" {
		return resolved
	}
	url, _ := s.cdn.IconURL(imageType, id.String(), hash)
	return url
}
