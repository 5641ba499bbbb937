package backend

import "context"

// GuildService reads guilds and manages their events and players.
type GuildService struct {
	client *Client
}

// NewGuildService returns a guild service over client.
func NewGuildService(client *Client) GuildService {
	return GuildService{client: client}
}

func guildPath(guildID ID) string {
	return "/api/guilds/" + segment(guildID.String())
}

// Guild fetches one guild with its events.
func (s GuildService) Guild(ctx context.Context, guildID ID) (Guild, error) {
	var guild Guild
	if err := s.client.Get(ctx, guildPath(guildID), &guild); err != nil {
		return Guild{}, err
	}
	return guild, nil
}

// CreateEvent schedules an event in the guild.
func (s GuildService) CreateEvent(ctx context.Context, guildID ID, input EventInput) (Event, error) {
	var event Event
	if err := s.client.Put(ctx, guildPath(guildID)+"/events", input, &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// RegisterPlayer associates the user with the guild.
func (s GuildService) RegisterPlayer(ctx context.Context, guildID, userID ID) error {
	return s.client.Put(ctx, guildPath(guildID)+"/players/"+segment(userID.String()), nil, nil)
}

// RegisterCharacter associates one of the user's characters with the guild.
func (s GuildService) RegisterCharacter(ctx context.Context, guildID, userID, characterID ID) error {
	path := guildPath(guildID) + "/players/" + segment(userID.String()) + "/characters/" + segment(characterID.String())
	return s.client.Put(ctx, path, nil, nil)
}
