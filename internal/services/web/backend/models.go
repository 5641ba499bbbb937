package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ID is a backend identifier. The backend emits ids as JSON numbers or
// strings depending on the resource, so both decode into the same form.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// Empty reports whether the id is unset.
func (id ID) Empty() bool { return strings.TrimSpace(string(id)) == "" }

// Timestamp is a server-formatted date string.
type Timestamp string

var timestampLayouts = []string{
	time.RFC1123,
	http.TimeFormat,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
}

// Time parses the timestamp. It reports false for empty or unknown formats.
func (ts Timestamp) Time() (time.Time, bool) {
	raw := strings.TrimSpace(string(ts))
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Permission is the level a user holds over a guild.
type Permission string

const (
	PermissionNone    Permission = "NONE"
	PermissionVisible Permission = "VISIBLE"
	PermissionOwner   Permission = "OWNER"
)

// ParsePermission maps unknown or missing values to PermissionNone.
func ParsePermission(raw string) Permission {
	switch p := Permission(strings.ToUpper(strings.TrimSpace(raw))); p {
	case PermissionVisible, PermissionOwner:
		return p
	default:
		return PermissionNone
	}
}

// UnmarshalJSON decodes any permission, defaulting unknown values to NONE.
func (p *Permission) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = PermissionNone
		return nil
	}
	if raw == nil {
		*p = PermissionNone
		return nil
	}
	*p = ParsePermission(*raw)
	return nil
}

// Repetition is the frequency of a repeating event.
type Repetition string

const (
	RepetitionNone   Repetition = "NOT_REPEATED"
	RepetitionDaily  Repetition = "DAILY"
	RepetitionWeekly Repetition = "WEEKLY"
)

// Valid reports whether r is one of the enumerated frequencies.
func (r Repetition) Valid() bool {
	switch r {
	case RepetitionNone, RepetitionDaily, RepetitionWeekly:
		return true
	}
	return false
}

// UnmarshalJSON rejects frequencies outside the enumeration.
func (r *Repetition) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		*r = ""
		return nil
	}
	value := Repetition(strings.ToUpper(strings.TrimSpace(*raw)))
	if !value.Valid() {
		return fmt.Errorf("unknown event repetition %q", *raw)
	}
	*r = value
	return nil
}

// Timezones the scheduling form accepts.
const (
	TimezoneUTC         = "UTC"
	TimezoneEuropeParis = "Europe/Paris"
)

// Timezones lists the supported timezone names in display order.
var Timezones = []string{TimezoneUTC, TimezoneEuropeParis}

// ValidTimezone reports whether name is a supported timezone.
func ValidTimezone(name string) bool {
	for _, tz := range Timezones {
		if tz == name {
			return true
		}
	}
	return false
}

// Guild is a Discord-linked group with an event calendar.
type Guild struct {
	ID           ID        `json:"id"`
	DateCreated  Timestamp `json:"date_created,omitempty"`
	DateModified Timestamp `json:"date_modified,omitempty"`
	DiscordName  string    `json:"discord_name,omitempty"`
	IconURL      string    `json:"icon_url,omitempty"`
	Icon         string    `json:"icon,omitempty"`
	BotPresent   bool      `json:"bot_present"`
	Events       []Event   `json:"events,omitempty"`
}

// GuildRelationship links a user to a guild with a permission level.
type GuildRelationship struct {
	Guild      Guild      `json:"guild"`
	Permission Permission `json:"permission"`
}

// UserProfile is the signed-in Discord user.
type UserProfile struct {
	ID            ID                  `json:"id"`
	Username      string              `json:"username,omitempty"`
	Discriminator string              `json:"discriminator,omitempty"`
	Avatar        string              `json:"avatar,omitempty"`
	IconURL       string              `json:"icon_url,omitempty"`
	Guilds        []GuildRelationship `json:"guilds"`
}

// UnmarshalJSON drops relationships that do not reference a guild.
func (p *UserProfile) UnmarshalJSON(data []byte) error {
	type rawRelationship struct {
		Guild      *Guild     `json:"guild"`
		Permission Permission `json:"permission"`
	}
	type alias UserProfile
	var raw struct {
		alias
		Guilds []rawRelationship `json:"guilds"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = UserProfile(raw.alias)
	p.Guilds = make([]GuildRelationship, 0, len(raw.Guilds))
	for _, rel := range raw.Guilds {
		if rel.Guild == nil || rel.Guild.ID.Empty() {
			continue
		}
		if rel.Permission == "" {
			rel.Permission = PermissionNone
		}
		p.Guilds = append(p.Guilds, GuildRelationship{Guild: *rel.Guild, Permission: rel.Permission})
	}
	return nil
}

// FirstGuild returns the guild of the first relationship.
func (p *UserProfile) FirstGuild() (Guild, bool) {
	if p == nil || len(p.Guilds) == 0 {
		return Guild{}, false
	}
	return p.Guilds[0].Guild, true
}

// Relationship returns the relationship with guildID.
func (p *UserProfile) Relationship(guildID ID) (GuildRelationship, bool) {
	if p == nil {
		return GuildRelationship{}, false
	}
	for _, rel := range p.Guilds {
		if rel.Guild.ID == guildID {
			return rel, true
		}
	}
	return GuildRelationship{}, false
}

// Event is a scheduled guild activity.
type Event struct {
	ID           ID         `json:"id"`
	DateCreated  Timestamp  `json:"date_created,omitempty"`
	DateModified Timestamp  `json:"date_modified,omitempty"`
	ParentID     ID         `json:"parent_id,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Date         Timestamp  `json:"date,omitempty"`
	TimezoneName string     `json:"timezone_name,omitempty"`
	Repetition   Repetition `json:"repetition,omitempty"`
}

// EventInput is the payload that creates an event.
type EventInput struct {
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Date         string     `json:"date"`
	Repetition   Repetition `json:"repetition"`
	TimezoneName string     `json:"timezone_name,omitempty"`
}

// Region is a Battle.net region.
type Region string

const (
	RegionEU Region = "eu"
	RegionUS Region = "us"
)

// ParseRegion validates a region name.
func ParseRegion(raw string) (Region, bool) {
	switch r := Region(strings.ToLower(strings.TrimSpace(raw))); r {
	case RegionEU, RegionUS:
		return r, true
	}
	return "", false
}

// WowCharacterClass is one of the playable classes.
type WowCharacterClass string

// WowCharacterClasses lists every playable class.
var WowCharacterClasses = []WowCharacterClass{
	"DEATH_KNIGHT", "DEMON_HUNTER", "DRUID", "HUNTER", "MAGE", "MONK",
	"PALADIN", "PRIEST", "ROGUE", "SHAMAN", "WARLOCK", "WARRIOR",
}

// WowRole is a group role.
type WowRole string

const (
	RoleTank   WowRole = "TANK"
	RoleDPS    WowRole = "DPS"
	RoleHealer WowRole = "HEALER"
)

// WowCharacter is a World of Warcraft character.
type WowCharacter struct {
	ID         ID                `json:"id,omitempty"`
	Name       string            `json:"name"`
	Realm      string            `json:"realm"`
	Class      WowCharacterClass `json:"class,omitempty"`
	Role       WowRole           `json:"role,omitempty"`
	Speciality string            `json:"speciality,omitempty"`
	ILvl       int               `json:"ilvl,omitempty"`
	IconURL    string            `json:"icon_url,omitempty"`
}

// WowRealm is a realm of a region.
type WowRealm struct {
	ID           ID     `json:"id,omitempty"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Region       Region `json:"region,omitempty"`
	TimezoneName string `json:"timezone_name,omitempty"`
}

// RealmList is the realm listing of one region.
type RealmList struct {
	Realms []WowRealm `json:"realms"`
	Region Region     `json:"region"`
}
