package wow

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

const (
	characterMinLength = 3
	characterMaxLength = 12
)

// CharacterLookup is a validated character selection.
type CharacterLookup struct {
	Region    backend.Region
	RealmSlug string
	Name      string
}

// parseCharacterLookup validates the character selection form and
// normalizes the realm to its slug and the name to title case.
func parseCharacterLookup(form map[string]string) (CharacterLookup, httpx.FieldErrors) {
	fields := httpx.FieldErrors{}
	var lookup CharacterLookup

	rawRegion := strings.TrimSpace(form["region"])
	if rawRegion == "" {
		fields.Add("region", "region is required")
	} else if region, ok := backend.ParseRegion(rawRegion); ok {
		lookup.Region = region
	} else {
		fields.Add("region", "region must be eu or us")
	}

	if realm := strings.TrimSpace(form["realm"]); realm == "" {
		fields.Add("realm", "realm is required")
	} else {
		lookup.RealmSlug = realmSlug(realm)
	}

	name := strings.TrimSpace(form["character"])
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		fields.Add("character", "character is required")
	case n < characterMinLength || n > characterMaxLength:
		fields.Add("character", "character must be between 3 and 12 characters")
	default:
		lookup.Name = cases.Title(language.Und).String(name)
	}

	return lookup, fields
}

func realmSlug(realm string) string {
	return strings.Join(strings.Fields(strings.ToLower(realm)), "-")
}
