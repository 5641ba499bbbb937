package wow

import "strings"

const (
	cacheScopeRegions    = "wow_regions"
	cacheScopeRealms     = "wow_realms"
	cacheScopeCharacters = "wow_characters"
)

func regionsCacheKey() string {
	return "wow_regions"
}

func realmsCacheKey(region string) string {
	return "wow_realms:region:" + strings.TrimSpace(region)
}

func characterCacheKey(lookup CharacterLookup) string {
	return "wow_character:region:" + string(lookup.Region) + ":realm:" + lookup.RealmSlug + ":name:" + strings.ToLower(lookup.Name)
}
