package backend

import "context"

const (
	pathWowCharacters = "/api/wow/me/characters"
	pathWowRegions    = "/api/wow/region/"
)

// WowService reads Battle.net and World of Warcraft data.
type WowService struct {
	client *Client
}

// NewWowService returns a wow service over client.
func NewWowService(client *Client) WowService {
	return WowService{client: client}
}

// IsAuthenticated reports whether the visitor holds a Battle.net session.
func (s WowService) IsAuthenticated(ctx context.Context) (bool, error) {
	var check authCheck
	if err := s.client.Get(ctx, pathBattleNetAuthenticate, &check); err != nil {
		return false, err
	}
	return check.Authenticated, nil
}

// Characters lists the characters of the signed-in Battle.net account.
func (s WowService) Characters(ctx context.Context) ([]WowCharacter, error) {
	var body struct {
		Data []WowCharacter `json:"data"`
	}
	if err := s.client.Get(ctx, pathWowCharacters, &body); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return []WowCharacter{}, nil
	}
	return body.Data, nil
}

// Regions lists the supported regions.
func (s WowService) Regions(ctx context.Context) ([]Region, error) {
	var body struct {
		Regions []Region `json:"regions"`
	}
	if err := s.client.Get(ctx, pathWowRegions, &body); err != nil {
		return nil, err
	}
	if body.Regions == nil {
		return []Region{}, nil
	}
	return body.Regions, nil
}

// Realms lists the realms of region.
func (s WowService) Realms(ctx context.Context, region Region) (RealmList, error) {
	var list RealmList
	if err := s.client.Get(ctx, pathWowRegions+segment(string(region))+"/realm/", &list); err != nil {
		return RealmList{}, err
	}
	if list.Realms == nil {
		list.Realms = []WowRealm{}
	}
	return list, nil
}

// Character looks up one character by realm slug and name.
func (s WowService) Character(ctx context.Context, region Region, realmSlug, name string) (WowCharacter, error) {
	path := pathWowRegions + segment(string(region)) + "/realm/" + segment(realmSlug) + "/character/" + segment(name)
	var character WowCharacter
	if err := s.client.Get(ctx, path, &character); err != nil {
		return WowCharacter{}, err
	}
	return character, nil
}
