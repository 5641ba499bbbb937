package wow

import (
	"context"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/storage"
)

// WowGateway reads game data from the backend.
type WowGateway interface {
	Regions(ctx context.Context) ([]backend.Region, error)
	Realms(ctx context.Context, region backend.Region) (backend.RealmList, error)
	Character(ctx context.Context, region backend.Region, realmSlug, name string) (backend.WowCharacter, error)
}

// RegionsView lists the supported regions.
type RegionsView struct {
	Regions []backend.Region `json:"regions"`
}

type service struct {
	gateway WowGateway
	cache   *storage.Cache
	ttls    CacheTTLs
}

type unavailableGateway struct{}

func (unavailableGateway) Regions(context.Context) ([]backend.Region, error) {
	return nil, errUnavailable
}

func (unavailableGateway) Realms(context.Context, backend.Region) (backend.RealmList, error) {
	return backend.RealmList{}, errUnavailable
}

func (unavailableGateway) Character(context.Context, backend.Region, string, string) (backend.WowCharacter, error) {
	return backend.WowCharacter{}, errUnavailable
}

var errUnavailable = apperrors.E(apperrors.KindUnavailable, "wow backend is not configured")

func newService(gateway WowGateway, cache *storage.Cache, ttls CacheTTLs) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway, cache: cache, ttls: ttls}
}

func (s service) loadRegions(ctx context.Context) (RegionsView, error) {
	var view RegionsView
	if s.cache.Load(ctx, regionsCacheKey(), &view) {
		return view, nil
	}
	regions, err := s.gateway.Regions(ctx)
	if err != nil {
		return RegionsView{}, err
	}
	view = RegionsView{Regions: regions}
	s.cache.Save(ctx, storage.WriteRequest{
		CacheKey: regionsCacheKey(),
		Scope:    cacheScopeRegions,
		TTL:      s.ttls.Regions,
		Value:    view,
	})
	return view, nil
}

func (s service) loadRealms(ctx context.Context, rawRegion string) (backend.RealmList, error) {
	region, ok := backend.ParseRegion(rawRegion)
	if !ok {
		return backend.RealmList{}, apperrors.E(apperrors.KindNotFound, "unknown region")
	}
	key := realmsCacheKey(string(region))
	var list backend.RealmList
	if s.cache.Load(ctx, key, &list) {
		return list, nil
	}
	list, err := s.gateway.Realms(ctx, region)
	if err != nil {
		return backend.RealmList{}, err
	}
	s.cache.Save(ctx, storage.WriteRequest{
		CacheKey: key,
		Scope:    cacheScopeRealms,
		TTL:      s.ttls.Realms,
		Value:    list,
	})
	return list, nil
}

func (s service) lookupCharacter(ctx context.Context, lookup CharacterLookup) (backend.WowCharacter, error) {
	key := characterCacheKey(lookup)
	var character backend.WowCharacter
	if s.cache.Load(ctx, key, &character) {
		return character, nil
	}
	character, err := s.gateway.Character(ctx, lookup.Region, lookup.RealmSlug, lookup.Name)
	if err != nil {
		return backend.WowCharacter{}, err
	}
	s.cache.Save(ctx, storage.WriteRequest{
		CacheKey: key,
		Scope:    cacheScopeCharacters,
		TTL:      s.ttls.Characters,
		Value:    character,
	})
	return character, nil
}
