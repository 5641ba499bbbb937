package wow

import (
	"context"
	"sync"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeGateway struct {
	mu             sync.Mutex
	regions        []backend.Region
	realms         backend.RealmList
	character      backend.WowCharacter
	err            error
	regionCalls    int
	realmCalls     int
	characterCalls int
	lastLookup     CharacterLookup
}

func (f *fakeGateway) Regions(context.Context) ([]backend.Region, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regionCalls++
	return f.regions, f.err
}

func (f *fakeGateway) Realms(_ context.Context, region backend.Region) (backend.RealmList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.realmCalls++
	list := f.realms
	list.Region = region
	return list, f.err
}

func (f *fakeGateway) Character(_ context.Context, region backend.Region, realmSlug, name string) (backend.WowCharacter, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.characterCalls++
	f.lastLookup = CharacterLookup{Region: region, RealmSlug: realmSlug, Name: name}
	return f.character, f.err
}
