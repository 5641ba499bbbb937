package events

import (
	"context"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
)

type fakeGateway struct {
	event     backend.Event
	next      backend.Event
	err       error
	lastID    backend.ID
	nextCalls int
}

func (f *fakeGateway) Event(_ context.Context, eventID backend.ID) (backend.Event, error) {
	f.lastID = eventID
	return f.event, f.err
}

func (f *fakeGateway) NextEvent(_ context.Context, eventID backend.ID) (backend.Event, error) {
	f.lastID = eventID
	f.nextCalls++
	return f.next, f.err
}
