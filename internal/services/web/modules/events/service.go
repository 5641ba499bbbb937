package events

import (
	"context"
	"time"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// EventGateway reads events and their next occurrences.
type EventGateway interface {
	Event(ctx context.Context, eventID backend.ID) (backend.Event, error)
	NextEvent(ctx context.Context, eventID backend.ID) (backend.Event, error)
}

// EventView is the event page payload.
type EventView struct {
	ID           backend.ID         `json:"id"`
	ParentID     backend.ID         `json:"parent_id,omitempty"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Date         string             `json:"date,omitempty"`
	TimezoneName string             `json:"timezone_name,omitempty"`
	Repetition   backend.Repetition `json:"repetition"`
	NextURL      string             `json:"next_url,omitempty"`
}

type service struct {
	gateway EventGateway
}

type unavailableGateway struct{}

func (unavailableGateway) Event(context.Context, backend.ID) (backend.Event, error) {
	return backend.Event{}, apperrors.E(apperrors.KindUnavailable, "event backend is not configured")
}

func (unavailableGateway) NextEvent(context.Context, backend.ID) (backend.Event, error) {
	return backend.Event{}, apperrors.E(apperrors.KindUnavailable, "event backend is not configured")
}

func newService(gateway EventGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

func (s service) loadEvent(ctx context.Context, eventID backend.ID) (EventView, error) {
	if eventID.Empty() {
		return EventView{}, apperrors.E(apperrors.KindInvalidInput, "event id is required")
	}
	event, err := s.gateway.Event(ctx, eventID)
	if err != nil {
		return EventView{}, err
	}
	return mapEvent(event), nil
}

func (s service) loadNextEvent(ctx context.Context, eventID backend.ID) (EventView, error) {
	if eventID.Empty() {
		return EventView{}, apperrors.E(apperrors.KindInvalidInput, "event id is required")
	}
	event, err := s.gateway.NextEvent(ctx, eventID)
	if err != nil {
		return EventView{}, err
	}
	return mapEvent(event), nil
}

// mapEvent links repeating events to their next occurrence.
func mapEvent(event backend.Event) EventView {
	repetition := event.Repetition
	if repetition == "" {
		repetition = backend.RepetitionNone
	}
	view := EventView{
		ID:           event.ID,
		ParentID:     event.ParentID,
		Title:        event.Title,
		Description:  event.Description,
		Date:         string(event.Date),
		TimezoneName: event.TimezoneName,
		Repetition:   repetition,
	}
	if parsed, ok := event.Date.Time(); ok {
		view.Date = parsed.Format(time.RFC3339)
	}
	if repetition != backend.RepetitionNone && !event.ID.Empty() {
		view.NextURL = routepath.EventNext(event.ID.String())
	}
	return view
}
