package backend

import "context"

// EventService reads single events.
type EventService struct {
	client *Client
}

// NewEventService returns an event service over client.
func NewEventService(client *Client) EventService {
	return EventService{client: client}
}

func eventPath(eventID ID) string {
	return "/api/events/" + segment(eventID.String())
}

// Event fetches one event.
func (s EventService) Event(ctx context.Context, eventID ID) (Event, error) {
	var event Event
	if err := s.client.Get(ctx, eventPath(eventID), &event); err != nil {
		return Event{}, err
	}
	return event, nil
}

// NextEvent fetches the next occurrence of a repeating event. The backend
// answers 412 for events that do not repeat.
func (s EventService) NextEvent(ctx context.Context, eventID ID) (Event, error) {
	var event Event
	if err := s.client.Get(ctx, eventPath(eventID)+":next", &event); err != nil {
		return Event{}, err
	}
	return event, nil
}
