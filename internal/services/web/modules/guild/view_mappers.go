package guild

import (
	"time"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

// EventRow is one line of the guild event table.
type EventRow struct {
	ID           backend.ID         `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Date         string             `json:"date,omitempty"`
	TimezoneName string             `json:"timezone_name,omitempty"`
	Repetition   backend.Repetition `json:"repetition"`
	URL          string             `json:"url"`
}

func mapEventRows(events []backend.Event) []EventRow {
	rows := make([]EventRow, 0, len(events))
	for _, event := range events {
		rows = append(rows, mapEventRow(event))
	}
	return rows
}

func mapEventRow(event backend.Event) EventRow {
	repetition := event.Repetition
	if repetition == "" {
		repetition = backend.RepetitionNone
	}
	return EventRow{
		ID:           event.ID,
		Title:        event.Title,
		Description:  event.Description,
		Date:         displayDate(event.Date),
		TimezoneName: event.TimezoneName,
		Repetition:   repetition,
		URL:          routepath.Event(event.ID.String()),
	}
}

// displayDate normalizes backend dates to RFC 3339 and passes unknown
// formats through unchanged.
func displayDate(ts backend.Timestamp) string {
	parsed, ok := ts.Time()
	if !ok {
		return string(ts)
	}
	return parsed.Format(time.RFC3339)
}
