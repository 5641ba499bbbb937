package guild

import (
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/platform/httpx"
)

const (
	titleMinLength       = 4
	titleMaxLength       = 32
	descriptionMaxLength = 2000

	backendDateLayout = "2006-01-02 15:04:05"
)

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseEventForm validates the scheduling form. The input is only usable
// when the returned field errors are empty.
func parseEventForm(form map[string]string) (backend.EventInput, httpx.FieldErrors) {
	fields := httpx.FieldErrors{}
	input := backend.EventInput{
		Title:        strings.TrimSpace(form["title"]),
		Description:  strings.TrimSpace(form["description"]),
		TimezoneName: strings.TrimSpace(form["timezone_name"]),
	}

	switch n := utf8.RuneCountInString(input.Title); {
	case n == 0:
		fields.Add("title", "title is required")
	case n < titleMinLength || n > titleMaxLength:
		fields.Add("title", "title must be between 4 and 32 characters")
	}

	if utf8.RuneCountInString(input.Description) > descriptionMaxLength {
		fields.Add("description", "description must be at most 2000 characters")
	}

	validTimezone := input.TimezoneName == "" || backend.ValidTimezone(input.TimezoneName)
	if !validTimezone {
		fields.Add("timezone_name", "timezone must be UTC or Europe/Paris")
	}

	rawDate := strings.TrimSpace(form["date"])
	if rawDate == "" {
		fields.Add("date", "date is required")
	} else if parsed, ok := parseEventDate(rawDate); ok {
		if validTimezone {
			input.Date = localizeEventDate(parsed, input.TimezoneName).Format(backendDateLayout)
		}
	} else {
		fields.Add("date", "date must look like 2006-01-02 15:04")
	}

	input.Repetition = backend.RepetitionNone
	if raw := strings.TrimSpace(form["repetition"]); raw != "" {
		input.Repetition = backend.Repetition(strings.ToUpper(raw))
		if !input.Repetition.Valid() {
			fields.Add("repetition", "repetition must be NOT_REPEATED, DAILY or WEEKLY")
		}
	}

	return input, fields
}

// parseEventDate tries each accepted layout and records whether the input
// carried a UTC offset.
func parseEventDate(raw string) (parsedDate, bool) {
	for _, layout := range eventDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsedDate{at: parsed, hasOffset: layout == time.RFC3339}, true
		}
	}
	return parsedDate{}, false
}

type parsedDate struct {
	at        time.Time
	hasOffset bool
}

// localizeEventDate returns the wall clock the backend stores. The backend
// reads a naive time in the event's timezone (UTC when unset), so an
// explicit offset is converted into that zone first.
func localizeEventDate(date parsedDate, timezoneName string) time.Time {
	if !date.hasOffset {
		return date.at
	}
	loc := time.UTC
	if timezoneName != "" && timezoneName != backend.TimezoneUTC {
		if loaded, err := time.LoadLocation(timezoneName); err == nil {
			loc = loaded
		}
	}
	return date.at.In(loc)
}
