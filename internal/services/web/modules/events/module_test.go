package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eighthwonder/eighthwonder/internal/services/web/backend"
	"github.com/eighthwonder/eighthwonder/internal/services/web/routepath"
)

func serve(t *testing.T, gateway EventGateway, path string) *httptest.ResponseRecorder {
	t.Helper()
	mount, err := NewWithGateway(gateway).Mount()
	require.NoError(t, err)
	assert.Equal(t, routepath.EventsPrefix, mount.Prefix)
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestModuleID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "events", New().ID())
}

func TestEventView(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{event: backend.Event{
		ID:         "5",
		Title:      "Raid",
		Date:       "2026-11-02 20:30:00",
		Repetition: backend.RepetitionWeekly,
	}}
	rr := serve(t, gateway, routepath.Event("5"))
	require.Equal(t, http.StatusOK, rr.Code)

	var view EventView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, backend.ID("5"), gateway.lastID)
	assert.Equal(t, "2026-11-02T20:30:00Z", view.Date)
	assert.Equal(t, routepath.EventNext("5"), view.NextURL)
}

func TestSingleEventHasNoNextLink(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeGateway{event: backend.Event{ID: "5", Title: "Raid"}}, routepath.Event("5"))
	require.Equal(t, http.StatusOK, rr.Code)

	var view EventView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, backend.RepetitionNone, view.Repetition)
	assert.Empty(t, view.NextURL)
}

func TestNextEventView(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{next: backend.Event{ID: "6", ParentID: "5", Title: "Raid", Repetition: backend.RepetitionDaily}}
	rr := serve(t, gateway, routepath.EventNext("5"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, gateway.nextCalls)
	assert.Equal(t, backend.ID("5"), gateway.lastID)

	var view EventView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, backend.ID("5"), view.ParentID)
	assert.Equal(t, routepath.EventNext("6"), view.NextURL)
}

func TestEventPropagatesBackendStatus(t *testing.T) {
	t.Parallel()

	rr := serve(t, &fakeGateway{err: &backend.StatusError{Status: http.StatusNotFound}}, routepath.Event("404"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUnconfiguredEventsAreUnavailable(t *testing.T) {
	t.Parallel()

	mount, err := New().Mount()
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, routepath.Event("5"), nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
