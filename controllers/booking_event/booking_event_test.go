package booking_event

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "dj-booking-sync/models/booking"
	"dj-booking-sync/repository"
	events "dj-booking-sync/services/booking_event"
	"dj-booking-sync/testutil"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev events.Event) {
	p.events = append(p.events, ev)
}

func setup(t *testing.T) (*fiber.App, *recordingPublisher, uint) {
	t.Helper()
	bookings := repository.NewGormBookingRepository(testutil.NewSQLiteDB(t))
	b := &bookingModel.Booking{Name: "Jane Doe", Email: "jane@example.com", Status: bookingModel.BookingStatusPending}
	require.NoError(t, bookings.Create(context.Background(), b))

	pub := &recordingPublisher{}
	ctrl := NewBookingEventController(bookings, pub)
	app := fiber.New()
	app.Post("/bookings/:id/events", ctrl.Publish)
	return app, pub, b.ID
}

func post(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestPublish_StatusChanged(t *testing.T) {
	app, pub, id := setup(t)

	status := post(t, app, "/bookings/1/events", `{"event":"booking_status_changed","status":"cancelled"}`)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.Event{
		Name:      events.BookingStatusChanged,
		BookingID: id,
		NewStatus: bookingModel.BookingStatusCancelled,
	}, pub.events[0])
}

func TestPublish_Created(t *testing.T) {
	app, pub, _ := setup(t)

	require.Equal(t, http.StatusOK, post(t, app, "/bookings/1/events", `{"event":"booking_created"}`))
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.BookingCreated, pub.events[0].Name)
}

func TestPublish_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"unknown event", "/bookings/1/events", `{"event":"booking_deleted"}`, http.StatusBadRequest},
		{"status change without status", "/bookings/1/events", `{"event":"booking_status_changed"}`, http.StatusBadRequest},
		{"invalid status", "/bookings/1/events", `{"event":"booking_status_changed","status":"archived"}`, http.StatusBadRequest},
		{"bad id", "/bookings/abc/events", `{"event":"booking_created"}`, http.StatusBadRequest},
		{"missing booking", "/bookings/99/events", `{"event":"booking_created"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app, pub, _ := setup(t)

			assert.Equal(t, tc.status, post(t, app, tc.path, tc.body))
			assert.Empty(t, pub.events)
		})
	}
}
