package booking_event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	bookingModel "dj-booking-sync/models/booking"
)

func TestDispatcher_PublishRunsHandlersInOrder(t *testing.T) {
	d := NewDispatcher()
	var calls []string

	d.Subscribe(BookingCreated, func(ctx context.Context, ev Event) { calls = append(calls, "first") })
	d.Subscribe(BookingCreated, func(ctx context.Context, ev Event) { calls = append(calls, "second") })
	d.Subscribe(BookingCompleted, func(ctx context.Context, ev Event) { calls = append(calls, "other") })

	d.Publish(context.Background(), Event{Name: BookingCreated, BookingID: 7})

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 2, d.Subscribers(BookingCreated))
	assert.Equal(t, 0, d.Subscribers(BookingDepositPaid))
}

func TestDispatcher_PassesEvent(t *testing.T) {
	d := NewDispatcher()
	var got Event
	d.Subscribe(BookingStatusChanged, func(ctx context.Context, ev Event) { got = ev })

	want := Event{Name: BookingStatusChanged, BookingID: 3, NewStatus: bookingModel.BookingStatusCancelled}
	d.Publish(context.Background(), want)

	assert.Equal(t, want, got)
}

func TestDispatcher_PublishWithoutSubscribers(t *testing.T) {
	d := NewDispatcher()
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), Event{Name: BookingDepositPaid, BookingID: 1})
	})
}

func TestEventName_IsValid(t *testing.T) {
	assert.True(t, BookingDepositPaid.IsValid())
	assert.False(t, EventName("booking_deleted").IsValid())
}

func TestDispatcher_DropsUnknownEvent(t *testing.T) {
	d := NewDispatcher()
	called := false
	d.Subscribe(EventName("booking_deleted"), func(ctx context.Context, ev Event) { called = true })

	d.Publish(context.Background(), Event{Name: EventName("booking_deleted"), BookingID: 1})
	assert.False(t, called)
}
