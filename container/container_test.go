package container

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dj-booking-sync/config"
	"dj-booking-sync/services/booking_event"
	"dj-booking-sync/testutil"
)

func TestNewContainer_SubscribesWhenCRMConfigured(t *testing.T) {
	cfg := &config.Config{CRM: config.CRMConfig{APIKey: "k", LocationID: "loc", Enabled: true}}
	c := NewContainer(cfg, testutil.NewSQLiteDB(t))

	assert.True(t, c.CRMSync.Configured())
	for _, name := range []booking_event.EventName{
		booking_event.BookingCreated,
		booking_event.BookingStatusChanged,
		booking_event.BookingDepositPaid,
		booking_event.BookingCompleted,
	} {
		assert.Equal(t, 1, c.Dispatcher.Subscribers(name), name)
	}
}

func TestNewContainer_InertWithoutCredentials(t *testing.T) {
	cfg := &config.Config{CRM: config.CRMConfig{Enabled: true, LocationID: "loc"}}
	c := NewContainer(cfg, testutil.NewSQLiteDB(t))

	assert.False(t, c.CRMSync.Configured())
	assert.Zero(t, c.Dispatcher.Subscribers(booking_event.BookingCreated))
	assert.NotNil(t, c.AdminController)
	assert.NotNil(t, c.EventController)
}
