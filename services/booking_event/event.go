package booking_event

import (
	"context"
	"fmt"
	"sync"

	"dj-booking-sync/logger"
	bookingModel "dj-booking-sync/models/booking"
)

// EventName identifies a booking lifecycle event.
type EventName string

const (
	BookingCreated       EventName = "booking_created"
	BookingStatusChanged EventName = "booking_status_changed"
	BookingDepositPaid   EventName = "booking_deposit_paid"
	BookingCompleted     EventName = "booking_completed"
)

func (n EventName) IsValid() bool {
	switch n {
	case BookingCreated, BookingStatusChanged, BookingDepositPaid, BookingCompleted:
		return true
	default:
		return false
	}
}

// Event is one lifecycle notification. NewStatus is only set for BookingStatusChanged.
type Event struct {
	Name      EventName
	BookingID uint
	NewStatus bookingModel.BookingStatus
}

type Handler func(ctx context.Context, ev Event)

// Publisher is what emitters of lifecycle events depend on.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Dispatcher is an in-process publish/subscribe registry. Handlers run
// synchronously, in subscription order, on the publishing goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[EventName][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[EventName][]Handler)}
}

func (d *Dispatcher) Subscribe(name EventName, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Subscribers returns the number of handlers registered for name.
func (d *Dispatcher) Subscribers(name EventName) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[name])
}

// Publish runs the handlers subscribed to ev.Name. Unknown event names are dropped.
func (d *Dispatcher) Publish(ctx context.Context, ev Event) {
	if !ev.Name.IsValid() {
		logger.Warning(fmt.Sprintf("Ignoring unknown booking event %q for booking %d", ev.Name, ev.BookingID))
		return
	}

	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[ev.Name]...)
	d.mu.RUnlock()

	logger.Debug(fmt.Sprintf("Dispatching %s for booking %d to %d handler(s)", ev.Name, ev.BookingID, len(handlers)))
	for _, h := range handlers {
		h(ctx, ev)
	}
}
