package booking_event

import (
	"errors"
	"fmt"

	"dj-booking-sync/logger"
	bookingModel "dj-booking-sync/models/booking"
	"dj-booking-sync/repository"
	events "dj-booking-sync/services/booking_event"
	"dj-booking-sync/types"
	eventTypes "dj-booking-sync/types/booking_event"

	"github.com/gofiber/fiber/v2"
)

// BookingEventController lets the booking host announce lifecycle changes.
type BookingEventController struct {
	Bookings  repository.BookingRepository
	Publisher events.Publisher
}

func NewBookingEventController(bookings repository.BookingRepository, publisher events.Publisher) *BookingEventController {
	return &BookingEventController{Bookings: bookings, Publisher: publisher}
}

// Publish handles POST /api/bookings/:id/events. Handlers run before the response is sent.
func (bc *BookingEventController) Publish(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("Invalid booking id"))
	}

	var req eventTypes.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	ctx := c.UserContext()
	if _, err := bc.Bookings.GetByID(ctx, uint(id)); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.Fail(fmt.Sprintf("Booking %d not found", id)))
		}
		logger.Error("Failed to load booking for event", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail("Could not load booking"))
	}

	ev := events.Event{
		Name:      events.EventName(req.Event),
		BookingID: uint(id),
		NewStatus: bookingModel.BookingStatus(req.Status),
	}
	bc.Publisher.Publish(ctx, ev)

	return c.JSON(types.Ok(fmt.Sprintf("Event %s published", ev.Name), fiber.Map{
		"booking_id": ev.BookingID,
		"event":      ev.Name,
	}))
}
