package booking_event

import (
	"errors"
	"fmt"

	bookingModel "dj-booking-sync/models/booking"

	"github.com/go-playground/validator/v10"
)

// EventRequest announces a booking lifecycle change. Status is required for status changes.
type EventRequest struct {
	Event  string `json:"event" validate:"required,oneof=booking_created booking_status_changed booking_deposit_paid booking_completed"`
	Status string `json:"status"`
}

func (req *EventRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return err
	}
	if req.Event == "booking_status_changed" && req.Status == "" {
		return errors.New("status is required for booking_status_changed")
	}
	if req.Status != "" && !bookingModel.BookingStatus(req.Status).IsValid() {
		return fmt.Errorf("unknown booking status %q", req.Status)
	}
	return nil
}
