package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dj-booking-sync/httpServices/crm"
	stripegw "dj-booking-sync/httpServices/stripe"
	"dj-booking-sync/logger"
	"dj-booking-sync/models/payment_log"
	"dj-booking-sync/models/sync_log"
	"dj-booking-sync/repository"
	"dj-booking-sync/services/crm_sync"
	"dj-booking-sync/services/payment"
	"dj-booking-sync/types"
	paymentTypes "dj-booking-sync/types/payment"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

type CRMSync interface {
	Configured() bool
	TestConnection(ctx context.Context) (*crm.Location, error)
	SyncAllBookings(ctx context.Context) crm_sync.SyncResult
}

type Payments interface {
	ProcessPayment(ctx context.Context, bookingID uint, amount float64, paymentType payment_log.PaymentType) (*payment.Session, error)
	ProcessDeposit(ctx context.Context, bookingID uint, paymentIntentID string) (*payment.DepositResult, error)
	CreateRefund(ctx context.Context, paymentIntentID string, amount *float64, reason string) (*stripegw.Refund, error)
}

// SyncStatus is the dashboard summary returned by GET /sync-status.
type SyncStatus struct {
	Enabled       bool   `json:"enabled"`
	SyncedToday   int64  `json:"synced_today"`
	FailedToday   int64  `json:"failed_today"`
	Unsynced      int64  `json:"unsynced"`
	WindowStarted string `json:"window_started"`
}

// AdminController serves the authenticated admin actions.
type AdminController struct {
	CRM      CRMSync
	Payments Payments
	Bookings repository.BookingRepository
	SyncLogs repository.SyncLogRepository

	now func() time.Time
}

func NewAdminController(
	crmSync CRMSync,
	payments Payments,
	bookings repository.BookingRepository,
	syncLogs repository.SyncLogRepository,
) *AdminController {
	return &AdminController{
		CRM:      crmSync,
		Payments: payments,
		Bookings: bookings,
		SyncLogs: syncLogs,
		now:      time.Now,
	}
}

func (ac *AdminController) TestConnection(c *fiber.Ctx) error {
	location, err := ac.CRM.TestConnection(c.UserContext())
	if err != nil {
		logger.Error("CRM connection test failed", err)
		status, msg := crmFailure(err)
		return c.Status(status).JSON(types.Fail(msg))
	}

	msg := "Connection successful"
	if location.Name != "" {
		msg = fmt.Sprintf("Connection successful. Location: %s", location.Name)
	}
	return c.JSON(types.Ok(msg, location))
}

func (ac *AdminController) SyncAll(c *fiber.Ctx) error {
	if !ac.CRM.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.Fail("GoHighLevel is not configured"))
	}

	result := ac.CRM.SyncAllBookings(c.UserContext())
	msg := fmt.Sprintf("Synced %d bookings. %d failed.", result.Synced, result.Failed)
	return c.JSON(types.Ok(msg, result))
}

func (ac *AdminController) ProcessPayment(c *fiber.Ctx) error {
	var req paymentTypes.ProcessPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	session, err := ac.Payments.ProcessPayment(c.UserContext(), req.BookingID, req.Amount, payment_log.PaymentType(req.PaymentType))
	if err != nil {
		status, msg := paymentFailure(err)
		return c.Status(status).JSON(types.Fail(msg))
	}
	return c.JSON(types.Ok("Payment intent created", session))
}

func (ac *AdminController) ProcessDeposit(c *fiber.Ctx) error {
	var req paymentTypes.ProcessDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	result, err := ac.Payments.ProcessDeposit(c.UserContext(), req.BookingID, req.PaymentIntentID)
	if err != nil {
		status, msg := paymentFailure(err)
		return c.Status(status).JSON(types.Fail(msg))
	}
	return c.JSON(types.Ok("Deposit recorded", result))
}

func (ac *AdminController) Refund(c *fiber.Ctx) error {
	var req paymentTypes.RefundRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail("Invalid request body"))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.Fail(err.Error()))
	}

	refund, err := ac.Payments.CreateRefund(c.UserContext(), req.PaymentIntentID, req.Amount, req.Reason)
	if err != nil {
		status, msg := paymentFailure(err)
		return c.Status(status).JSON(types.Fail(msg))
	}
	return c.JSON(types.Ok("Refund created", refund))
}

// SyncStatus reports today's sync outcomes and how many bookings still lack CRM ids.
func (ac *AdminController) SyncStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	since := now.With(ac.now()).BeginningOfDay()

	counts, err := ac.SyncLogs.CountSince(ctx, since)
	if err != nil {
		logger.Error("Failed to count sync log entries", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail("Could not load sync status"))
	}
	unsynced, err := ac.Bookings.CountUnsynced(ctx)
	if err != nil {
		logger.Error("Failed to count unsynced bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.Fail("Could not load sync status"))
	}

	return c.JSON(types.Ok("", SyncStatus{
		Enabled:       ac.CRM.Configured(),
		SyncedToday:   counts[sync_log.OutcomeSuccess],
		FailedToday:   counts[sync_log.OutcomeError],
		Unsynced:      unsynced,
		WindowStarted: since.Format(time.RFC3339),
	}))
}

func Health(c *fiber.Ctx) error {
	return c.JSON(types.Ok("ok", nil))
}

func crmFailure(err error) (int, string) {
	var apiErr *crm.APIError
	switch {
	case errors.Is(err, crm.ErrNotConfigured):
		return fiber.StatusServiceUnavailable, "GoHighLevel is not configured. Add the API key and location id."
	case errors.As(err, &apiErr) && apiErr.StatusCode == 0:
		return fiber.StatusBadGateway, "Could not reach GoHighLevel: " + apiErr.Message
	case errors.As(err, &apiErr) && (apiErr.StatusCode == fiber.StatusUnauthorized || apiErr.StatusCode == fiber.StatusForbidden):
		return fiber.StatusBadGateway, "GoHighLevel rejected the API key: " + apiErr.Message
	case errors.As(err, &apiErr):
		return fiber.StatusBadGateway, fmt.Sprintf("GoHighLevel returned %d: %s", apiErr.StatusCode, apiErr.Message)
	default:
		return fiber.StatusInternalServerError, "Connection test failed"
	}
}

func paymentFailure(err error) (int, string) {
	if errors.Is(err, payment.ErrIntentNotSucceeded) {
		return fiber.StatusConflict, "Payment has not been completed yet"
	}

	var pe *stripegw.Error
	if !errors.As(err, &pe) {
		logger.Error("Unexpected payment failure", err)
		return fiber.StatusInternalServerError, "Payment failed. Please try again."
	}

	switch pe.Kind {
	case stripegw.KindNoProviderKey:
		return fiber.StatusServiceUnavailable, "Stripe is not configured. Add the secret key for the active mode."
	case stripegw.KindInvalidBooking:
		return fiber.StatusNotFound, pe.Message
	case stripegw.KindCard:
		return fiber.StatusPaymentRequired, "Card error: " + pe.Message
	case stripegw.KindRateLimit:
		return fiber.StatusTooManyRequests, "Too many requests to Stripe. Please wait and try again."
	case stripegw.KindInvalidRequest:
		return fiber.StatusBadRequest, "Invalid payment request: " + pe.Message
	case stripegw.KindAuthentication:
		return fiber.StatusBadGateway, "Stripe authentication failed. Check the API keys."
	case stripegw.KindConnection:
		return fiber.StatusBadGateway, "Could not connect to Stripe. Please try again."
	case stripegw.KindAPI:
		return fiber.StatusBadGateway, "Stripe error: " + pe.Message
	default:
		return fiber.StatusInternalServerError, "Payment failed: " + pe.Message
	}
}
