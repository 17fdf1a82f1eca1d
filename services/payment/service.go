package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	stripegw "dj-booking-sync/httpServices/stripe"
	"dj-booking-sync/logger"
	bookingModel "dj-booking-sync/models/booking"
	"dj-booking-sync/models/payment_log"
	"dj-booking-sync/repository"
	"dj-booking-sync/services/booking_event"
)

var ErrIntentNotSucceeded = errors.New("payment has not succeeded")

const DefaultRefundReason = "requested_by_customer"

// Gateway is the payment provider boundary.
type Gateway interface {
	Configured() bool
	PublishableKey() string
	CreatePaymentIntent(ctx context.Context, req stripegw.IntentRequest) (*stripegw.Intent, error)
	GetPaymentIntent(ctx context.Context, id string) (*stripegw.Intent, error)
	CreateRefund(ctx context.Context, req stripegw.RefundRequest) (*stripegw.Refund, error)
}

// Session is handed to the client to confirm a payment.
type Session struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	PublishableKey  string `json:"publishable_key,omitempty"`
}

// DepositResult describes a deposit recorded against a booking.
type DepositResult struct {
	BookingID     uint    `json:"booking_id"`
	Amount        float64 `json:"amount"`
	TransactionID string  `json:"transaction_id"`
}

type Service struct {
	gateway  Gateway
	bookings repository.BookingRepository
	payments repository.PaymentLogRepository
	events   booking_event.Publisher
	currency string

	now func() time.Time
}

func NewService(
	gateway Gateway,
	bookings repository.BookingRepository,
	payments repository.PaymentLogRepository,
	events booking_event.Publisher,
	currency string,
) *Service {
	if currency == "" {
		currency = "GBP"
	}
	return &Service{
		gateway:  gateway,
		bookings: bookings,
		payments: payments,
		events:   events,
		currency: currency,
		now:      time.Now,
	}
}

// ToMinorUnits converts a major-unit amount (pounds) to provider minor units (pence).
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts provider minor units back to a major-unit amount.
func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

// CreatePaymentIntent creates an intent of paymentType for the booking. amount is
// in major units; an empty paymentType means a deposit and an empty currency uses
// the configured default. Repeating the same request reuses the provider's
// idempotency key, so a double submit does not open a second intent.
func (s *Service) CreatePaymentIntent(ctx context.Context, bookingID uint, amount float64, paymentType payment_log.PaymentType, currency string) (*stripegw.Intent, error) {
	if !s.gateway.Configured() {
		return nil, stripegw.NewError(stripegw.KindNoProviderKey, "Stripe is not configured")
	}

	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, stripegw.NewError(stripegw.KindInvalidRequest, "amount must be greater than zero")
	}
	if paymentType == "" {
		paymentType = payment_log.PaymentTypeDeposit
	}
	if !paymentType.IsValid() {
		return nil, stripegw.NewError(stripegw.KindInvalidRequest, fmt.Sprintf("unknown payment type %q", paymentType))
	}
	if currency == "" {
		currency = s.currency
	}

	minor := ToMinorUnits(amount)
	intent, err := s.gateway.CreatePaymentIntent(ctx, stripegw.IntentRequest{
		Amount:         minor,
		Currency:       currency,
		Description:    fmt.Sprintf("%s payment for DJ booking #%d (%s)", paymentType.Label(), b.ID, b.EventDate),
		ReceiptEmail:   b.Email,
		IdempotencyKey: IdempotencyKey(b.ID, paymentType, minor, currency),
		Metadata: map[string]string{
			"booking_id":     strconv.FormatUint(uint64(b.ID), 10),
			"customer_name":  b.Name,
			"customer_email": b.Email,
			"event_date":     b.EventDate,
			"payment_type":   string(paymentType),
		},
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Stripe payment intent failed for booking %d", b.ID), err)
		return nil, err
	}

	logger.Info(fmt.Sprintf("Created %s payment intent %s for booking %d", paymentType, intent.ID, b.ID))
	return intent, nil
}

// IdempotencyKey identifies one payment request for a booking.
func IdempotencyKey(bookingID uint, paymentType payment_log.PaymentType, minor int64, currency string) string {
	return fmt.Sprintf("booking-%d-%s-%d-%s", bookingID, paymentType, minor, strings.ToLower(currency))
}

// ProcessPayment creates an intent and returns what the client needs to confirm it.
// Nothing is marked paid here.
func (s *Service) ProcessPayment(ctx context.Context, bookingID uint, amount float64, paymentType payment_log.PaymentType) (*Session, error) {
	intent, err := s.CreatePaymentIntent(ctx, bookingID, amount, paymentType, "")
	if err != nil {
		return nil, err
	}
	return &Session{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		PublishableKey:  s.gateway.PublishableKey(),
	}, nil
}

// ProcessDeposit records a confirmed deposit. The booking is only touched when
// the intent's status is exactly "succeeded". Replaying an intent that is already
// recorded on the booking returns the stored deposit without side effects.
func (s *Service) ProcessDeposit(ctx context.Context, bookingID uint, paymentIntentID string) (*DepositResult, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		logger.Error(fmt.Sprintf("Cannot retrieve payment intent %s", paymentIntentID), err)
		return nil, err
	}

	if intent.Status != stripegw.IntentStatusSucceeded {
		return nil, fmt.Errorf("%w: intent %s is %q", ErrIntentNotSucceeded, intent.ID, intent.Status)
	}
	if id, ok := intent.Metadata["booking_id"]; ok && id != strconv.FormatUint(uint64(bookingID), 10) {
		return nil, stripegw.NewError(stripegw.KindInvalidRequest,
			fmt.Sprintf("payment intent %s belongs to booking %s", intent.ID, id))
	}
	if intent.Metadata["payment_type"] == string(payment_log.PaymentTypeFinal) {
		return nil, stripegw.NewError(stripegw.KindInvalidRequest,
			fmt.Sprintf("payment intent %s is a final payment, not a deposit", intent.ID))
	}

	if b.DepositPaid && b.StripeTransactionID != nil && *b.StripeTransactionID == intent.ID {
		logger.Info(fmt.Sprintf("Deposit %s already recorded for booking %d", intent.ID, bookingID))
		return &DepositResult{BookingID: bookingID, Amount: b.DepositAmount, TransactionID: intent.ID}, nil
	}

	amount := FromMinorUnits(intent.Amount)
	if err := s.bookings.MarkDepositPaid(ctx, bookingID, amount, intent.ID, s.now()); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, stripegw.NewError(stripegw.KindInvalidBooking, fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, fmt.Errorf("record deposit for booking %d: %w", bookingID, err)
	}

	entry := &payment_log.PaymentLog{
		BookingID:     bookingID,
		PaymentType:   payment_log.PaymentTypeDeposit,
		Amount:        amount,
		TransactionID: intent.ID,
		Status:        intent.Status,
	}
	if err := s.payments.Append(ctx, entry); err != nil {
		logger.Error(fmt.Sprintf("Failed to write payment log for booking %d", bookingID), err)
	}

	s.events.Publish(ctx, booking_event.Event{Name: booking_event.BookingDepositPaid, BookingID: bookingID})

	logger.Success(fmt.Sprintf("Deposit of %.2f recorded for booking %d", amount, bookingID))
	return &DepositResult{BookingID: bookingID, Amount: amount, TransactionID: intent.ID}, nil
}

func (s *Service) loadBooking(ctx context.Context, bookingID uint) (*bookingModel.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, stripegw.NewError(stripegw.KindInvalidBooking, fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, &stripegw.Error{Kind: stripegw.KindUnknown, Message: "cannot load booking", Err: err}
	}
	return b, nil
}

// CreateRefund refunds an intent. A nil amount refunds in full; an empty
// reason defaults to requested_by_customer.
func (s *Service) CreateRefund(ctx context.Context, paymentIntentID string, amount *float64, reason string) (*stripegw.Refund, error) {
	if !s.gateway.Configured() {
		return nil, stripegw.NewError(stripegw.KindNoProviderKey, "Stripe is not configured")
	}
	if reason == "" {
		reason = DefaultRefundReason
	}

	req := stripegw.RefundRequest{PaymentIntentID: paymentIntentID, Reason: reason}
	if amount != nil {
		if *amount <= 0 {
			return nil, stripegw.NewError(stripegw.KindInvalidRequest, "refund amount must be greater than zero")
		}
		req.Amount = ToMinorUnits(*amount)
	}

	refund, err := s.gateway.CreateRefund(ctx, req)
	if err != nil {
		logger.Error(fmt.Sprintf("Refund failed for payment intent %s", paymentIntentID), err)
		return nil, err
	}
	return refund, nil
}
