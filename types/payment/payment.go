package payment

import "github.com/go-playground/validator/v10"

type ProcessPaymentRequest struct {
	BookingID uint    `json:"booking_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`

	// PaymentType defaults to deposit.
	PaymentType string `json:"payment_type" validate:"omitempty,oneof=deposit final"`
}

func (req *ProcessPaymentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

type ProcessDepositRequest struct {
	BookingID       uint   `json:"booking_id" validate:"required"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required,startswith=pi_"`
}

func (req *ProcessDepositRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}

// RefundRequest refunds the full charge when Amount is omitted.
type RefundRequest struct {
	PaymentIntentID string   `json:"payment_intent_id" validate:"required,startswith=pi_"`
	Amount          *float64 `json:"amount" validate:"omitempty,gt=0"`
	Reason          string   `json:"reason" validate:"omitempty,oneof=duplicate fraudulent requested_by_customer"`
}

func (req *RefundRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(req)
}
