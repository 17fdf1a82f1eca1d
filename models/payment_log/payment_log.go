package payment_log

import "time"

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeFinal   PaymentType = "final"
)

func (pt PaymentType) IsValid() bool {
	return pt == PaymentTypeDeposit || pt == PaymentTypeFinal
}

// Label is the capitalised name used in provider descriptions.
func (pt PaymentType) Label() string {
	if pt == PaymentTypeFinal {
		return "Final"
	}
	return "Deposit"
}

// PaymentLog is an append-only record of a confirmed payment.
type PaymentLog struct {
	ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID     uint        `gorm:"not null;index" json:"booking_id"`
	PaymentType   PaymentType `gorm:"type:varchar(20);not null" json:"payment_type"`
	Amount        float64     `gorm:"type:decimal(10,2);not null" json:"amount"`
	TransactionID string      `gorm:"type:varchar(255);not null;index" json:"transaction_id"`
	Status        string      `gorm:"type:varchar(50);not null" json:"status"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the PaymentLog model
func (PaymentLog) TableName() string {
	return "payment_logs"
}
