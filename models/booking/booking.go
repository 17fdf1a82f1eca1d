package booking

import (
	"time"
)

// Booking represents a DJ booking together with its CRM linkage and deposit state.
type Booking struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	// Contact
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Email   string `gorm:"type:varchar(255);not null;index" json:"email"`
	Phone   string `gorm:"type:varchar(50)" json:"phone"`
	Address string `gorm:"type:text" json:"address"`

	// Event
	EventDate  string `gorm:"type:varchar(20)" json:"event_date"`
	EventTime  string `gorm:"type:varchar(20)" json:"event_time"`
	Venue      string `gorm:"type:varchar(255)" json:"venue"`
	GuestCount int    `gorm:"default:0" json:"guest_count"`
	Package    string `gorm:"type:varchar(100)" json:"package"`
	EventType  string `gorm:"type:varchar(100)" json:"event_type"`

	// Financials, major currency units
	TotalCost     float64 `gorm:"type:decimal(10,2);default:0" json:"total_cost"`
	DepositAmount float64 `gorm:"type:decimal(10,2);default:0" json:"deposit_amount"`

	Status BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`

	// CRM linkage
	RemoteContactID     *string    `gorm:"column:ghl_contact_id;type:varchar(100)" json:"ghl_contact_id,omitempty"`
	RemoteOpportunityID *string    `gorm:"column:ghl_opportunity_id;type:varchar(100)" json:"ghl_opportunity_id,omitempty"`
	SyncedAt            *time.Time `gorm:"column:ghl_synced_at" json:"ghl_synced_at,omitempty"`

	// Deposit
	DepositPaid         bool       `gorm:"default:false" json:"deposit_paid"`
	DepositPaidAt       *time.Time `json:"deposit_paid_at,omitempty"`
	StripeTransactionID *string    `gorm:"type:varchar(255)" json:"stripe_transaction_id,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// HasContact reports whether the booking is linked to a CRM contact.
func (b *Booking) HasContact() bool {
	return b.RemoteContactID != nil && *b.RemoteContactID != ""
}

// HasOpportunity reports whether the booking is linked to a CRM opportunity.
func (b *Booking) HasOpportunity() bool {
	return b.RemoteOpportunityID != nil && *b.RemoteOpportunityID != ""
}
