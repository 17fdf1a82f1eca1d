package sync_log

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Actions recorded by the CRM sync engine.
const (
	ActionBookingSynced       = "booking_synced"
	ActionContactCreation     = "contact_creation"
	ActionOpportunityCreation = "opportunity_creation"
	ActionOpportunityUpdate   = "opportunity_status_updated"
	ActionBookingNotFound     = "booking_not_found"
)

// SyncLog is an append-only audit row for one CRM sync step.
type SyncLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uint      `gorm:"not null;index" json:"booking_id"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Status    string    `gorm:"type:varchar(20);not null" json:"status"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName sets the table name for the SyncLog model
func (SyncLog) TableName() string {
	return "ghl_sync_logs"
}
