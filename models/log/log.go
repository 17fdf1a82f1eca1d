package log

import (
	"time"
)

// Log is one audited admin API exchange. Credentials and payment client
// secrets are redacted before the row is written.
type Log struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Method          string    `gorm:"type:varchar(10);not null" json:"method"`
	URL             string    `gorm:"type:text;not null" json:"url"`
	Actor           string    `gorm:"type:varchar(255);index" json:"actor"`
	RequestBody     string    `gorm:"type:text" json:"request_body"`
	RequestHeaders  string    `gorm:"type:text" json:"request_headers"`
	ResponseBody    string    `gorm:"type:text" json:"response_body"`
	ResponseHeaders string    `gorm:"type:text" json:"response_headers"`
	StatusCode      int       `gorm:"type:int;index" json:"status_code"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName sets the table name for the Log model
func (Log) TableName() string {
	return "api_audit_logs"
}
