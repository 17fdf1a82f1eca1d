package types

import "time"

// LogEntry is an audit record queued for the AsyncLogger. Actor is the
// admin token subject, empty for rejected requests.
type LogEntry struct {
	Method          string
	URL             string
	Actor           string
	RequestBody     string
	ResponseBody    string
	RequestHeaders  string
	ResponseHeaders string
	StatusCode      int
	DurationMs      int64
	CreatedAt       time.Time
}
