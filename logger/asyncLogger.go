package logger

import (
	"sync"

	log_model "dj-booking-sync/models/log"
	"dj-booking-sync/types"

	"gorm.io/gorm"
)

// AsyncLogger persists admin API request/response audit rows off the request path.
type AsyncLogger struct {
	db      *gorm.DB
	channel chan types.LogEntry
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAsyncLogger(db *gorm.DB) *AsyncLogger {
	return &AsyncLogger{
		db:      db,
		channel: make(chan types.LogEntry, 100),
		done:    make(chan struct{}),
	}
}

// ProcessLog drains the channel until Close is called.
func (l *AsyncLogger) ProcessLog() {
	defer close(l.done)
	Debug("Starting asynchronous audit logger")

	for entry := range l.channel {
		row := log_model.Log{
			Method:          entry.Method,
			URL:             entry.URL,
			Actor:           entry.Actor,
			RequestBody:     entry.RequestBody,
			ResponseBody:    entry.ResponseBody,
			RequestHeaders:  entry.RequestHeaders,
			ResponseHeaders: entry.ResponseHeaders,
			StatusCode:      entry.StatusCode,
			DurationMs:      entry.DurationMs,
			CreatedAt:       entry.CreatedAt,
		}
		if err := l.db.Create(&row).Error; err != nil {
			Error("Failed to insert audit log entry", err)
		}
	}
}

// Log queues an entry. It drops the entry instead of blocking when the buffer is
// full or the logger is closed.
func (l *AsyncLogger) Log(entry types.LogEntry) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		Warning("Audit logger closed, dropping " + entry.Method + " " + entry.URL)
		return
	}

	select {
	case l.channel <- entry:
	default:
		Warning("Audit log buffer full, dropping " + entry.Method + " " + entry.URL)
	}
}

// Close stops accepting entries and waits for queued ones to be written.
func (l *AsyncLogger) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.channel)
	}
	l.mu.Unlock()
	<-l.done
}
