package logger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dj-booking-sync/logger"
	log_model "dj-booking-sync/models/log"
	"dj-booking-sync/testutil"
	"dj-booking-sync/types"
)

func TestAsyncLogger_PersistsQueuedEntries(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	audit := logger.NewAsyncLogger(db)
	go audit.ProcessLog()

	for _, url := range []string{"/api/admin/sync-all", "/api/admin/sync-status"} {
		audit.Log(types.LogEntry{Method: "POST", URL: url, StatusCode: 200, CreatedAt: time.Now()})
	}
	audit.Close()

	var rows []log_model.Log
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "/api/admin/sync-all", rows[0].URL)
	assert.Equal(t, 200, rows[1].StatusCode)
}

func TestAsyncLogger_CloseIsIdempotent(t *testing.T) {
	audit := logger.NewAsyncLogger(testutil.NewSQLiteDB(t))
	go audit.ProcessLog()

	audit.Close()
	audit.Close()
}

func TestAsyncLogger_LogAfterCloseIsDropped(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	audit := logger.NewAsyncLogger(db)
	go audit.ProcessLog()
	audit.Close()

	assert.NotPanics(t, func() {
		audit.Log(types.LogEntry{Method: "POST", URL: "/api/admin/sync-all", StatusCode: 200, CreatedAt: time.Now()})
	})

	var count int64
	require.NoError(t, db.Model(&log_model.Log{}).Count(&count).Error)
	assert.Zero(t, count)
}
