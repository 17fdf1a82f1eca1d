package database

import (
	"fmt"
	"time"

	"dj-booking-sync/config"
	"dj-booking-sync/logger"
	"dj-booking-sync/models/booking"
	"dj-booking-sync/models/log"
	"dj-booking-sync/models/payment_log"
	"dj-booking-sync/models/sync_log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the PostgreSQL connection described by cfg.
func InitDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")
	return db, nil
}

// Migrate runs auto migration for all models and creates the extra indexes.
func Migrate(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		logger.Error("Failed to execute migrations", err)
		return err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return err
	}
	logger.Success("All indexes created successfully")
	return nil
}

// AutoMigrate creates or updates the tables for every model.
func AutoMigrate(db *gorm.DB) error {
	models := []interface{}{
		// Bookings
		&booking.Booking{},

		// Audit trails
		&sync_log.SyncLog{},
		&payment_log.PaymentLog{},

		// Admin API audit
		&log.Log{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{"booking ghl_contact_id", "CREATE INDEX IF NOT EXISTS idx_bookings_ghl_contact_id ON bookings(ghl_contact_id)"},
		{"booking ghl_opportunity_id", "CREATE INDEX IF NOT EXISTS idx_bookings_ghl_opportunity_id ON bookings(ghl_opportunity_id)"},
		{"booking created_at", "CREATE INDEX IF NOT EXISTS idx_bookings_created_at ON bookings(created_at)"},
		{"payment log created_at", "CREATE INDEX IF NOT EXISTS idx_payment_logs_created_at ON payment_logs(created_at)"},
		{"audit log url", "CREATE INDEX IF NOT EXISTS idx_api_audit_logs_method_url ON api_audit_logs(method, url)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create %s index: %w", idx.name, err)
		}
	}
	return nil
}
