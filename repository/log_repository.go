package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"dj-booking-sync/models/payment_log"
	"dj-booking-sync/models/sync_log"
)

// SyncLogRepository appends CRM sync audit rows. Rows are never updated or deleted.
type SyncLogRepository interface {
	Append(ctx context.Context, entry *sync_log.SyncLog) error
	// CountSince returns the number of rows per outcome created at or after since.
	CountSince(ctx context.Context, since time.Time) (map[string]int64, error)
}

// PaymentLogRepository appends confirmed payment rows.
type PaymentLogRepository interface {
	Append(ctx context.Context, entry *payment_log.PaymentLog) error
}

type GormSyncLogRepository struct {
	db *gorm.DB
}

func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

func (r *GormSyncLogRepository) Append(ctx context.Context, entry *sync_log.SyncLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormSyncLogRepository) CountSince(ctx context.Context, since time.Time) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&sync_log.SyncLog{}).
		Select("status, COUNT(*) AS total").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		sync_log.OutcomeSuccess: 0,
		sync_log.OutcomeError:   0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

type GormPaymentLogRepository struct {
	db *gorm.DB
}

func NewGormPaymentLogRepository(db *gorm.DB) *GormPaymentLogRepository {
	return &GormPaymentLogRepository{db: db}
}

func (r *GormPaymentLogRepository) Append(ctx context.Context, entry *payment_log.PaymentLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}
