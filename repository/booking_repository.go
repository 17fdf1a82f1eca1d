package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	bookingModel "dj-booking-sync/models/booking"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository is the local booking store. The sync engines only read bookings
// and write back CRM linkage and deposit fields.
type BookingRepository interface {
	Create(ctx context.Context, b *bookingModel.Booking) error
	GetByID(ctx context.Context, id uint) (*bookingModel.Booking, error)
	// UpdateRemoteLinkage stores both CRM ids and the sync timestamp.
	UpdateRemoteLinkage(ctx context.Context, id uint, contactID, opportunityID string, syncedAt time.Time) error
	// MarkDepositPaid records a confirmed deposit and moves the booking to confirmed.
	MarkDepositPaid(ctx context.Context, id uint, amount float64, transactionID string, paidAt time.Time) error
	// ListUnsynced returns bookings missing a contact id or an opportunity id.
	ListUnsynced(ctx context.Context) ([]bookingModel.Booking, error)
	CountUnsynced(ctx context.Context) (int64, error)
}

type GormBookingRepository struct {
	db *gorm.DB
}

func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

func (r *GormBookingRepository) Create(ctx context.Context, b *bookingModel.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *GormBookingRepository) GetByID(ctx context.Context, id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormBookingRepository) UpdateRemoteLinkage(
	ctx context.Context,
	id uint,
	contactID, opportunityID string,
	syncedAt time.Time,
) error {
	return r.update(ctx, id, map[string]any{
		"ghl_contact_id":     contactID,
		"ghl_opportunity_id": opportunityID,
		"ghl_synced_at":      syncedAt,
	})
}

func (r *GormBookingRepository) MarkDepositPaid(
	ctx context.Context,
	id uint,
	amount float64,
	transactionID string,
	paidAt time.Time,
) error {
	return r.update(ctx, id, map[string]any{
		"deposit_amount":        amount,
		"deposit_paid":          true,
		"stripe_transaction_id": transactionID,
		"deposit_paid_at":       paidAt,
		"status":                bookingModel.BookingStatusConfirmed,
	})
}

func (r *GormBookingRepository) ListUnsynced(ctx context.Context) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := r.unsynced(ctx).Order("id ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormBookingRepository) CountUnsynced(ctx context.Context) (int64, error) {
	var total int64
	if err := r.unsynced(ctx).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormBookingRepository) unsynced(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&bookingModel.Booking{}).
		Where("ghl_contact_id IS NULL OR ghl_contact_id = '' OR ghl_opportunity_id IS NULL OR ghl_opportunity_id = ''")
}

func (r *GormBookingRepository) update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&bookingModel.Booking{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
