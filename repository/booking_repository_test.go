package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "dj-booking-sync/models/booking"
	"dj-booking-sync/models/payment_log"
	"dj-booking-sync/models/sync_log"
	"dj-booking-sync/testutil"
)

func strPtr(s string) *string { return &s }

func seedBooking(t *testing.T, repo *GormBookingRepository, b bookingModel.Booking) *bookingModel.Booking {
	t.Helper()
	if b.Status == "" {
		b.Status = bookingModel.BookingStatusPending
	}
	require.NoError(t, repo.Create(context.Background(), &b))
	return &b
}

func TestGormBookingRepository_GetByID_NotFound(t *testing.T) {
	repo := NewGormBookingRepository(testutil.NewSQLiteDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGormBookingRepository_UpdateRemoteLinkage(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBookingRepository(testutil.NewSQLiteDB(t))
	b := seedBooking(t, repo, bookingModel.Booking{Name: "Jane Doe", Email: "jane@example.com"})

	syncedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateRemoteLinkage(ctx, b.ID, "contact-1", "opp-1", syncedAt))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.HasContact())
	assert.True(t, got.HasOpportunity())
	assert.Equal(t, "contact-1", *got.RemoteContactID)
	assert.Equal(t, "opp-1", *got.RemoteOpportunityID)
	require.NotNil(t, got.SyncedAt)
	assert.True(t, syncedAt.Equal(*got.SyncedAt))
}

func TestGormBookingRepository_UpdateRemoteLinkage_MissingBooking(t *testing.T) {
	repo := NewGormBookingRepository(testutil.NewSQLiteDB(t))

	err := repo.UpdateRemoteLinkage(context.Background(), 99, "c", "o", time.Now())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGormBookingRepository_MarkDepositPaid(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBookingRepository(testutil.NewSQLiteDB(t))
	b := seedBooking(t, repo, bookingModel.Booking{Name: "Sam", Email: "sam@example.com", DepositAmount: 100})

	paidAt := time.Date(2026, 6, 2, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.MarkDepositPaid(ctx, b.ID, 125.00, "pi_123", paidAt))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 125.00, got.DepositAmount)
	assert.True(t, got.DepositPaid)
	assert.Equal(t, bookingModel.BookingStatusConfirmed, got.Status)
	require.NotNil(t, got.StripeTransactionID)
	assert.Equal(t, "pi_123", *got.StripeTransactionID)
	require.NotNil(t, got.DepositPaidAt)
}

func TestGormBookingRepository_ListUnsynced(t *testing.T) {
	ctx := context.Background()
	repo := NewGormBookingRepository(testutil.NewSQLiteDB(t))

	none := seedBooking(t, repo, bookingModel.Booking{Name: "A", Email: "a@example.com"})
	contactOnly := seedBooking(t, repo, bookingModel.Booking{Name: "B", Email: "b@example.com", RemoteContactID: strPtr("c-b")})
	seedBooking(t, repo, bookingModel.Booking{
		Name:                "C",
		Email:               "c@example.com",
		RemoteContactID:     strPtr("c-c"),
		RemoteOpportunityID: strPtr("o-c"),
	})
	empty := seedBooking(t, repo, bookingModel.Booking{
		Name:                "D",
		Email:               "d@example.com",
		RemoteContactID:     strPtr(""),
		RemoteOpportunityID: strPtr(""),
	})

	got, err := repo.ListUnsynced(ctx)
	require.NoError(t, err)

	ids := make([]uint, 0, len(got))
	for _, b := range got {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []uint{none.ID, contactOnly.ID, empty.ID}, ids)

	total, err := repo.CountUnsynced(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestGormSyncLogRepository_CountSince(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormSyncLogRepository(db)

	require.NoError(t, repo.Append(ctx, &sync_log.SyncLog{BookingID: 1, Action: sync_log.ActionBookingSynced, Status: sync_log.OutcomeSuccess}))
	require.NoError(t, repo.Append(ctx, &sync_log.SyncLog{BookingID: 2, Action: sync_log.ActionBookingSynced, Status: sync_log.OutcomeSuccess}))
	require.NoError(t, repo.Append(ctx, &sync_log.SyncLog{BookingID: 3, Action: sync_log.ActionContactCreation, Status: sync_log.OutcomeError}))
	old := &sync_log.SyncLog{
		BookingID: 4,
		Action:    sync_log.ActionContactCreation,
		Status:    sync_log.OutcomeError,
		CreatedAt: time.Now().Add(-72 * time.Hour),
	}
	require.NoError(t, repo.Append(ctx, old))

	counts, err := repo.CountSince(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[sync_log.OutcomeSuccess])
	assert.Equal(t, int64(1), counts[sync_log.OutcomeError])
}

func TestGormPaymentLogRepository_Append(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := NewGormPaymentLogRepository(db)

	entry := &payment_log.PaymentLog{
		BookingID:     7,
		PaymentType:   payment_log.PaymentTypeDeposit,
		Amount:        125.00,
		TransactionID: "pi_123",
		Status:        "succeeded",
	}
	require.NoError(t, repo.Append(ctx, entry))
	assert.NotZero(t, entry.ID)

	var stored payment_log.PaymentLog
	require.NoError(t, db.First(&stored, entry.ID).Error)
	assert.Equal(t, 125.00, stored.Amount)
	assert.Equal(t, payment_log.PaymentTypeDeposit, stored.PaymentType)
}
