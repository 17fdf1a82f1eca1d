package container

import (
	"dj-booking-sync/config"
	"dj-booking-sync/controllers/admin"
	bookingEventController "dj-booking-sync/controllers/booking_event"
	"dj-booking-sync/httpServices/crm"
	stripegw "dj-booking-sync/httpServices/stripe"
	"dj-booking-sync/logger"
	"dj-booking-sync/repository"
	"dj-booking-sync/services/booking_event"
	"dj-booking-sync/services/crm_sync"
	"dj-booking-sync/services/payment"

	"gorm.io/gorm"
)

// Container holds the application's wired dependencies.
type Container struct {
	Config *config.Config
	DB     *gorm.DB

	Bookings    repository.BookingRepository
	SyncLogs    repository.SyncLogRepository
	PaymentLogs repository.PaymentLogRepository

	Dispatcher *booking_event.Dispatcher
	CRMSync    *crm_sync.Service
	Payments   *payment.Service

	AdminController *admin.AdminController
	EventController *bookingEventController.BookingEventController
	Audit           *logger.AsyncLogger
}

// NewContainer builds the stores, engines and controllers and subscribes the
// CRM engine to booking lifecycle events.
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	bookings := repository.NewGormBookingRepository(db)
	syncLogs := repository.NewGormSyncLogRepository(db)
	paymentLogs := repository.NewGormPaymentLogRepository(db)

	crmClient := crm.NewClient(cfg.CRM.BaseURL, cfg.CRM.APIKey, cfg.CRM.LocationID, cfg.CRM.Timeout)
	gateway := stripegw.NewGateway(cfg.Stripe.SecretKey(), cfg.Stripe.PublishableKey(), cfg.Stripe.Timeout)

	dispatcher := booking_event.NewDispatcher()
	crmSync := crm_sync.NewService(crmClient, bookings, syncLogs, cfg.CRM)
	crmSync.Register(dispatcher)
	payments := payment.NewService(gateway, bookings, paymentLogs, dispatcher, cfg.Stripe.Currency)

	if !gateway.Configured() {
		logger.Warning("Stripe secret key not configured; payment actions will be rejected")
	}

	return &Container{
		Config:          cfg,
		DB:              db,
		Bookings:        bookings,
		SyncLogs:        syncLogs,
		PaymentLogs:     paymentLogs,
		Dispatcher:      dispatcher,
		CRMSync:         crmSync,
		Payments:        payments,
		AdminController: admin.NewAdminController(crmSync, payments, bookings, syncLogs),
		EventController: bookingEventController.NewBookingEventController(bookings, dispatcher),
		Audit:           logger.NewAsyncLogger(db),
	}
}
