package crm_sync

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dj-booking-sync/config"
	"dj-booking-sync/httpServices/crm"
	"dj-booking-sync/logger"
	bookingModel "dj-booking-sync/models/booking"
	"dj-booking-sync/models/sync_log"
	"dj-booking-sync/repository"
	"dj-booking-sync/services/booking_event"
)

// Client is the subset of the CRM REST API the engine uses.
type Client interface {
	FindContactByEmail(ctx context.Context, email string) (*crm.Contact, error)
	CreateContact(ctx context.Context, contact crm.Contact) (*crm.Contact, error)
	UpdateContact(ctx context.Context, id string, contact crm.Contact) (*crm.Contact, error)
	CreateOpportunity(ctx context.Context, opp crm.Opportunity) (*crm.Opportunity, error)
	UpdateOpportunity(ctx context.Context, id string, update interface{}) error
	TriggerWebhook(ctx context.Context, hook string, payload map[string]interface{}) error
	GetLocation(ctx context.Context) (*crm.Location, error)
}

// SyncResult is the outcome of a batch run. Synced+Failed equals the number of bookings attempted.
type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// Service keeps bookings linked to CRM contacts and opportunities. It never
// returns provider failures to lifecycle callers; they are logged and
// reported as false.
type Service struct {
	client     Client
	bookings   repository.BookingRepository
	logs       repository.SyncLogRepository
	pipelineID string
	batchDelay time.Duration
	configured bool

	now   func() time.Time
	sleep func(time.Duration)
}

func NewService(
	client Client,
	bookings repository.BookingRepository,
	logs repository.SyncLogRepository,
	cfg config.CRMConfig,
) *Service {
	return &Service{
		client:     client,
		bookings:   bookings,
		logs:       logs,
		pipelineID: cfg.PipelineID,
		batchDelay: cfg.BatchDelay,
		configured: cfg.Configured(),
		now:        time.Now,
		sleep:      time.Sleep,
	}
}

func (s *Service) Configured() bool {
	return s.configured
}

// SyncBooking makes sure the booking has a CRM contact and opportunity and
// stores both ids on the booking.
func (s *Service) SyncBooking(ctx context.Context, bookingID uint) bool {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error(fmt.Sprintf("CRM sync: cannot load booking %d", bookingID), err)
		if errors.Is(err, repository.ErrBookingNotFound) {
			s.appendLog(ctx, bookingID, sync_log.ActionBookingNotFound, sync_log.OutcomeError, err.Error())
		}
		return false
	}

	contact, err := s.upsertContact(ctx, b)
	if err != nil {
		logger.Error(fmt.Sprintf("CRM sync: contact step failed for booking %d", b.ID), err)
		s.appendLog(ctx, b.ID, sync_log.ActionContactCreation, sync_log.OutcomeError, err.Error())
		return false
	}

	opportunityID, err := s.syncOpportunity(ctx, b, contact.ID)
	if err != nil {
		// The contact stays in the CRM; the next sync finds it again by email.
		logger.Error(fmt.Sprintf("CRM sync: opportunity step failed for booking %d", b.ID), err)
		s.appendLog(ctx, b.ID, sync_log.ActionOpportunityCreation, sync_log.OutcomeError, err.Error())
		return false
	}

	if err := s.bookings.UpdateRemoteLinkage(ctx, b.ID, contact.ID, opportunityID, s.now()); err != nil {
		logger.Error(fmt.Sprintf("CRM sync: cannot store CRM ids on booking %d", b.ID), err)
		s.appendLog(ctx, b.ID, sync_log.ActionBookingSynced, sync_log.OutcomeError, err.Error())
		return false
	}

	s.TriggerWorkflow(ctx, WorkflowBookingCreated, contact.ID, map[string]interface{}{
		"booking_id": b.ID,
		"event_date": b.EventDate,
		"event_type": b.EventType,
	})

	s.appendLog(ctx, b.ID, sync_log.ActionBookingSynced, sync_log.OutcomeSuccess,
		fmt.Sprintf("Contact: %s, Opportunity: %s", contact.ID, opportunityID))
	logger.Success(fmt.Sprintf("Booking %d synced to CRM", b.ID))
	return true
}

// upsertContact updates the contact matching the booking email or creates one.
func (s *Service) upsertContact(ctx context.Context, b *bookingModel.Booking) (*crm.Contact, error) {
	existing, err := s.client.FindContactByEmail(ctx, b.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup contact: %w", err)
	}

	payload := contactPayload(b)
	if existing != nil {
		updated, err := s.client.UpdateContact(ctx, existing.ID, payload)
		if err != nil {
			return nil, fmt.Errorf("update contact %s: %w", existing.ID, err)
		}
		return updated, nil
	}

	created, err := s.client.CreateContact(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

// syncOpportunity updates the linked opportunity or creates a new one.
func (s *Service) syncOpportunity(ctx context.Context, b *bookingModel.Booking, contactID string) (string, error) {
	payload := s.opportunityPayload(b, contactID)

	if b.HasOpportunity() {
		id := *b.RemoteOpportunityID
		if err := s.client.UpdateOpportunity(ctx, id, payload); err != nil {
			return "", fmt.Errorf("update opportunity %s: %w", id, err)
		}
		return id, nil
	}

	opp, err := s.client.CreateOpportunity(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("create opportunity: %w", err)
	}
	return opp.ID, nil
}

// UpdateOpportunityStatus pushes the mapped state and stage for status to the
// booking's opportunity. It is a no-op for bookings without one.
func (s *Service) UpdateOpportunityStatus(ctx context.Context, bookingID uint, status bookingModel.BookingStatus) bool {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		logger.Error(fmt.Sprintf("CRM status update: cannot load booking %d", bookingID), err)
		return false
	}
	if !b.HasOpportunity() {
		return false
	}

	update := crm.OpportunityStatusUpdate{
		Status:    OpportunityState(status),
		StageName: StageLabel(status),
	}
	if err := s.client.UpdateOpportunity(ctx, *b.RemoteOpportunityID, update); err != nil {
		logger.Warning(fmt.Sprintf("CRM status update failed for booking %d: %v", b.ID, err))
		return false
	}

	s.appendLog(ctx, b.ID, sync_log.ActionOpportunityUpdate, sync_log.OutcomeSuccess,
		fmt.Sprintf("Status updated to %s (%s)", update.Status, update.StageName))
	return true
}

// TriggerWorkflow fires the CRM automation hook for name. Unknown names are ignored.
func (s *Service) TriggerWorkflow(ctx context.Context, name, contactID string, extra map[string]interface{}) bool {
	hook, ok := workflowHooks[name]
	if !ok {
		logger.Warning(fmt.Sprintf("Unknown CRM workflow %q", name))
		return false
	}

	payload := map[string]interface{}{
		"contact_id": contactID,
		"event":      name,
		"timestamp":  s.now().UTC().Format(time.RFC3339),
	}
	for k, v := range extra {
		payload[k] = v
	}

	if err := s.client.TriggerWebhook(ctx, hook, payload); err != nil {
		logger.Warning(fmt.Sprintf("CRM workflow %s failed for contact %s: %v", name, contactID, err))
		return false
	}
	return true
}

// SyncAllBookings syncs every booking missing a CRM id, one at a time, pausing
// between calls. Failures are counted, not retried.
func (s *Service) SyncAllBookings(ctx context.Context) SyncResult {
	var result SyncResult

	pending, err := s.bookings.ListUnsynced(ctx)
	if err != nil {
		logger.Error("CRM batch sync: cannot list unsynced bookings", err)
		return result
	}

	for i, b := range pending {
		if i > 0 && s.batchDelay > 0 {
			s.sleep(s.batchDelay)
		}
		if s.SyncBooking(ctx, b.ID) {
			result.Synced++
		} else {
			result.Failed++
		}
	}

	logger.Info(fmt.Sprintf("CRM batch sync finished: %d synced, %d failed", result.Synced, result.Failed))
	return result
}

// TestConnection fetches the configured location to verify the credentials.
func (s *Service) TestConnection(ctx context.Context) (*crm.Location, error) {
	if !s.configured {
		return nil, crm.ErrNotConfigured
	}
	return s.client.GetLocation(ctx)
}

// Register subscribes the engine to booking lifecycle events. Nothing is
// registered when the CRM is not configured.
func (s *Service) Register(d *booking_event.Dispatcher) {
	if !s.configured {
		logger.Info("CRM credentials not configured; booking sync disabled")
		return
	}

	d.Subscribe(booking_event.BookingCreated, func(ctx context.Context, ev booking_event.Event) {
		s.SyncBooking(ctx, ev.BookingID)
	})
	d.Subscribe(booking_event.BookingStatusChanged, func(ctx context.Context, ev booking_event.Event) {
		s.UpdateOpportunityStatus(ctx, ev.BookingID, ev.NewStatus)
	})
	d.Subscribe(booking_event.BookingDepositPaid, s.onDepositPaid)
	d.Subscribe(booking_event.BookingCompleted, s.onCompleted)
}

func (s *Service) onDepositPaid(ctx context.Context, ev booking_event.Event) {
	b, err := s.bookings.GetByID(ctx, ev.BookingID)
	if err != nil || !b.HasContact() {
		return
	}
	s.TriggerWorkflow(ctx, WorkflowDepositPaid, *b.RemoteContactID, map[string]interface{}{
		"booking_id":     b.ID,
		"deposit_amount": b.DepositAmount,
	})
	s.UpdateOpportunityStatus(ctx, b.ID, bookingModel.BookingStatusConfirmed)
}

func (s *Service) onCompleted(ctx context.Context, ev booking_event.Event) {
	b, err := s.bookings.GetByID(ctx, ev.BookingID)
	if err != nil || !b.HasContact() {
		return
	}
	s.TriggerWorkflow(ctx, WorkflowBookingCompleted, *b.RemoteContactID, map[string]interface{}{
		"booking_id": b.ID,
	})
	s.UpdateOpportunityStatus(ctx, b.ID, bookingModel.BookingStatusCompleted)
}

func (s *Service) appendLog(ctx context.Context, bookingID uint, action, outcome, message string) {
	entry := &sync_log.SyncLog{
		BookingID: bookingID,
		Action:    action,
		Status:    outcome,
		Message:   message,
	}
	if err := s.logs.Append(ctx, entry); err != nil {
		logger.Error("Failed to write CRM sync log", err)
	}
}

func contactPayload(b *bookingModel.Booking) crm.Contact {
	first, last := splitName(b.Name)
	tags := []string{"dj-booking"}
	if b.EventType != "" {
		tags = append(tags, b.EventType)
	}
	return crm.Contact{
		FirstName: first,
		LastName:  last,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Address1:  b.Address,
		Source:    "DJ Booking",
		Tags:      tags,
	}
}

func (s *Service) opportunityPayload(b *bookingModel.Booking, contactID string) crm.Opportunity {
	return crm.Opportunity{
		PipelineID:    s.pipelineID,
		ContactID:     contactID,
		Name:          fmt.Sprintf("%s - %s (%s)", eventTypeOrDefault(b.EventType), b.Name, b.EventDate),
		Status:        OpportunityState(b.Status),
		StageName:     StageLabel(b.Status),
		MonetaryValue: b.TotalCost,
		CustomFields: []crm.CustomField{
			{Key: "booking_id", Value: strconv.FormatUint(uint64(b.ID), 10)},
			{Key: "event_date", Value: b.EventDate},
			{Key: "event_time", Value: b.EventTime},
			{Key: "venue", Value: b.Venue},
			{Key: "guest_count", Value: b.GuestCount},
			{Key: "package", Value: b.Package},
			{Key: "event_type", Value: b.EventType},
			{Key: "deposit_amount", Value: b.DepositAmount},
		},
	}
}

func splitName(full string) (string, string) {
	full = strings.TrimSpace(full)
	first, last, _ := strings.Cut(full, " ")
	return first, strings.TrimSpace(last)
}

func eventTypeOrDefault(eventType string) string {
	if eventType == "" {
		return "DJ Booking"
	}
	return eventType
}
