package crm_sync

import bookingModel "dj-booking-sync/models/booking"

// Opportunity states understood by the CRM.
const (
	OpportunityOpen = "open"
	OpportunityWon  = "won"
	OpportunityLost = "lost"
)

var opportunityStates = map[bookingModel.BookingStatus]string{
	bookingModel.BookingStatusPending:   OpportunityOpen,
	bookingModel.BookingStatusConfirmed: OpportunityWon,
	bookingModel.BookingStatusCancelled: OpportunityLost,
	bookingModel.BookingStatusCompleted: OpportunityWon,
}

var stageLabels = map[bookingModel.BookingStatus]string{
	bookingModel.BookingStatusPending:   "New Lead",
	bookingModel.BookingStatusConfirmed: "Deposit Paid",
	bookingModel.BookingStatusCancelled: "Lost",
	bookingModel.BookingStatusCompleted: "Event Completed",
}

// OpportunityState maps a booking status to the remote opportunity state. Unknown statuses are open.
func OpportunityState(status bookingModel.BookingStatus) string {
	if s, ok := opportunityStates[status]; ok {
		return s
	}
	return OpportunityOpen
}

// StageLabel maps a booking status to the remote pipeline stage. Unknown statuses are "New Lead".
func StageLabel(status bookingModel.BookingStatus) string {
	if s, ok := stageLabels[status]; ok {
		return s
	}
	return stageLabels[bookingModel.BookingStatusPending]
}

// Workflow names accepted by TriggerWorkflow.
const (
	WorkflowBookingCreated   = "booking_created"
	WorkflowDepositPaid      = "deposit_paid"
	WorkflowBookingCompleted = "booking_completed"
)

var workflowHooks = map[string]string{
	WorkflowBookingCreated:   "booking-received",
	WorkflowDepositPaid:      "deposit-received",
	WorkflowBookingCompleted: "event-completed",
}
