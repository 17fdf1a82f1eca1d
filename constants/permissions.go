package constants

const (
	// PermAdminFull allows every admin sync and payment action.
	PermAdminFull = "dj-booking-sync.admin.full-permit"
	// PermEventsPublish allows the booking host to announce lifecycle events.
	PermEventsPublish = "dj-booking-sync.events.publish"

	PermAny = "any"
)

// AdminPermissions are granted to tokens issued from the command line.
var AdminPermissions = []string{
	PermAdminFull,
	PermEventsPublish,
}
