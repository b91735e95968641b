package booking

// User-facing messages for failed backend calls.
const (
	MsgLoadCities        = "Failed to load cities and branches"
	MsgLoadGroups        = "Failed to load services grouped by position"
	MsgLoadWorkers       = "Failed to load workers"
	MsgLoadServices      = "Failed to load services"
	MsgLoadSlots         = "Failed to load available slots"
	MsgLoadServiceWorker = "Failed to load workers for selected service"
	MsgCreate            = "Failed to create appointment"
	MsgLoadAppointment   = "Failed to load appointment details"
	MsgCancel            = "Failed to cancel appointment"
	MsgReschedule        = "Failed to reschedule appointment"
)
