package booking

import "github.com/BruksfildServices01/booking-panel/internal/httperr"

// Guard violations. Handlers map them to 4xx replies by code.
var (
	ErrInvalidStep       = httperr.ErrBusiness("invalid_step")
	ErrInvalidFlow       = httperr.ErrBusiness("invalid_flow")
	ErrInvalidMonth      = httperr.ErrBusiness("invalid_month")
	ErrUnknownWorker     = httperr.ErrBusiness("worker_not_offered")
	ErrUnknownService    = httperr.ErrBusiness("service_not_offered")
	ErrPositionRequired  = httperr.ErrBusiness("position_required")
	ErrSelectionNeeded   = httperr.ErrBusiness("worker_and_service_required")
	ErrDateUnavailable   = httperr.ErrBusiness("date_unavailable")
	ErrSlotUnavailable   = httperr.ErrBusiness("slot_unavailable")
	ErrDetailsRequired   = httperr.ErrBusiness("details_required")
	ErrAlreadyCanceled   = httperr.ErrBusiness("already_canceled")
	ErrRescheduleNotOpen = httperr.ErrBusiness("reschedule_not_open")
)

// Messages shown for guard violations.
var guardMessages = map[string]string{
	"invalid_step":                "This action is not available at the current step",
	"invalid_flow":                "Unknown booking flow",
	"invalid_month":               "Month must be formatted as YYYY-MM",
	"worker_not_offered":          "Selected worker is not available",
	"service_not_offered":         "Selected service is not available",
	"position_required":           "Select the position the service is offered under",
	"worker_and_service_required": "Select a worker and a service first",
	"date_unavailable":            "No free slots on the selected date",
	"slot_unavailable":            "Please select a date and time slot",
	"details_required":            "Please fill in all fields",
	"already_canceled":            "Your visit has been canceled",
	"reschedule_not_open":         "Reschedule has not been started",
}

// GuardMessage returns the user-facing text for a guard error code.
func GuardMessage(code string) string {
	if m, ok := guardMessages[code]; ok {
		return m
	}
	return code
}

// ActionError is a failed backend call with the message the user sees.
type ActionError struct {
	Code    string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *ActionError) Unwrap() error { return e.Err }

// Failed wraps err with the user-facing message of the action.
func Failed(code, message string, err error) error {
	return &ActionError{Code: code, Message: message, Err: err}
}
