package booking

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusWaiting   Status = "Waiting"
	StatusInProcess Status = "In-process"
	StatusFinished  Status = "Finished"
	StatusCanceled  Status = "Canceled"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
)

// StatusMessage is the headline shown on the confirmation page.
func StatusMessage(s Status) string {
	switch s {
	case StatusWaiting, StatusConfirmed:
		return "We are expecting you"
	case StatusCanceled:
		return "Your visit has been canceled"
	case StatusCompleted:
		return "Please leave us a review"
	}
	return "Status: " + string(s)
}

// ===============================
// Validations
// ===============================

// CanCancel rejects a second cancel of the same visit.
func CanCancel(current Status) error {
	if current == StatusCanceled {
		return ErrAlreadyCanceled
	}
	return nil
}

func CanReschedule(current Status) error {
	if current == StatusCanceled {
		return ErrAlreadyCanceled
	}
	return nil
}

// RescheduledStatus is assumed locally after a successful reschedule.
func RescheduledStatus() Status {
	return StatusWaiting
}
