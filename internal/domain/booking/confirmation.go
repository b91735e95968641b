package booking

import (
	"net/url"
	"strings"
	"time"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

const timeLabelLayout = "15:04"

var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseDatetime reads the naive ISO datetimes the backend emits.
func ParseDatetime(s string) (time.Time, bool) {
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Reschedule is the date/slot sub-flow for an existing appointment.
type Reschedule struct {
	Slots SlotIndex `json:"slots"`
	Date  string    `json:"date,omitempty"`
	Slot  string    `json:"slot,omitempty"`
}

// Confirmation is the local view of one appointment. Cancel and reschedule
// update it optimistically; a reload replaces it with backend data.
type Confirmation struct {
	Appointment models.AppointmentDetails `json:"appointment"`
	Reschedule  *Reschedule               `json:"reschedule,omitempty"`
}

func (c *Confirmation) Status() Status {
	return Status(c.Appointment.Status)
}

func (c *Confirmation) CanCancel() error {
	return CanCancel(c.Status())
}

func (c *Confirmation) MarkCanceled() {
	c.Appointment.Status = string(StatusCanceled)
	c.Reschedule = nil
}

// OpenReschedule starts the sub-flow with fresh availability.
func (c *Confirmation) OpenReschedule(slots SlotIndex) error {
	if err := CanReschedule(c.Status()); err != nil {
		return err
	}
	c.Reschedule = &Reschedule{Slots: slots}
	return nil
}

func (c *Confirmation) SelectRescheduleDate(date string) error {
	if c.Reschedule == nil {
		return ErrRescheduleNotOpen
	}
	if !c.Reschedule.Slots.Has(date) {
		return ErrDateUnavailable
	}
	c.Reschedule.Date = date
	c.Reschedule.Slot = ""
	return nil
}

func (c *Confirmation) SelectRescheduleSlot(slot string) error {
	if c.Reschedule == nil {
		return ErrRescheduleNotOpen
	}
	if c.Reschedule.Date == "" || !c.Reschedule.Slots.Contains(c.Reschedule.Date, slot) {
		return ErrSlotUnavailable
	}
	c.Reschedule.Slot = slot
	return nil
}

// RescheduleDatetime is the new moment to send, once date and slot are picked.
func (c *Confirmation) RescheduleDatetime() (string, error) {
	if c.Reschedule == nil {
		return "", ErrRescheduleNotOpen
	}
	if err := CanReschedule(c.Status()); err != nil {
		return "", err
	}
	r := c.Reschedule
	if r.Date == "" || r.Slot == "" || !r.Slots.Contains(r.Date, r.Slot) {
		return "", ErrSlotUnavailable
	}
	return Datetime(r.Date, r.Slot), nil
}

func (c *Confirmation) MarkRescheduled(datetime string) {
	c.Appointment.Datetime = datetime
	c.Appointment.Status = string(RescheduledStatus())
	c.Reschedule = nil
}

// ---------- view ----------

type ConfirmationView struct {
	ID            int64       `json:"id"`
	Status        string      `json:"status"`
	StatusMessage string      `json:"status_message"`
	Date          string      `json:"date"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	WorkerName    string      `json:"worker_name"`
	ServiceName   string      `json:"service_name"`
	Price         int         `json:"price"`
	BranchName    string      `json:"branch_name"`
	Address       string      `json:"address"`
	MapsURL       string      `json:"maps_url,omitempty"`
	CanCancel     bool        `json:"can_cancel"`
	CanReschedule bool        `json:"can_reschedule"`
	Reschedule    *Reschedule `json:"reschedule,omitempty"`
}

const notAvailable = "N/A"

func (c *Confirmation) View() ConfirmationView {
	ap := c.Appointment
	v := ConfirmationView{
		ID:            ap.ID,
		Status:        ap.Status,
		StatusMessage: StatusMessage(c.Status()),
		Date:          notAvailable,
		StartTime:     notAvailable,
		EndTime:       notAvailable,
		Price:         ap.Price,
		CanCancel:     c.CanCancel() == nil,
		CanReschedule: CanReschedule(c.Status()) == nil,
		Reschedule:    c.Reschedule,
	}
	if ap.Worker != nil {
		v.WorkerName = ap.Worker.Name
	}
	if ap.Branch != nil {
		v.BranchName = ap.Branch.Name
		v.Address = ap.Branch.Address
		v.MapsURL = MapsURL(ap.Branch.Locality, ap.Branch.Address)
	}

	start, ok := ParseDatetime(ap.Datetime)
	if ok {
		v.Date = start.Format(DateLayout)
		v.StartTime = start.Format(timeLabelLayout)
	}
	if ap.Service != nil {
		v.ServiceName = ap.Service.Name
		if ok && ap.Service.Duration > 0 {
			v.EndTime = start.Add(time.Duration(ap.Service.Duration) * time.Minute).Format(timeLabelLayout)
		}
	}
	return v
}

// MapsURL builds a Google Maps directions link to the branch.
func MapsURL(locality, address string) string {
	dest := strings.TrimSpace(locality + " " + address)
	if dest == "" {
		return ""
	}
	return "https://www.google.com/maps/dir/?api=1&destination=" + strings.ReplaceAll(url.QueryEscape(dest), "+", "%20")
}
