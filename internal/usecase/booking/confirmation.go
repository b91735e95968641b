package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	domain "github.com/BruksfildServices01/booking-panel/internal/domain/booking"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/timezone"
)

var ErrAppointmentIncomplete = httperr.ErrBusiness("appointment_incomplete")

// ConfirmationService backs the confirmation page of one visitor. Cancel and
// reschedule update the stored view optimistically; Load always refetches.
type ConfirmationService struct {
	backend  Backend
	repo     domain.Repository
	audit    *audit.Dispatcher
	recorder Recorder
	logger   zerolog.Logger

	tz  string
	now func() time.Time
}

func NewConfirmationService(
	backend Backend,
	repo domain.Repository,
	audit *audit.Dispatcher,
	recorder Recorder,
	logger zerolog.Logger,
	tz string,
) *ConfirmationService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &ConfirmationService{
		backend:  backend,
		repo:     repo,
		audit:    audit,
		recorder: recorder,
		logger:   logger.With().Str("component", "confirmation").Logger(),
		tz:       tz,
		now:      time.Now,
	}
}

// ======================================================
// LOAD
// ======================================================

// Load fetches the appointment from the backend and replaces the stored view.
func (s *ConfirmationService) Load(ctx context.Context, visitorID string, appointmentID int64) (*domain.Confirmation, error) {
	ap, err := s.backend.Appointment(ctx, appointmentID)
	if err != nil {
		return nil, domain.Failed("load_appointment", MsgLoadAppointment, err)
	}

	c := &domain.Confirmation{Appointment: *ap}
	if err := s.repo.SaveConfirmation(ctx, visitorID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// current returns the stored view, loading it on first use.
func (s *ConfirmationService) current(ctx context.Context, visitorID string, appointmentID int64) (*domain.Confirmation, error) {
	c, err := s.repo.GetConfirmation(ctx, visitorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if c != nil {
		return c, nil
	}
	return s.Load(ctx, visitorID, appointmentID)
}

// ======================================================
// CANCEL
// ======================================================

// Cancel issues no backend request when the visit is already canceled.
func (s *ConfirmationService) Cancel(ctx context.Context, visitorID string, appointmentID int64) (*domain.Confirmation, error) {
	c, err := s.current(ctx, visitorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := c.CanCancel(); err != nil {
		return nil, err
	}

	err = s.backend.CancelAppointment(ctx, appointmentID)
	s.recorder.ObserveAction("cancel_appointment", err)
	if err != nil {
		return nil, domain.Failed("cancel_appointment", MsgCancel, err)
	}

	c.MarkCanceled()
	s.persist(ctx, visitorID, c)

	s.audit.Dispatch(audit.Event{
		Actor:    visitorID,
		Role:     "client",
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})
	return c, nil
}

// ======================================================
// RESCHEDULE
// ======================================================

// OpenReschedule fetches availability for the appointment's own worker and service.
func (s *ConfirmationService) OpenReschedule(ctx context.Context, visitorID string, appointmentID int64) (*domain.Confirmation, error) {
	c, err := s.current(ctx, visitorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanReschedule(c.Status()); err != nil {
		return nil, err
	}
	ap := c.Appointment
	if ap.Worker == nil || ap.Service == nil {
		return nil, ErrAppointmentIncomplete
	}

	raw, err := s.backend.AvailableSlots(ctx, ap.Worker.ID, ap.Service.ID)
	if err != nil {
		return nil, domain.Failed("load_slots", MsgLoadSlots, err)
	}
	if err := c.OpenReschedule(domain.NewSlotIndex(raw)); err != nil {
		return nil, err
	}
	return c, s.repo.SaveConfirmation(ctx, visitorID, c)
}

func (s *ConfirmationService) SelectRescheduleDate(ctx context.Context, visitorID string, appointmentID int64, date string) (*domain.Confirmation, error) {
	c, err := s.current(ctx, visitorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := c.SelectRescheduleDate(date); err != nil {
		return nil, err
	}
	return c, s.repo.SaveConfirmation(ctx, visitorID, c)
}

func (s *ConfirmationService) SelectRescheduleSlot(ctx context.Context, visitorID string, appointmentID int64, slot string) (*domain.Confirmation, error) {
	c, err := s.current(ctx, visitorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := c.SelectRescheduleSlot(slot); err != nil {
		return nil, err
	}
	return c, s.repo.SaveConfirmation(ctx, visitorID, c)
}

func (s *ConfirmationService) RescheduleCalendar(ctx context.Context, visitorID string, appointmentID int64, month string) (domain.Calendar, error) {
	c, err := s.current(ctx, visitorID, appointmentID)
	if err != nil {
		return domain.Calendar{}, err
	}
	if c.Reschedule == nil {
		return domain.Calendar{}, domain.ErrRescheduleNotOpen
	}
	if month == "" {
		month = c.Reschedule.Slots.FirstMonth(timezone.MonthIn(s.tz, s.now()))
	}
	return c.Reschedule.Slots.Calendar(month)
}

// SubmitReschedule sends the picked moment and assumes the backend's usual
// outcome locally: new datetime, status Waiting.
func (s *ConfirmationService) SubmitReschedule(ctx context.Context, visitorID string, appointmentID int64) (*domain.Confirmation, error) {
	c, err := s.current(ctx, visitorID, appointmentID)
	if err != nil {
		return nil, err
	}
	datetime, err := c.RescheduleDatetime()
	if err != nil {
		return nil, err
	}

	err = s.backend.RescheduleAppointment(ctx, appointmentID, datetime)
	s.recorder.ObserveAction("reschedule_appointment", err)
	if err != nil {
		return nil, domain.Failed("reschedule_appointment", MsgReschedule, err)
	}

	c.MarkRescheduled(datetime)
	s.persist(ctx, visitorID, c)

	s.audit.Dispatch(audit.Event{
		Actor:    visitorID,
		Role:     "client",
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{"datetime": datetime},
	})
	return c, nil
}

// persist saves a view after a backend mutation; store failures are logged, not returned.
func (s *ConfirmationService) persist(ctx context.Context, visitorID string, c *domain.Confirmation) {
	if err := s.repo.SaveConfirmation(ctx, visitorID, c); err != nil {
		s.logger.Warn().Err(err).Int64("appointment_id", c.Appointment.ID).Msg("confirmation view not saved")
	}
}
