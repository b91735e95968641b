package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	domain "github.com/BruksfildServices01/booking-panel/internal/domain/booking"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/models"
	"github.com/BruksfildServices01/booking-panel/internal/timezone"
)

var (
	ErrWizardNotFound = httperr.ErrBusiness("wizard_not_found")
	ErrBranchNotFound = httperr.ErrBusiness("branch_not_found")
)

// WizardService runs the booking wizard. Each call loads the wizard, checks
// the step guard, performs the step's fetch and saves only on success, so a
// failed fetch leaves the stored wizard untouched.
type WizardService struct {
	backend  Backend
	repo     domain.Repository
	audit    *audit.Dispatcher
	recorder Recorder
	logger   zerolog.Logger

	tz  string
	now func() time.Time
}

func NewWizardService(
	backend Backend,
	repo domain.Repository,
	audit *audit.Dispatcher,
	recorder Recorder,
	logger zerolog.Logger,
	tz string,
) *WizardService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &WizardService{
		backend:  backend,
		repo:     repo,
		audit:    audit,
		recorder: recorder,
		logger:   logger.With().Str("component", "wizard").Logger(),
		tz:       tz,
		now:      time.Now,
	}
}

// ======================================================
// CITIES
// ======================================================

func (s *WizardService) Cities(ctx context.Context, businessID int64) (*models.CitiesBranches, error) {
	out, err := s.backend.CitiesBranches(ctx, businessID)
	if err != nil {
		return nil, domain.Failed("load_cities", MsgLoadCities, err)
	}
	return out, nil
}

// ======================================================
// START
// ======================================================

// Start opens a wizard for a branch of the business.
func (s *WizardService) Start(ctx context.Context, businessID, branchID int64) (*domain.Wizard, error) {
	cities, err := s.Cities(ctx, businessID)
	if err != nil {
		return nil, err
	}
	branch, ok := cities.FindBranch(branchID)
	if !ok {
		return nil, ErrBranchNotFound
	}

	w := domain.NewWizard(uuid.NewString(), branch)
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WizardService) Get(ctx context.Context, id string) (*domain.Wizard, error) {
	w, err := s.repo.GetWizard(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrWizardNotFound
	}
	return w, nil
}

// ======================================================
// FLOW
// ======================================================

func (s *WizardService) ChooseFlow(ctx context.Context, id, flow string) (*domain.Wizard, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := domain.ParseFlow(flow)
	if err != nil {
		return nil, err
	}
	if err := w.CanChooseFlow(); err != nil {
		return nil, err
	}

	var (
		workers []models.Worker
		groups  []models.PositionServices
	)
	switch f {
	case domain.FlowWorkerFirst:
		workers, err = s.backend.BranchWorkers(ctx, w.BranchID)
		if err != nil {
			return nil, domain.Failed("load_workers", MsgLoadWorkers, err)
		}
	case domain.FlowServiceFirst:
		groups, err = s.backend.ServicesByPosition(ctx, w.BranchID)
		if err != nil {
			return nil, domain.Failed("load_services_by_position", MsgLoadGroups, err)
		}
	}

	if err := w.ChooseFlow(f, workers, groups); err != nil {
		return nil, err
	}
	return w, s.save(ctx, w)
}

// ======================================================
// WORKER / SERVICE
// ======================================================

func (s *WizardService) SelectWorker(ctx context.Context, id string, workerID int64) (*domain.Wizard, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.CanSelectWorker(workerID); err != nil {
		return nil, err
	}

	if w.Flow == domain.FlowWorkerFirst {
		services, err := s.backend.WorkerServices(ctx, workerID)
		if err != nil {
			return nil, domain.Failed("load_services", MsgLoadServices, err)
		}
		if err := w.SelectWorkerFirst(workerID, services); err != nil {
			return nil, err
		}
		return w, s.save(ctx, w)
	}

	slots, err := s.slots(ctx, workerID, w.ServiceID)
	if err != nil {
		return nil, err
	}
	if err := w.SelectWorkerCounterpart(workerID, slots); err != nil {
		return nil, err
	}
	return w, s.save(ctx, w)
}

// SelectService picks a service; positionID scopes the service-first list
// and may be zero in the worker-first flow.
func (s *WizardService) SelectService(ctx context.Context, id string, serviceID, positionID int64) (*domain.Wizard, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.CanSelectService(serviceID, positionID); err != nil {
		return nil, err
	}

	if w.Flow == domain.FlowServiceFirst {
		positionID, err := w.ServicePosition(serviceID, positionID)
		if err != nil {
			return nil, err
		}
		workers, err := s.backend.ServiceWorkers(ctx, w.BranchID, serviceID, positionID)
		if err != nil {
			return nil, domain.Failed("load_service_workers", MsgLoadServiceWorker, err)
		}
		if err := w.SelectServiceFirst(serviceID, positionID, workers); err != nil {
			return nil, err
		}
		return w, s.save(ctx, w)
	}

	slots, err := s.slots(ctx, w.WorkerID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := w.SelectServiceCounterpart(serviceID, slots); err != nil {
		return nil, err
	}
	return w, s.save(ctx, w)
}

func (s *WizardService) slots(ctx context.Context, workerID, serviceID int64) (domain.SlotIndex, error) {
	if workerID == 0 || serviceID == 0 {
		return nil, domain.ErrSelectionNeeded
	}
	raw, err := s.backend.AvailableSlots(ctx, workerID, serviceID)
	if err != nil {
		return nil, domain.Failed("load_slots", MsgLoadSlots, err)
	}
	return domain.NewSlotIndex(raw), nil
}

// ======================================================
// DATE / SLOT
// ======================================================

func (s *WizardService) SelectDate(ctx context.Context, id, date string) (*domain.Wizard, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.SelectDate(date); err != nil {
		return nil, err
	}
	return w, s.save(ctx, w)
}

func (s *WizardService) SelectSlot(ctx context.Context, id, slot string) (*domain.Wizard, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := w.SelectSlot(slot); err != nil {
		return nil, err
	}
	return w, s.save(ctx, w)
}

// Calendar lays out month for the wizard's slot index. An empty month
// selects the month of the first free date, or the current month.
func (s *WizardService) Calendar(ctx context.Context, id, month string) (domain.Calendar, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return domain.Calendar{}, err
	}
	if month == "" {
		month = w.Slots.FirstMonth(timezone.MonthIn(s.tz, s.now()))
	}
	return w.Slots.Calendar(month)
}

// ======================================================
// SUBMIT
// ======================================================

type SubmitInput struct {
	WizardID      string
	VisitorID     string
	CustomerName  string
	CustomerPhone string
}

func (s *WizardService) Submit(ctx context.Context, in SubmitInput) (*domain.Wizard, *models.AppointmentCreated, error) {
	w, err := s.Get(ctx, in.WizardID)
	if err != nil {
		return nil, nil, err
	}
	req, err := w.Request(in.CustomerName, in.CustomerPhone)
	if err != nil {
		return nil, nil, err
	}

	created, err := s.backend.CreateAppointment(ctx, req)
	s.recorder.ObserveAction("create_appointment", err)
	if err != nil {
		return nil, nil, domain.Failed("create_appointment", MsgCreate, err)
	}

	w.MarkSubmitted(created.AppointmentID)
	if err := s.save(ctx, w); err != nil {
		s.logger.Warn().Err(err).Str("wizard_id", w.ID).Msg("appointment created but wizard not saved")
	}

	apID := created.AppointmentID
	s.audit.Dispatch(audit.Event{
		Actor:    in.VisitorID,
		Role:     "client",
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &apID,
		Metadata: map[string]any{
			"branch_id":  req.BranchID,
			"worker_id":  req.WorkerID,
			"service_id": req.ServiceID,
			"datetime":   req.Datetime,
			"flow":       w.Flow,
		},
	})

	return w, created, nil
}

func (s *WizardService) save(ctx context.Context, w *domain.Wizard) error {
	if err := s.repo.SaveWizard(ctx, w); err != nil {
		return err
	}
	s.recorder.ObserveStep(string(w.Flow), string(w.Step))
	return nil
}
