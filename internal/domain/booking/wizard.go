package booking

import (
	"strings"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

type Step string

const (
	StepChooseFlow            Step = "choose_flow"
	StepChooseWorkerOrService Step = "choose_worker_or_service"
	StepChooseCounterpart     Step = "choose_counterpart"
	StepChooseDate            Step = "choose_date"
	StepChooseSlot            Step = "choose_slot"
	StepEnterDetails          Step = "enter_details"
	StepSubmitted             Step = "submitted"
)

var stepOrder = map[Step]int{
	StepChooseFlow:            0,
	StepChooseWorkerOrService: 1,
	StepChooseCounterpart:     2,
	StepChooseDate:            3,
	StepChooseSlot:            4,
	StepEnterDetails:          5,
	StepSubmitted:             6,
}

// between reports whether s lies in [from, to].
func (s Step) between(from, to Step) bool {
	r, ok := stepOrder[s]
	return ok && r >= stepOrder[from] && r <= stepOrder[to]
}

type Flow string

const (
	// FlowWorkerFirst picks a worker, then one of the worker's services.
	FlowWorkerFirst Flow = "worker_first"
	// FlowServiceFirst picks a service at a position, then a worker able to do it.
	FlowServiceFirst Flow = "service_first"
)

func ParseFlow(s string) (Flow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "worker_first", "worker", "a", "1":
		return FlowWorkerFirst, nil
	case "service_first", "service", "b", "2":
		return FlowServiceFirst, nil
	}
	return "", ErrInvalidFlow
}

// Wizard is the booking progress of one visitor for one branch.
// Every mutating method checks its guard before touching any field, so a
// rejected call leaves the wizard as it was.
type Wizard struct {
	ID       string        `json:"id"`
	BranchID int64         `json:"branch_id"`
	Branch   models.Branch `json:"branch"`
	Step     Step          `json:"step"`
	Flow     Flow          `json:"flow,omitempty"`

	WorkerID   int64  `json:"worker_id,omitempty"`
	ServiceID  int64  `json:"service_id,omitempty"`
	PositionID int64  `json:"position_id,omitempty"`
	Date       string `json:"date,omitempty"`
	Slot       string `json:"slot,omitempty"`

	Workers  []models.Worker           `json:"workers,omitempty"`
	Services []models.Service          `json:"services,omitempty"`
	Groups   []models.PositionServices `json:"groups,omitempty"`
	Slots    SlotIndex                 `json:"slots,omitempty"`

	AppointmentID int64 `json:"appointment_id,omitempty"`
}

func NewWizard(id string, branch models.Branch) *Wizard {
	return &Wizard{
		ID:       id,
		BranchID: branch.ID,
		Branch:   branch,
		Step:     StepChooseFlow,
	}
}

// ---------- flow ----------

// CanChooseFlow allows (re)starting either flow until the booking is submitted.
func (w *Wizard) CanChooseFlow() error {
	if w.Step == StepSubmitted {
		return ErrInvalidStep
	}
	return nil
}

// ChooseFlow starts flow f with the first list the visitor picks from:
// branch workers for worker-first, services by position for service-first.
func (w *Wizard) ChooseFlow(f Flow, workers []models.Worker, groups []models.PositionServices) error {
	if err := w.CanChooseFlow(); err != nil {
		return err
	}
	if f != FlowWorkerFirst && f != FlowServiceFirst {
		return ErrInvalidFlow
	}

	w.resetFrom(StepChooseWorkerOrService)
	w.Flow = f
	w.Workers, w.Services, w.Groups = nil, nil, nil
	if f == FlowWorkerFirst {
		w.Workers = workers
	} else {
		w.Groups = groups
	}
	w.Step = StepChooseWorkerOrService
	return nil
}

// ---------- worker ----------

// CanSelectWorker checks a worker pick. In worker-first the worker is the
// first pick; in service-first it is the counterpart. Both may be re-picked
// until submission.
func (w *Wizard) CanSelectWorker(workerID int64) error {
	switch w.Flow {
	case FlowWorkerFirst:
		if !w.Step.between(StepChooseWorkerOrService, StepEnterDetails) {
			return ErrInvalidStep
		}
	case FlowServiceFirst:
		if !w.Step.between(StepChooseCounterpart, StepEnterDetails) {
			return ErrInvalidStep
		}
	default:
		return ErrInvalidStep
	}
	if !w.offersWorker(workerID) {
		return ErrUnknownWorker
	}
	return nil
}

// SelectWorkerFirst records the first pick of the worker-first flow and the
// services that worker offers.
func (w *Wizard) SelectWorkerFirst(workerID int64, services []models.Service) error {
	if w.Flow != FlowWorkerFirst {
		return ErrInvalidStep
	}
	if err := w.CanSelectWorker(workerID); err != nil {
		return err
	}
	w.resetFrom(StepChooseCounterpart)
	w.WorkerID = workerID
	w.ServiceID = 0
	w.Services = services
	w.Step = StepChooseCounterpart
	return nil
}

// SelectWorkerCounterpart completes the service-first selection.
func (w *Wizard) SelectWorkerCounterpart(workerID int64, slots SlotIndex) error {
	if w.Flow != FlowServiceFirst {
		return ErrInvalidStep
	}
	if err := w.CanSelectWorker(workerID); err != nil {
		return err
	}
	w.WorkerID = workerID
	return w.enterDate(slots)
}

// ---------- service ----------

// CanSelectService checks a service pick; positionID matters only in the
// service-first flow where services are grouped by position.
func (w *Wizard) CanSelectService(serviceID, positionID int64) error {
	switch w.Flow {
	case FlowServiceFirst:
		if !w.Step.between(StepChooseWorkerOrService, StepEnterDetails) {
			return ErrInvalidStep
		}
		if _, err := w.ServicePosition(serviceID, positionID); err != nil {
			return err
		}
	case FlowWorkerFirst:
		if !w.Step.between(StepChooseCounterpart, StepEnterDetails) {
			return ErrInvalidStep
		}
		if !w.offersService(serviceID) {
			return ErrUnknownService
		}
	default:
		return ErrInvalidStep
	}
	return nil
}

// SelectServiceFirst records the first pick of the service-first flow and
// the workers able to perform it.
func (w *Wizard) SelectServiceFirst(serviceID, positionID int64, workers []models.Worker) error {
	if w.Flow != FlowServiceFirst {
		return ErrInvalidStep
	}
	if !w.Step.between(StepChooseWorkerOrService, StepEnterDetails) {
		return ErrInvalidStep
	}
	positionID, err := w.ServicePosition(serviceID, positionID)
	if err != nil {
		return err
	}
	w.resetFrom(StepChooseCounterpart)
	w.ServiceID = serviceID
	w.PositionID = positionID
	w.WorkerID = 0
	w.Workers = workers
	w.Step = StepChooseCounterpart
	return nil
}

// SelectServiceCounterpart completes the worker-first selection.
func (w *Wizard) SelectServiceCounterpart(serviceID int64, slots SlotIndex) error {
	if w.Flow != FlowWorkerFirst {
		return ErrInvalidStep
	}
	if err := w.CanSelectService(serviceID, 0); err != nil {
		return err
	}
	w.ServiceID = serviceID
	return w.enterDate(slots)
}

// ---------- date / slot ----------

func (w *Wizard) enterDate(slots SlotIndex) error {
	if w.WorkerID == 0 || w.ServiceID == 0 {
		return ErrSelectionNeeded
	}
	w.Slots = slots
	w.Date, w.Slot = "", ""
	w.Step = StepChooseDate
	return nil
}

func (w *Wizard) SelectDate(date string) error {
	if !w.Step.between(StepChooseDate, StepEnterDetails) {
		return ErrInvalidStep
	}
	if !w.Slots.Has(date) {
		return ErrDateUnavailable
	}
	w.Date = date
	w.Slot = ""
	w.Step = StepChooseSlot
	return nil
}

func (w *Wizard) SelectSlot(slot string) error {
	if !w.Step.between(StepChooseSlot, StepEnterDetails) || w.Date == "" {
		return ErrInvalidStep
	}
	if !w.Slots.Contains(w.Date, slot) {
		return ErrSlotUnavailable
	}
	w.Slot = slot
	w.Step = StepEnterDetails
	return nil
}

// ---------- submit ----------

// Request builds the appointment request from the last picked date and slot.
func (w *Wizard) Request(name, phone string) (models.AppointmentRequest, error) {
	if w.Step != StepEnterDetails {
		return models.AppointmentRequest{}, ErrInvalidStep
	}
	if w.WorkerID == 0 || w.ServiceID == 0 {
		return models.AppointmentRequest{}, ErrSelectionNeeded
	}
	if !w.Slots.Contains(w.Date, w.Slot) {
		return models.AppointmentRequest{}, ErrSlotUnavailable
	}
	name, phone = strings.TrimSpace(name), strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return models.AppointmentRequest{}, ErrDetailsRequired
	}

	return models.AppointmentRequest{
		WorkerID:      w.WorkerID,
		ServiceID:     w.ServiceID,
		Datetime:      Datetime(w.Date, w.Slot),
		CustomerName:  name,
		CustomerPhone: phone,
		BranchID:      w.BranchID,
	}, nil
}

func (w *Wizard) MarkSubmitted(appointmentID int64) {
	w.AppointmentID = appointmentID
	w.Step = StepSubmitted
}

// ---------- helpers ----------

// resetFrom clears every selection made at or after step s.
func (w *Wizard) resetFrom(s Step) {
	if stepOrder[s] <= stepOrder[StepChooseWorkerOrService] {
		w.Flow = ""
		w.WorkerID, w.ServiceID, w.PositionID = 0, 0, 0
	}
	w.Slots = nil
	w.Date, w.Slot = "", ""
}

func (w *Wizard) offersWorker(id int64) bool {
	for _, wk := range w.Workers {
		if wk.ID == id {
			return true
		}
	}
	return false
}

func (w *Wizard) offersService(id int64) bool {
	for _, s := range w.Services {
		if s.ID == id {
			return true
		}
	}
	return false
}

// ServicePosition resolves the position a service-first pick is priced
// under. Without a position the service must belong to exactly one group.
func (w *Wizard) ServicePosition(serviceID, positionID int64) (int64, error) {
	var found []int64
	for _, g := range w.Groups {
		if positionID != 0 && g.PositionID != positionID {
			continue
		}
		for _, s := range g.Services {
			if s.ID == serviceID {
				found = append(found, g.PositionID)
				break
			}
		}
	}
	switch {
	case len(found) == 0:
		return 0, ErrUnknownService
	case positionID != 0:
		return positionID, nil
	case len(found) > 1:
		return 0, ErrPositionRequired
	}
	return found[0], nil
}

// SelectedWorker returns the offered worker matching WorkerID.
func (w *Wizard) SelectedWorker() (models.Worker, bool) {
	for _, wk := range w.Workers {
		if wk.ID == w.WorkerID {
			return wk, true
		}
	}
	return models.Worker{}, false
}
