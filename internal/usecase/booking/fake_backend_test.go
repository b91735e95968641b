package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

var errBackendDown = errors.New("backend down")

// fakeBackend serves the canned data of branch 5 "Main" in Kyiv.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool

	created      []models.AppointmentRequest
	canceled     []int64
	rescheduled  map[int64]string
	appointments map[int64]*models.AppointmentDetails
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		fail:        map[string]bool{},
		rescheduled: map[int64]string{},
		appointments: map[int64]*models.AppointmentDetails{
			42: {
				ID:       42,
				Worker:   &models.NamedRef{ID: 7, Name: "Olena"},
				Service:  &models.ServiceRef{ID: 9, Name: "Haircut", Duration: 30},
				Branch:   &models.BranchRef{ID: 5, Name: "Main", Locality: "Kyiv", Address: "Khreshchatyk 1"},
				Datetime: "2024-06-10T10:00:00",
				Status:   "Waiting",
				Price:    300,
			},
		},
	}
}

func (f *fakeBackend) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.fail[name] {
		return errBackendDown
	}
	return nil
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) CitiesBranches(_ context.Context, businessID int64) (*models.CitiesBranches, error) {
	if err := f.record("cities"); err != nil {
		return nil, err
	}
	if businessID != 1 {
		return &models.CitiesBranches{Branches: map[string][]models.Branch{}}, nil
	}
	return &models.CitiesBranches{
		BusinessName: "Acme",
		Branches: map[string][]models.Branch{
			"Kyiv": {{ID: 5, Name: "Main", Address: "Khreshchatyk 1"}},
		},
	}, nil
}

func (f *fakeBackend) BranchWorkers(context.Context, int64) ([]models.Worker, error) {
	if err := f.record("branch_workers"); err != nil {
		return nil, err
	}
	return []models.Worker{{ID: 7, Name: "Olena", PositionID: 2}, {ID: 8, Name: "Ivan", PositionID: 3}}, nil
}

func (f *fakeBackend) WorkerServices(_ context.Context, workerID int64) ([]models.Service, error) {
	if err := f.record("worker_services"); err != nil {
		return nil, err
	}
	return []models.Service{{ID: 9, Name: "Haircut", Duration: 30, Price: 300}}, nil
}

func (f *fakeBackend) AvailableSlots(_ context.Context, workerID, serviceID int64) (map[string][]string, error) {
	if err := f.record("available_slots"); err != nil {
		return nil, err
	}
	return map[string][]string{
		"2024-06-10": {"10:00", "10:30"},
		"2024-06-11": {"12:00"},
	}, nil
}

func (f *fakeBackend) ServicesByPosition(context.Context, int64) ([]models.PositionServices, error) {
	if err := f.record("services_by_position"); err != nil {
		return nil, err
	}
	return []models.PositionServices{{
		PositionID:   2,
		PositionName: "Barber",
		Services:     []models.Service{{ID: 9, Name: "Haircut", Duration: 30}},
	}}, nil
}

func (f *fakeBackend) ServiceWorkers(_ context.Context, branchID, serviceID, positionID int64) ([]models.Worker, error) {
	if err := f.record("service_workers"); err != nil {
		return nil, err
	}
	return []models.Worker{{ID: 7, Name: "Olena", PositionID: positionID}}, nil
}

func (f *fakeBackend) CreateAppointment(_ context.Context, req models.AppointmentRequest) (*models.AppointmentCreated, error) {
	if err := f.record("create_appointment"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.created = append(f.created, req)
	f.mu.Unlock()
	return &models.AppointmentCreated{Message: "Appointment created", AppointmentID: 42}, nil
}

func (f *fakeBackend) Appointment(_ context.Context, id int64) (*models.AppointmentDetails, error) {
	if err := f.record("get_appointment"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errBackendDown
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeBackend) CancelAppointment(_ context.Context, id int64) error {
	if err := f.record("cancel_appointment"); err != nil {
		return err
	}
	f.mu.Lock()
	f.canceled = append(f.canceled, id)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) RescheduleAppointment(_ context.Context, id int64, datetime string) error {
	if err := f.record("reschedule_appointment"); err != nil {
		return err
	}
	f.mu.Lock()
	f.rescheduled[id] = datetime
	f.mu.Unlock()
	return nil
}
