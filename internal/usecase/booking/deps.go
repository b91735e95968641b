package booking

import (
	"context"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

// Backend is the slice of the public booking API the flows call.
type Backend interface {
	CitiesBranches(ctx context.Context, businessID int64) (*models.CitiesBranches, error)
	BranchWorkers(ctx context.Context, branchID int64) ([]models.Worker, error)
	WorkerServices(ctx context.Context, workerID int64) ([]models.Service, error)
	AvailableSlots(ctx context.Context, workerID, serviceID int64) (map[string][]string, error)
	ServicesByPosition(ctx context.Context, branchID int64) ([]models.PositionServices, error)
	ServiceWorkers(ctx context.Context, branchID, serviceID, positionID int64) ([]models.Worker, error)

	CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.AppointmentCreated, error)
	Appointment(ctx context.Context, id int64) (*models.AppointmentDetails, error)
	CancelAppointment(ctx context.Context, id int64) error
	RescheduleAppointment(ctx context.Context, id int64, datetime string) error
}

// Recorder counts wizard progress and booking outcomes.
type Recorder interface {
	ObserveAction(action string, err error)
	ObserveStep(flow, step string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAction(string, error) {}
func (nopRecorder) ObserveStep(string, string)  {}
