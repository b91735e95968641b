package backend

import (
	"context"
	"net/url"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

type WorkerScope struct{ a authed }

func (WorkerScope) Role() Role { return RoleWorker }
func (WorkerScope) scope()     {}

func (s WorkerScope) Appointments(ctx context.Context) ([]models.WorkerAppointment, error) {
	var out []models.WorkerAppointment
	err := s.a.get(ctx, "worker_appointments", "/worker/appointments", &out)
	return out, err
}

// Schedule returns work hours between two optional YYYY-MM-DD bounds.
func (s WorkerScope) Schedule(ctx context.Context, startDate, endDate string) ([]models.WorkHours, error) {
	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}
	path := "/worker/work_schedule"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.WorkHours
	err := s.a.get(ctx, "worker_schedule", path, &out)
	return out, err
}
