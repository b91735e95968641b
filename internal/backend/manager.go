package backend

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

type ManagerScope struct{ a authed }

func (ManagerScope) Role() Role { return RoleManager }
func (ManagerScope) scope()     {}

func (s ManagerScope) Catalog() Catalog { return Catalog{a: s.a, paths: managerCatalog} }

func (s ManagerScope) Branches(ctx context.Context) ([]models.Branch, error) {
	var out []models.Branch
	err := s.a.get(ctx, "manager_branches", "/manager/branches", &out)
	return out, err
}

func (s ManagerScope) Workers(ctx context.Context, branchID int64) ([]models.Worker, error) {
	var out []models.Worker
	err := s.a.get(ctx, "manager_workers", fmt.Sprintf("/manager/branches/%d/workers", branchID), &out)
	return out, err
}

func (s ManagerScope) Worker(ctx context.Context, id int64) (*models.Worker, error) {
	var out models.Worker
	if err := s.a.get(ctx, "manager_worker", fmt.Sprintf("/manager/workers/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s ManagerScope) UpdateWorker(ctx context.Context, id int64, in models.WorkerInput) error {
	return s.a.put(ctx, "manager_update_worker", fmt.Sprintf("/manager/workers/%d", id), in)
}

func (s ManagerScope) DeleteWorker(ctx context.Context, id int64) error {
	return s.a.delete(ctx, "manager_delete_worker", fmt.Sprintf("/manager/workers/%d", id))
}

func (s ManagerScope) WorkHours(ctx context.Context, workerID int64) ([]models.WorkHours, error) {
	var out []models.WorkHours
	err := s.a.get(ctx, "manager_work_hours", fmt.Sprintf("/manager/workers/%d/work-hours", workerID), &out)
	return out, err
}

func (s ManagerScope) CreateWorkHours(ctx context.Context, workerID int64, in models.WorkHoursInput) error {
	return s.a.post(ctx, "manager_create_work_hours", fmt.Sprintf("/manager/workers/%d/work-hours", workerID), in, nil)
}

func (s ManagerScope) UpdateWorkHours(ctx context.Context, id int64, in models.WorkHoursInput) error {
	return s.a.put(ctx, "manager_update_work_hours", fmt.Sprintf("/manager/work-hours/%d", id), in)
}

func (s ManagerScope) DeleteWorkHours(ctx context.Context, id int64) error {
	return s.a.delete(ctx, "manager_delete_work_hours", fmt.Sprintf("/manager/work-hours/%d", id))
}

func (s ManagerScope) BatchWorkHours(ctx context.Context, workerID int64, in models.BatchWorkHoursInput) error {
	return s.a.post(ctx, "manager_batch_work_hours", fmt.Sprintf("/manager/workers/%d/batch-work-hours", workerID), in, nil)
}
