package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/models"
	"github.com/BruksfildServices01/booking-panel/internal/validators"
)

////////////////////////////////////////////////////////
// BRANCHES
////////////////////////////////////////////////////////

type ManagerBranchesResponse struct {
	Data             []models.Branch `json:"data"`
	Total            int             `json:"total"`
	SelectedBranchID int64           `json:"selected_branch_id"`
}

func (h *PanelHandler) ManagerBranches(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	list, err := mgr.Branches(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_load_branches", "Failed to load branches")
		return
	}
	if list == nil {
		list = []models.Branch{}
	}
	httpresp.OK(c, ManagerBranchesResponse{
		Data:             list,
		Total:            len(list),
		SelectedBranchID: s.SelectedBranchID,
	})
}

// SelectBranch stores the branch the manager works on. Only branches the
// backend lists for the manager can be selected.
func (h *PanelHandler) SelectBranch(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	list, err := mgr.Branches(ctx)
	if err != nil {
		fail(c, err, "failed_to_load_branches", "Failed to load branches")
		return
	}
	found := false
	for _, b := range list {
		if b.ID == branchID {
			found = true
			break
		}
	}
	if !found {
		httperr.NotFound(c, "branch_not_found", "Branch not found")
		return
	}

	if err := h.sessions.SelectBranch(ctx, s, branchID); err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "session_unavailable", "Failed to select branch")
		return
	}
	httpresp.OK(c, gin.H{"selected_branch_id": branchID})
}

////////////////////////////////////////////////////////
// WORKERS
////////////////////////////////////////////////////////

func (h *PanelHandler) ListWorkers(c *gin.Context) {
	mgr, _, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := mgr.Workers(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err, "failed_to_load_workers", "Failed to load workers")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) GetWorker(c *gin.Context) {
	mgr, _, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	id, ok := pathID(c, "workerID")
	if !ok {
		return
	}
	w, err := mgr.Worker(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "failed_to_load_worker", "Failed to load worker")
		return
	}
	httpresp.OK(c, w)
}

func (h *PanelHandler) UpdateWorker(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "workerID")
	if !ok {
		return
	}
	var in models.WorkerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := mgr.UpdateWorker(ctx, id, in); err != nil {
		fail(c, err, "failed_to_update_worker", "Failed to update worker")
		return
	}
	writeAudit(h.audit, s, "worker_updated", "worker", id, in)

	reloaded(c, http.StatusOK, "Worker updated", id, workersOf(ctx, mgr, branchID), "Failed to load workers")
}

func (h *PanelHandler) DeleteWorker(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "workerID")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := mgr.DeleteWorker(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_worker", "Failed to delete worker")
		return
	}
	writeAudit(h.audit, s, "worker_deleted", "worker", id, nil)

	reloaded(c, http.StatusOK, "Worker deleted", id, workersOf(ctx, mgr, branchID), "Failed to load workers")
}

func workersOf(ctx context.Context, mgr backend.ManagerScope, branchID int64) func() ([]models.Worker, error) {
	return func() ([]models.Worker, error) { return mgr.Workers(ctx, branchID) }
}

////////////////////////////////////////////////////////
// WORK HOURS
////////////////////////////////////////////////////////

func (h *PanelHandler) ListWorkHours(c *gin.Context) {
	mgr, _, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := mgr.WorkHours(c.Request.Context(), workerID)
	if err != nil {
		fail(c, err, "failed_to_load_work_hours", "Failed to load work hours")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreateWorkHours(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := bindWorkHours(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := mgr.CreateWorkHours(ctx, workerID, in); err != nil {
		fail(c, err, "failed_to_create_work_hours", "Failed to create work hours")
		return
	}
	writeAudit(h.audit, s, "work_hours_created", "worker", workerID, in)

	reloaded(c, http.StatusCreated, "Work hours created", 0, workHoursOf(ctx, mgr, workerID), "Failed to load work hours")
}

func (h *PanelHandler) UpdateWorkHours(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "hoursID")
	if !ok {
		return
	}
	in, ok := bindWorkHours(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := mgr.UpdateWorkHours(ctx, id, in); err != nil {
		fail(c, err, "failed_to_update_work_hours", "Failed to update work hours")
		return
	}
	writeAudit(h.audit, s, "work_hours_updated", "work_hours", id, in)

	reloaded(c, http.StatusOK, "Work hours updated", id, workHoursOf(ctx, mgr, workerID), "Failed to load work hours")
}

func (h *PanelHandler) DeleteWorkHours(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	id, ok := pathID(c, "hoursID")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := mgr.DeleteWorkHours(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_work_hours", "Failed to delete work hours")
		return
	}
	writeAudit(h.audit, s, "work_hours_deleted", "work_hours", id, nil)

	reloaded(c, http.StatusOK, "Work hours deleted", id, workHoursOf(ctx, mgr, workerID), "Failed to load work hours")
}

func (h *PanelHandler) BatchWorkHours(c *gin.Context) {
	mgr, s, ok := panelScope[backend.ManagerScope](c, h.client)
	if !ok {
		return
	}
	workerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.BatchWorkHoursInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}
	for _, d := range in.Days {
		if !validators.ShiftOrdered(d.StartWorkHour, d.EndWorkHour) {
			httperr.BadRequest(c, "invalid_work_hours", "Start hour must be before end hour")
			return
		}
	}

	ctx := c.Request.Context()
	if err := mgr.BatchWorkHours(ctx, workerID, in); err != nil {
		fail(c, err, "failed_to_save_work_hours", "Failed to save work hours")
		return
	}
	writeAudit(h.audit, s, "work_hours_batch", "worker", workerID, gin.H{"days": len(in.Days)})

	reloaded(c, http.StatusOK, "Work hours saved", 0, workHoursOf(ctx, mgr, workerID), "Failed to load work hours")
}

func bindWorkHours(c *gin.Context) (models.WorkHoursInput, bool) {
	var in models.WorkHoursInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return in, false
	}
	if !validators.ShiftOrdered(in.StartWorkHour, in.EndWorkHour) {
		httperr.BadRequest(c, "invalid_work_hours", "Start hour must be before end hour")
		return in, false
	}
	return in, true
}

func workHoursOf(ctx context.Context, mgr backend.ManagerScope, workerID int64) func() ([]models.WorkHours, error) {
	return func() ([]models.WorkHours, error) { return mgr.WorkHours(ctx, workerID) }
}
