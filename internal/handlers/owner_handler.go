package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/models"
	"github.com/BruksfildServices01/booking-panel/internal/validators"
)

////////////////////////////////////////////////////////
// BUSINESSES
////////////////////////////////////////////////////////

func (h *PanelHandler) ListBusinesses(c *gin.Context) {
	owner, _, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	list, err := owner.Businesses(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_load_businesses", "Failed to load businesses")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreateBusiness(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	var in models.BusinessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	created, err := owner.CreateBusiness(ctx, in)
	if err != nil {
		fail(c, err, "failed_to_create_business", "Failed to create business")
		return
	}
	writeAudit(h.audit, s, "business_created", "business", created.ID, in)

	reloaded(c, http.StatusCreated, "Business created", created.ID, func() ([]models.Business, error) {
		return owner.Businesses(ctx)
	}, "Failed to load businesses")
}

func (h *PanelHandler) UpdateBusiness(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.BusinessInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := owner.UpdateBusiness(ctx, id, in); err != nil {
		fail(c, err, "failed_to_update_business", "Failed to update business")
		return
	}
	writeAudit(h.audit, s, "business_updated", "business", id, in)

	reloaded(c, http.StatusOK, "Business updated", id, func() ([]models.Business, error) {
		return owner.Businesses(ctx)
	}, "Failed to load businesses")
}

func (h *PanelHandler) DeleteBusiness(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := owner.DeleteBusiness(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_business", "Failed to delete business")
		return
	}
	writeAudit(h.audit, s, "business_deleted", "business", id, nil)

	reloaded(c, http.StatusOK, "Business deleted", id, func() ([]models.Business, error) {
		return owner.Businesses(ctx)
	}, "Failed to load businesses")
}

////////////////////////////////////////////////////////
// BRANCHES
////////////////////////////////////////////////////////

func (h *PanelHandler) ListBusinessBranches(c *gin.Context) {
	owner, _, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := owner.Branches(c.Request.Context(), businessID)
	if err != nil {
		fail(c, err, "failed_to_load_branches", "Failed to load branches")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreateBranch(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := bindBranch(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	created, err := owner.CreateBranch(ctx, businessID, in)
	if err != nil {
		fail(c, err, "failed_to_create_branch", "Failed to create branch")
		return
	}
	writeAudit(h.audit, s, "branch_created", "branch", created.ID, in)

	reloaded(c, http.StatusCreated, "Branch created", created.ID, func() ([]models.Branch, error) {
		return owner.Branches(ctx, businessID)
	}, "Failed to load branches")
}

func (h *PanelHandler) UpdateBranch(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}
	branchID, ok := pathID(c, "branchID")
	if !ok {
		return
	}
	in, ok := bindBranch(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := owner.UpdateBranch(ctx, branchID, in); err != nil {
		fail(c, err, "failed_to_update_branch", "Failed to update branch")
		return
	}
	writeAudit(h.audit, s, "branch_updated", "branch", branchID, in)

	reloaded(c, http.StatusOK, "Branch updated", branchID, func() ([]models.Branch, error) {
		return owner.Branches(ctx, businessID)
	}, "Failed to load branches")
}

func (h *PanelHandler) DeleteBranch(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}
	branchID, ok := pathID(c, "branchID")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := owner.DeleteBranch(ctx, branchID); err != nil {
		fail(c, err, "failed_to_delete_branch", "Failed to delete branch")
		return
	}
	writeAudit(h.audit, s, "branch_deleted", "branch", branchID, nil)

	reloaded(c, http.StatusOK, "Branch deleted", branchID, func() ([]models.Branch, error) {
		return owner.Branches(ctx, businessID)
	}, "Failed to load branches")
}

func bindBranch(c *gin.Context) (models.BranchInput, bool) {
	var in models.BranchInput
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

////////////////////////////////////////////////////////
// MANAGERS
////////////////////////////////////////////////////////

func (h *PanelHandler) ListManagers(c *gin.Context) {
	owner, _, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	list, err := owner.Managers(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_load_managers", "Failed to load managers")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreateManager(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	var in models.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}
	if !h.checkEmail(c, in.Email) {
		return
	}

	ctx := c.Request.Context()
	created, err := owner.CreateManager(ctx, in)
	if err != nil {
		fail(c, err, "failed_to_create_manager", "Failed to create manager")
		return
	}
	writeAudit(h.audit, s, "manager_created", "manager", created.ID, gin.H{"email": in.Email})

	reloaded(c, http.StatusCreated, "Manager created", created.ID, func() ([]models.Manager, error) {
		return owner.Managers(ctx)
	}, "Failed to load managers")
}

func (h *PanelHandler) UpdateManager(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in models.ManagerUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := owner.UpdateManager(ctx, id, in); err != nil {
		fail(c, err, "failed_to_update_manager", "Failed to update manager")
		return
	}
	writeAudit(h.audit, s, "manager_updated", "manager", id, in)

	reloaded(c, http.StatusOK, "Manager updated", id, func() ([]models.Manager, error) {
		return owner.Managers(ctx)
	}, "Failed to load managers")
}

func (h *PanelHandler) DeleteManager(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := owner.DeleteManager(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_manager", "Failed to delete manager")
		return
	}
	writeAudit(h.audit, s, "manager_deleted", "manager", id, nil)

	reloaded(c, http.StatusOK, "Manager deleted", id, func() ([]models.Manager, error) {
		return owner.Managers(ctx)
	}, "Failed to load managers")
}

func (h *PanelHandler) AssignManager(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	branchID, ok := pathID(c, "id")
	if !ok {
		return
	}
	managerID, ok := pathID(c, "managerID")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := owner.AssignManager(ctx, managerID, branchID); err != nil {
		fail(c, err, "failed_to_assign_manager", "Failed to assign manager")
		return
	}
	writeAudit(h.audit, s, "manager_assigned", "manager", managerID, gin.H{"branch_id": branchID})

	reloaded(c, http.StatusOK, "Manager assigned", managerID, func() ([]models.Manager, error) {
		return owner.Managers(ctx)
	}, "Failed to load managers")
}
