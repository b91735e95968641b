package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/middleware"
	"github.com/BruksfildServices01/booking-panel/internal/models"
	"github.com/BruksfildServices01/booking-panel/internal/session"
)

// catalog picks the position/service/price endpoints of the session role.
// Owners and managers have one each; other roles get 403.
func (h *PanelHandler) catalog(c *gin.Context) (backend.Catalog, *session.Session, bool) {
	s := middleware.CurrentSession(c)
	if s == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		c.Abort()
		return backend.Catalog{}, nil, false
	}

	sc, err := s.Scope(h.client)
	if err == nil {
		switch sc := sc.(type) {
		case backend.OwnerScope:
			return sc.Catalog(), s, true
		case backend.ManagerScope:
			return sc.Catalog(), s, true
		}
	}
	httperr.Forbidden(c, "forbidden_role", "This page is not available for your role")
	return backend.Catalog{}, nil, false
}

// catalogTarget reads the branch id and, for item routes, the item id.
func catalogTarget(c *gin.Context, withItem bool) (branchID, itemID int64, ok bool) {
	if branchID, ok = pathID(c, "id"); !ok {
		return 0, 0, false
	}
	if withItem {
		if itemID, ok = pathID(c, "itemID"); !ok {
			return 0, 0, false
		}
	}
	return branchID, itemID, true
}

////////////////////////////////////////////////////////
// POSITIONS
////////////////////////////////////////////////////////

func (h *PanelHandler) ListPositions(c *gin.Context) {
	cat, _, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, _, ok := catalogTarget(c, false)
	if !ok {
		return
	}
	list, err := cat.Positions(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err, "failed_to_load_positions", "Failed to load positions")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreatePosition(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, _, ok := catalogTarget(c, false)
	if !ok {
		return
	}
	var in models.PositionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	created, err := cat.CreatePosition(ctx, branchID, in)
	if err != nil {
		fail(c, err, "failed_to_create_position", "Failed to create position")
		return
	}
	writeAudit(h.audit, s, "position_created", "position", created.ID, in)

	reloaded(c, http.StatusCreated, "Position created", created.ID, positionsOf(ctx, cat, branchID), "Failed to load positions")
}

func (h *PanelHandler) UpdatePosition(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, id, ok := catalogTarget(c, true)
	if !ok {
		return
	}
	var in models.PositionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := cat.UpdatePosition(ctx, id, in); err != nil {
		fail(c, err, "failed_to_update_position", "Failed to update position")
		return
	}
	writeAudit(h.audit, s, "position_updated", "position", id, in)

	reloaded(c, http.StatusOK, "Position updated", id, positionsOf(ctx, cat, branchID), "Failed to load positions")
}

func (h *PanelHandler) DeletePosition(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, id, ok := catalogTarget(c, true)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := cat.DeletePosition(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_position", "Failed to delete position")
		return
	}
	writeAudit(h.audit, s, "position_deleted", "position", id, nil)

	reloaded(c, http.StatusOK, "Position deleted", id, positionsOf(ctx, cat, branchID), "Failed to load positions")
}

func positionsOf(ctx context.Context, cat backend.Catalog, branchID int64) func() ([]models.Position, error) {
	return func() ([]models.Position, error) { return cat.Positions(ctx, branchID) }
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PanelHandler) ListServices(c *gin.Context) {
	cat, _, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, _, ok := catalogTarget(c, false)
	if !ok {
		return
	}
	list, err := cat.Services(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err, "failed_to_load_services", "Failed to load services")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreateService(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, _, ok := catalogTarget(c, false)
	if !ok {
		return
	}
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	created, err := cat.CreateService(ctx, branchID, in)
	if err != nil {
		fail(c, err, "failed_to_create_service", "Failed to create service")
		return
	}
	writeAudit(h.audit, s, "service_created", "service", created.ID, in)

	reloaded(c, http.StatusCreated, "Service created", created.ID, servicesOf(ctx, cat, branchID), "Failed to load services")
}

func (h *PanelHandler) UpdateService(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, id, ok := catalogTarget(c, true)
	if !ok {
		return
	}
	var in models.ServiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := cat.UpdateService(ctx, id, in); err != nil {
		fail(c, err, "failed_to_update_service", "Failed to update service")
		return
	}
	writeAudit(h.audit, s, "service_updated", "service", id, in)

	reloaded(c, http.StatusOK, "Service updated", id, servicesOf(ctx, cat, branchID), "Failed to load services")
}

func (h *PanelHandler) DeleteService(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, id, ok := catalogTarget(c, true)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := cat.DeleteService(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_service", "Failed to delete service")
		return
	}
	writeAudit(h.audit, s, "service_deleted", "service", id, nil)

	reloaded(c, http.StatusOK, "Service deleted", id, servicesOf(ctx, cat, branchID), "Failed to load services")
}

func servicesOf(ctx context.Context, cat backend.Catalog, branchID int64) func() ([]models.Service, error) {
	return func() ([]models.Service, error) { return cat.Services(ctx, branchID) }
}

////////////////////////////////////////////////////////
// SERVICE COSTS
////////////////////////////////////////////////////////

func (h *PanelHandler) ListCosts(c *gin.Context) {
	cat, _, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, _, ok := catalogTarget(c, false)
	if !ok {
		return
	}
	list, err := cat.Costs(c.Request.Context(), branchID)
	if err != nil {
		fail(c, err, "failed_to_load_service_costs", "Failed to load service costs")
		return
	}
	httpresp.List(c, list)
}

func (h *PanelHandler) CreateCost(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, _, ok := catalogTarget(c, false)
	if !ok {
		return
	}
	var in models.ServiceCostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := cat.CreateCost(ctx, in); err != nil {
		fail(c, err, "failed_to_create_service_cost", "Failed to create service cost")
		return
	}
	writeAudit(h.audit, s, "service_cost_created", "service_cost", 0, in)

	reloaded(c, http.StatusCreated, "Service cost created", 0, costsOf(ctx, cat, branchID), "Failed to load service costs")
}

func (h *PanelHandler) UpdateCost(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, id, ok := catalogTarget(c, true)
	if !ok {
		return
	}
	var in models.PriceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := cat.UpdateCost(ctx, id, in.Price); err != nil {
		fail(c, err, "failed_to_update_service_cost", "Failed to update service cost")
		return
	}
	writeAudit(h.audit, s, "service_cost_updated", "service_cost", id, in)

	reloaded(c, http.StatusOK, "Service cost updated", id, costsOf(ctx, cat, branchID), "Failed to load service costs")
}

func (h *PanelHandler) DeleteCost(c *gin.Context) {
	cat, s, ok := h.catalog(c)
	if !ok {
		return
	}
	branchID, id, ok := catalogTarget(c, true)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := cat.DeleteCost(ctx, id); err != nil {
		fail(c, err, "failed_to_delete_service_cost", "Failed to delete service cost")
		return
	}
	writeAudit(h.audit, s, "service_cost_deleted", "service_cost", id, nil)

	reloaded(c, http.StatusOK, "Service cost deleted", id, costsOf(ctx, cat, branchID), "Failed to load service costs")
}

// costsOf reloads branch prices. Roles without a price list get an empty one.
func costsOf(ctx context.Context, cat backend.Catalog, branchID int64) func() ([]models.ServiceCost, error) {
	return func() ([]models.ServiceCost, error) {
		list, err := cat.Costs(ctx, branchID)
		if errors.Is(err, backend.ErrNotSupported) {
			return nil, nil
		}
		return list, err
	}
}
