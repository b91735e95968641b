package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

var ErrNotSupported = errors.New("operation not available for this role")

// catalogPaths pins the position/service/price endpoints of one role.
// A nil function means the role has no such endpoint.
type catalogPaths struct {
	prefix          string
	branchPositions func(branchID int64) string
	position        func(id int64) string
	branchServices  func(branchID int64) string
	service         func(id int64) string
	branchCosts     func(branchID int64) string
	createCost      func(in models.ServiceCostInput) string
	cost            func(id int64) string
}

var ownerCatalog = catalogPaths{
	prefix:          "owner",
	branchPositions: func(id int64) string { return fmt.Sprintf("/owner/branches/%d/positions", id) },
	position:        func(id int64) string { return fmt.Sprintf("/owner/positions/%d", id) },
	branchServices:  func(id int64) string { return fmt.Sprintf("/owner/branches/%d/services", id) },
	service:         func(id int64) string { return fmt.Sprintf("/owner/services/%d", id) },
	branchCosts:     func(id int64) string { return fmt.Sprintf("/owner/branches/%d/service_costs", id) },
	createCost: func(in models.ServiceCostInput) string {
		return fmt.Sprintf("/owner/positions/%d/service_costs", in.PositionID)
	},
	cost: func(id int64) string { return fmt.Sprintf("/owner/service_costs/%d", id) },
}

var managerCatalog = catalogPaths{
	prefix:          "manager",
	branchPositions: func(id int64) string { return fmt.Sprintf("/manager/branches/%d/positions", id) },
	position:        func(id int64) string { return fmt.Sprintf("/manager/positions/%d", id) },
	branchServices:  func(id int64) string { return fmt.Sprintf("/manager/branches/%d/services", id) },
	service:         func(id int64) string { return fmt.Sprintf("/manager/services/%d", id) },
	createCost: func(in models.ServiceCostInput) string {
		return fmt.Sprintf("/manager/services/%d/costs", in.ServiceID)
	},
	cost: func(id int64) string { return fmt.Sprintf("/manager/service-costs/%d", id) },
}

// Catalog manages positions, services and service prices of a branch.
type Catalog struct {
	a     authed
	paths catalogPaths
}

func (c Catalog) endpoint(name string) string {
	return c.paths.prefix + "_" + name
}

func (c Catalog) Positions(ctx context.Context, branchID int64) ([]models.Position, error) {
	var out []models.Position
	err := c.a.get(ctx, c.endpoint("positions"), c.paths.branchPositions(branchID), &out)
	return out, err
}

func (c Catalog) CreatePosition(ctx context.Context, branchID int64, in models.PositionInput) (*models.Created, error) {
	var out models.Created
	if err := c.a.post(ctx, c.endpoint("create_position"), c.paths.branchPositions(branchID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Catalog) UpdatePosition(ctx context.Context, id int64, in models.PositionInput) error {
	return c.a.put(ctx, c.endpoint("update_position"), c.paths.position(id), in)
}

func (c Catalog) DeletePosition(ctx context.Context, id int64) error {
	return c.a.delete(ctx, c.endpoint("delete_position"), c.paths.position(id))
}

func (c Catalog) Services(ctx context.Context, branchID int64) ([]models.Service, error) {
	var out []models.Service
	err := c.a.get(ctx, c.endpoint("services"), c.paths.branchServices(branchID), &out)
	return out, err
}

func (c Catalog) CreateService(ctx context.Context, branchID int64, in models.ServiceInput) (*models.Created, error) {
	var out models.Created
	if err := c.a.post(ctx, c.endpoint("create_service"), c.paths.branchServices(branchID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c Catalog) UpdateService(ctx context.Context, id int64, in models.ServiceInput) error {
	return c.a.put(ctx, c.endpoint("update_service"), c.paths.service(id), in)
}

func (c Catalog) DeleteService(ctx context.Context, id int64) error {
	return c.a.delete(ctx, c.endpoint("delete_service"), c.paths.service(id))
}

// Costs lists prices per position for a branch. Managers have no list endpoint.
func (c Catalog) Costs(ctx context.Context, branchID int64) ([]models.ServiceCost, error) {
	if c.paths.branchCosts == nil {
		return nil, ErrNotSupported
	}
	var out []models.ServiceCost
	err := c.a.get(ctx, c.endpoint("service_costs"), c.paths.branchCosts(branchID), &out)
	return out, err
}

func (c Catalog) CreateCost(ctx context.Context, in models.ServiceCostInput) error {
	return c.a.post(ctx, c.endpoint("create_service_cost"), c.paths.createCost(in), in, nil)
}

func (c Catalog) UpdateCost(ctx context.Context, id int64, price int) error {
	return c.a.put(ctx, c.endpoint("update_service_cost"), c.paths.cost(id), models.PriceInput{Price: price})
}

func (c Catalog) DeleteCost(ctx context.Context, id int64) error {
	return c.a.delete(ctx, c.endpoint("delete_service_cost"), c.paths.cost(id))
}
