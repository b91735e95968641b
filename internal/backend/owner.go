package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

type OwnerScope struct{ a authed }

func (OwnerScope) Role() Role { return RoleOwner }
func (OwnerScope) scope()     {}

func (s OwnerScope) Catalog() Catalog { return Catalog{a: s.a, paths: ownerCatalog} }

// ---------- businesses ----------

func (s OwnerScope) Businesses(ctx context.Context) ([]models.Business, error) {
	var out []models.Business
	err := s.a.get(ctx, "owner_businesses", "/owner/businesses", &out)
	return out, err
}

func (s OwnerScope) CreateBusiness(ctx context.Context, in models.BusinessInput) (*models.Created, error) {
	var out models.Created
	if err := s.a.post(ctx, "owner_create_business", "/owner/businesses", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s OwnerScope) UpdateBusiness(ctx context.Context, id int64, in models.BusinessInput) error {
	return s.a.put(ctx, "owner_update_business", fmt.Sprintf("/owner/businesses/%d", id), in)
}

func (s OwnerScope) DeleteBusiness(ctx context.Context, id int64) error {
	return s.a.delete(ctx, "owner_delete_business", fmt.Sprintf("/owner/businesses/%d", id))
}

// ---------- branches ----------

func (s OwnerScope) Branches(ctx context.Context, businessID int64) ([]models.Branch, error) {
	var out []models.Branch
	err := s.a.get(ctx, "owner_branches", fmt.Sprintf("/owner/businesses/%d/branches", businessID), &out)
	return out, err
}

func (s OwnerScope) CreateBranch(ctx context.Context, businessID int64, in models.BranchInput) (*models.Created, error) {
	var out models.Created
	if err := s.a.post(ctx, "owner_create_branch", fmt.Sprintf("/owner/businesses/%d/branches", businessID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s OwnerScope) UpdateBranch(ctx context.Context, id int64, in models.BranchInput) error {
	return s.a.put(ctx, "owner_update_branch", fmt.Sprintf("/owner/branches/%d", id), in)
}

func (s OwnerScope) DeleteBranch(ctx context.Context, id int64) error {
	return s.a.delete(ctx, "owner_delete_branch", fmt.Sprintf("/owner/branches/%d", id))
}

// ---------- managers ----------

func (s OwnerScope) Managers(ctx context.Context) ([]models.Manager, error) {
	var out []models.Manager
	err := s.a.get(ctx, "owner_managers", "/owner/managers", &out)
	return out, err
}

// CreateManager registers an account with the manager role.
func (s OwnerScope) CreateManager(ctx context.Context, in models.AccountInput) (*models.Created, error) {
	in.Role = string(RoleManager)
	var out models.Created
	if err := s.a.post(ctx, "owner_create_manager", "/owner/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s OwnerScope) UpdateManager(ctx context.Context, id int64, in models.ManagerUpdate) error {
	return s.a.put(ctx, "owner_update_manager", fmt.Sprintf("/owner/managers/%d", id), in)
}

func (s OwnerScope) DeleteManager(ctx context.Context, id int64) error {
	return s.a.delete(ctx, "owner_delete_manager", fmt.Sprintf("/owner/managers/%d", id))
}

func (s OwnerScope) AssignManager(ctx context.Context, managerID, branchID int64) error {
	return s.a.post(ctx, "owner_assign_manager",
		fmt.Sprintf("/owner/branches/%d/managers/%d", branchID, managerID), struct{}{}, nil)
}

// ---------- reports ----------

func reportQuery(f models.ReportFilter) string {
	q := url.Values{}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.BusinessID > 0 {
		q.Set("business_id", strconv.FormatInt(f.BusinessID, 10))
	}
	if f.BranchID > 0 {
		q.Set("branch_id", strconv.FormatInt(f.BranchID, 10))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (s OwnerScope) RevenueReport(ctx context.Context, f models.ReportFilter) (*models.RevenueReport, error) {
	var out models.RevenueReport
	if err := s.a.get(ctx, "owner_report_revenue", "/owner/reports/revenue"+reportQuery(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s OwnerScope) ClientsReport(ctx context.Context, f models.ReportFilter) (*models.ClientsReport, error) {
	var out models.ClientsReport
	if err := s.a.get(ctx, "owner_report_clients", "/owner/reports/clients"+reportQuery(f), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s OwnerScope) ServicesReport(ctx context.Context, f models.ReportFilter) ([]models.ServiceUsage, error) {
	var out []models.ServiceUsage
	err := s.a.get(ctx, "owner_report_services", "/owner/reports/services"+reportQuery(f), &out)
	return out, err
}
