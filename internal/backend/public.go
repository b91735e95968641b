package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

// CitiesBranches lists branches of a business grouped by locality.
func (c *Client) CitiesBranches(ctx context.Context, businessID int64) (*models.CitiesBranches, error) {
	cacheKey := fmt.Sprintf("cities:%d", businessID)
	var out models.CitiesBranches
	if c.readCache(ctx, cacheKey, &out) {
		return &out, nil
	}

	err := c.do(ctx, call{
		endpoint: "cities",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/cities/%d", businessID),
	}, &out)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, out)
	return &out, nil
}

func (c *Client) BranchWorkers(ctx context.Context, branchID int64) ([]models.Worker, error) {
	var out []models.Worker
	err := c.do(ctx, call{
		endpoint: "branch_workers",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/branches/%d/workers", branchID),
	}, &out)
	return out, err
}

func (c *Client) WorkerServices(ctx context.Context, workerID int64) ([]models.Service, error) {
	var out []models.Service
	err := c.do(ctx, call{
		endpoint: "worker_services",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/workers/%d/services", workerID),
	}, &out)
	return out, err
}

// AvailableSlots returns the raw date -> time labels map for a worker/service pair.
func (c *Client) AvailableSlots(ctx context.Context, workerID, serviceID int64) (map[string][]string, error) {
	out := map[string][]string{}
	err := c.do(ctx, call{
		endpoint: "available_slots",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/workers/%d/services/%d/available_slots", workerID, serviceID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ServicesByPosition(ctx context.Context, branchID int64) ([]models.PositionServices, error) {
	cacheKey := fmt.Sprintf("services_by_position:%d", branchID)
	var out []models.PositionServices
	if c.readCache(ctx, cacheKey, &out) {
		return out, nil
	}

	err := c.do(ctx, call{
		endpoint: "services_by_position",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/branches/%d/services_by_position", branchID),
	}, &out)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, out)
	return out, nil
}

// ServiceWorkers lists branch workers able to perform a service. A zero
// positionID lets the backend match every position priced for the service.
func (c *Client) ServiceWorkers(ctx context.Context, branchID, serviceID, positionID int64) ([]models.Worker, error) {
	path := fmt.Sprintf("/branches/%d/services/%d/workers", branchID, serviceID)
	if positionID > 0 {
		q := url.Values{}
		q.Set("position_id", strconv.FormatInt(positionID, 10))
		path += "?" + q.Encode()
	}

	var out []models.Worker
	err := c.do(ctx, call{
		endpoint: "service_workers",
		method:   http.MethodGet,
		path:     path,
	}, &out)
	return out, err
}

func (c *Client) CreateAppointment(ctx context.Context, req models.AppointmentRequest) (*models.AppointmentCreated, error) {
	var out models.AppointmentCreated
	err := c.do(ctx, call{
		endpoint: "create_appointment",
		method:   http.MethodPost,
		path:     "/appointments",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Appointment(ctx context.Context, id int64) (*models.AppointmentDetails, error) {
	var out models.AppointmentDetails
	err := c.do(ctx, call{
		endpoint: "get_appointment",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/appointments/%d", id),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelAppointment(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		endpoint: "cancel_appointment",
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/appointments/%d/cancel", id),
	}, nil)
}

func (c *Client) RescheduleAppointment(ctx context.Context, id int64, datetime string) error {
	return c.do(ctx, call{
		endpoint: "reschedule_appointment",
		method:   http.MethodPatch,
		path:     fmt.Sprintf("/appointments/%d/reschedule", id),
		body:     models.RescheduleRequest{Datetime: datetime},
	}, nil)
}

// Login exchanges admin credentials for an access token and role.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.do(ctx, call{
		endpoint: "login",
		method:   http.MethodPost,
		path:     "/login",
		body:     models.LoginRequest{Email: email, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
