package repository

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/booking-panel/internal/domain/booking"
)

// BookingStateRepository persists wizards and confirmation views in a Store.
type BookingStateRepository struct {
	store Store
	ttl   time.Duration
}

func NewBookingStateRepository(store Store, ttl time.Duration) *BookingStateRepository {
	return &BookingStateRepository{store: store, ttl: ttl}
}

var _ domain.Repository = (*BookingStateRepository)(nil)

// --------------------------------------------------
// Wizard
// --------------------------------------------------

func wizardKey(id string) string {
	return "wizard:" + id
}

func (r *BookingStateRepository) GetWizard(ctx context.Context, id string) (*domain.Wizard, error) {
	var w domain.Wizard
	ok, err := r.store.Get(ctx, wizardKey(id), &w)
	if err != nil || !ok {
		return nil, err
	}
	return &w, nil
}

func (r *BookingStateRepository) SaveWizard(ctx context.Context, w *domain.Wizard) error {
	return r.store.Set(ctx, wizardKey(w.ID), w, r.ttl)
}

// --------------------------------------------------
// Confirmation
// --------------------------------------------------

func confirmationKey(visitorID string, appointmentID int64) string {
	return fmt.Sprintf("confirmation:%s:%d", visitorID, appointmentID)
}

func (r *BookingStateRepository) GetConfirmation(
	ctx context.Context,
	visitorID string,
	appointmentID int64,
) (*domain.Confirmation, error) {

	var c domain.Confirmation
	ok, err := r.store.Get(ctx, confirmationKey(visitorID, appointmentID), &c)
	if err != nil || !ok {
		return nil, err
	}
	return &c, nil
}

func (r *BookingStateRepository) SaveConfirmation(
	ctx context.Context,
	visitorID string,
	c *domain.Confirmation,
) error {
	return r.store.Set(ctx, confirmationKey(visitorID, c.Appointment.ID), c, r.ttl)
}
