package booking

import "context"

// Repository keeps wizard and confirmation state between requests.
// A miss returns (nil, nil).
type Repository interface {
	// -------- Wizard --------
	GetWizard(ctx context.Context, id string) (*Wizard, error)
	SaveWizard(ctx context.Context, w *Wizard) error

	// -------- Confirmation view --------
	GetConfirmation(ctx context.Context, visitorID string, appointmentID int64) (*Confirmation, error)
	SaveConfirmation(ctx context.Context, visitorID string, c *Confirmation) error
}
