package backend

import (
	"context"

	"github.com/BruksfildServices01/booking-panel/internal/models"
)

type DeveloperScope struct{ a authed }

func (DeveloperScope) Role() Role { return RoleDeveloper }
func (DeveloperScope) scope()     {}

func (s DeveloperScope) RegisterOwner(ctx context.Context, in models.AccountInput) (*models.Created, error) {
	in.Role = string(RoleOwner)
	var out models.Created
	if err := s.a.post(ctx, "developer_register_owner", "/developer/register/owner", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
