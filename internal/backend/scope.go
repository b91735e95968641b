package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleOwner     Role = "owner"
	RoleManager   Role = "manager"
	RoleWorker    Role = "worker"
)

var ErrUnknownRole = errors.New("unknown role")

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleDeveloper, RoleOwner, RoleManager, RoleWorker:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// HomePath is where a freshly logged-in user of the role lands.
func (r Role) HomePath() string {
	switch r {
	case RoleOwner:
		return "/owner/businesses"
	case RoleManager:
		return "/manager/branches"
	case RoleWorker:
		return "/worker/appointments"
	case RoleDeveloper:
		return "/developer/owners"
	}
	return "/login"
}

// Scope is the set of authenticated endpoints one role may call. The concrete
// types are OwnerScope, ManagerScope, WorkerScope and DeveloperScope; callers
// type-switch on them instead of building path prefixes from the role name.
type Scope interface {
	Role() Role
	scope()
}

// ScopeFor returns the endpoint set for role, bound to token.
func (c *Client) ScopeFor(role Role, token string) (Scope, error) {
	a := authed{c: c, token: token}
	switch role {
	case RoleOwner:
		return OwnerScope{a}, nil
	case RoleManager:
		return ManagerScope{a}, nil
	case RoleWorker:
		return WorkerScope{a}, nil
	case RoleDeveloper:
		return DeveloperScope{a}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

// authed carries the bearer token for role-scoped calls.
type authed struct {
	c     *Client
	token string
}

func (a authed) get(ctx context.Context, endpoint, path string, out any) error {
	return a.c.do(ctx, call{endpoint: endpoint, method: http.MethodGet, path: path, token: a.token}, out)
}

func (a authed) post(ctx context.Context, endpoint, path string, body, out any) error {
	return a.c.do(ctx, call{endpoint: endpoint, method: http.MethodPost, path: path, token: a.token, body: body}, out)
}

func (a authed) put(ctx context.Context, endpoint, path string, body any) error {
	return a.c.do(ctx, call{endpoint: endpoint, method: http.MethodPut, path: path, token: a.token, body: body}, nil)
}

func (a authed) delete(ctx context.Context, endpoint, path string) error {
	return a.c.do(ctx, call{endpoint: endpoint, method: http.MethodDelete, path: path, token: a.token}, nil)
}
