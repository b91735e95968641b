// Package session holds the admin session: the backend token, the role it
// was issued for and the branch a manager is working on. Login creates it,
// logout removes it; handlers receive it explicitly from the route guard.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/infra/repository"
	"github.com/BruksfildServices01/booking-panel/internal/models"
)

var (
	ErrLoginFailed  = errors.New("login failed")
	ErrInvalidToken = errors.New("invalid or expired token")
)

type Session struct {
	ID               string       `json:"id"`
	Token            string       `json:"token"`
	Role             backend.Role `json:"role"`
	UserID           int64        `json:"user_id"`
	SelectedBranchID int64        `json:"selected_branch_id,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

// Authenticator exchanges credentials for a backend token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
}

type Manager struct {
	store  repository.Store
	auth   Authenticator
	ttl    time.Duration
	secret []byte
	now    func() time.Time
}

// NewManager builds a session manager. With an empty secret tokens are
// checked for expiry only.
func NewManager(store repository.Store, auth Authenticator, ttl time.Duration, secret string) *Manager {
	m := &Manager{
		store: store,
		auth:  auth,
		ttl:   ttl,
		now:   time.Now,
	}
	if secret != "" {
		m.secret = []byte(secret)
	}
	return m
}

func key(id string) string {
	return "session:" + id
}

func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := m.auth.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	role, err := backend.ParseRole(resp.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}
	if !m.TokenValid(resp.AccessToken) {
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, ErrInvalidToken)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Token:     resp.AccessToken,
		Role:      role,
		UserID:    resp.ID,
		CreatedAt: m.now(),
	}
	if err := m.store.Set(ctx, key(s.ID), s, m.ttl); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the session for id, or nil when it does not exist.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, nil
	}
	var s Session
	ok, err := m.store.Get(ctx, key(id), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (m *Manager) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, key(id))
}

// SelectBranch remembers the branch a manager is working on.
func (m *Manager) SelectBranch(ctx context.Context, s *Session, branchID int64) error {
	s.SelectedBranchID = branchID
	return m.store.Set(ctx, key(s.ID), s, m.ttl)
}

// TokenValid reports whether token carries an unexpired exp claim and, when a
// secret is configured, a valid HS256 signature.
func (m *Manager) TokenValid(token string) bool {
	if token == "" {
		return false
	}

	if m.secret != nil {
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return m.secret, nil
		}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
		return err == nil && parsed.Valid
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return m.now().Before(exp.Time)
}

// Scope binds the session token to the endpoint set of its role.
func (s *Session) Scope(c *backend.Client) (backend.Scope, error) {
	return c.ScopeFor(s.Role, s.Token)
}
