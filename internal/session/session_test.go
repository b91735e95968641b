package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/infra/repository"
	"github.com/BruksfildServices01/booking-panel/internal/models"
)

var fixedNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

func signed(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "3",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

type fakeAuth struct {
	resp *models.LoginResponse
	err  error
}

func (f fakeAuth) Login(context.Context, string, string) (*models.LoginResponse, error) {
	return f.resp, f.err
}

func newManager(auth Authenticator, secret string) *Manager {
	m := NewManager(repository.NewMemoryStore(), auth, time.Hour, secret)
	m.now = func() time.Time { return fixedNow }
	return m
}

func TestTokenValidWithoutSecretChecksExpiryOnly(t *testing.T) {
	m := newManager(nil, "")

	assert.True(t, m.TokenValid(signed(t, "whatever", fixedNow.Add(time.Hour))))
	assert.False(t, m.TokenValid(signed(t, "whatever", fixedNow.Add(-time.Minute))))
	assert.False(t, m.TokenValid(""))
	assert.False(t, m.TokenValid("not.a.jwt"))
}

func TestTokenValidWithSecretChecksSignature(t *testing.T) {
	m := newManager(nil, "s3cret")

	assert.True(t, m.TokenValid(signed(t, "s3cret", fixedNow.Add(time.Hour))))
	assert.False(t, m.TokenValid(signed(t, "other", fixedNow.Add(time.Hour))))
	assert.False(t, m.TokenValid(signed(t, "s3cret", fixedNow.Add(-time.Hour))))
}

func TestTokenWithoutExpIsRejected(t *testing.T) {
	m := newManager(nil, "")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "3"}).SignedString([]byte("k"))
	require.NoError(t, err)

	assert.False(t, m.TokenValid(tok))
}

func TestLoginLifecycle(t *testing.T) {
	token := signed(t, "k", fixedNow.Add(time.Hour))
	m := newManager(fakeAuth{resp: &models.LoginResponse{AccessToken: token, Role: "manager", ID: 3}}, "")
	ctx := context.Background()

	s, err := m.Login(ctx, "m@acme.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, backend.RoleManager, s.Role)
	assert.Equal(t, int64(3), s.UserID)
	assert.NotEmpty(t, s.ID)

	require.NoError(t, m.SelectBranch(ctx, s, 5))

	got, err := m.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.SelectedBranchID)
	assert.Equal(t, token, got.Token)

	require.NoError(t, m.Logout(ctx, s.ID))
	got, err = m.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()

	m := newManager(fakeAuth{err: errors.New("http 401")}, "")
	_, err := m.Login(ctx, "a@b.c", "x")
	assert.ErrorIs(t, err, ErrLoginFailed)

	m = newManager(fakeAuth{resp: &models.LoginResponse{AccessToken: signed(t, "k", fixedNow.Add(time.Hour)), Role: "root"}}, "")
	_, err = m.Login(ctx, "a@b.c", "x")
	assert.ErrorIs(t, err, backend.ErrUnknownRole)

	m = newManager(fakeAuth{resp: &models.LoginResponse{AccessToken: signed(t, "k", fixedNow.Add(-time.Hour)), Role: "owner"}}, "")
	_, err = m.Login(ctx, "a@b.c", "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetWithEmptyID(t *testing.T) {
	m := newManager(nil, "")
	s, err := m.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, s)
}
