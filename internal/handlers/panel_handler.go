package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/middleware"
	"github.com/BruksfildServices01/booking-panel/internal/session"
)

// BranchSelector stores the manager's working branch in the session.
type BranchSelector interface {
	SelectBranch(ctx context.Context, s *session.Session, branchID int64) error
}

// EmailValidator rejects addresses whose domain can not receive mail.
type EmailValidator interface {
	IsEmailDomainValid(ctx context.Context, email string) bool
}

// PanelHandler serves the role panels. Every call goes to the backend with
// the session token through the scope of the session role.
type PanelHandler struct {
	client   *backend.Client
	sessions BranchSelector
	audit    *audit.Dispatcher
	emails   EmailValidator
	tz       string
	logger   zerolog.Logger
	now      func() time.Time
}

func NewPanelHandler(
	client *backend.Client,
	sessions BranchSelector,
	dispatcher *audit.Dispatcher,
	emails EmailValidator,
	tz string,
	logger zerolog.Logger,
) *PanelHandler {
	return &PanelHandler{
		client:   client,
		sessions: sessions,
		audit:    dispatcher,
		emails:   emails,
		tz:       tz,
		logger:   logger,
		now:      time.Now,
	}
}

// panelScope resolves the session scope as T. A session of another role
// gets 403.
func panelScope[T backend.Scope](c *gin.Context, client *backend.Client) (T, *session.Session, bool) {
	var zero T

	s := middleware.CurrentSession(c)
	if s == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		c.Abort()
		return zero, nil, false
	}

	sc, err := s.Scope(client)
	if err != nil {
		_ = c.Error(err)
		httperr.Forbidden(c, "forbidden_role", "This page is not available for your role")
		return zero, nil, false
	}

	t, ok := sc.(T)
	if !ok {
		httperr.Forbidden(c, "forbidden_role", "This page is not available for your role")
		return zero, nil, false
	}
	return t, s, true
}

// reloaded answers a successful mutation with the fresh list. A failed
// reload is reported with the list's load message.
func reloaded[T any](c *gin.Context, status int, message string, id int64, load func() ([]T, error), loadMsg string) {
	data, err := load()
	if err != nil {
		fail(c, err, "load_failed", loadMsg)
		return
	}
	httpresp.Mutated(c, status, message, id, data)
}

func (h *PanelHandler) checkEmail(c *gin.Context, email string) bool {
	if h.emails == nil || h.emails.IsEmailDomainValid(c.Request.Context(), email) {
		return true
	}
	httperr.BadRequest(c, "invalid_email_domain", "Email domain does not accept mail")
	return false
}
