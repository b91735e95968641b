package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/session"
)

const (
	ContextSession = "session"

	SessionCookie = "session_id"
	LoginPath     = "/login"
)

// SessionStore is what the route guard needs from the session manager.
type SessionStore interface {
	Get(ctx context.Context, id string) (*session.Session, error)
	Logout(ctx context.Context, id string) error
	TokenValid(token string) bool
}

// RouteGuard lets the request through only with a live session whose token
// has not expired; anything else is redirected to the login page.
func RouteGuard(sessions SessionStore, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)

		s, err := sessions.Get(c.Request.Context(), id)
		if err != nil {
			logger.Error().Err(err).Msg("session lookup failed")
			redirectToLogin(c)
			return
		}
		if s == nil {
			redirectToLogin(c)
			return
		}
		if !sessions.TokenValid(s.Token) {
			if err := sessions.Logout(c.Request.Context(), s.ID); err != nil {
				logger.Warn().Err(err).Msg("failed to drop expired session")
			}
			redirectToLogin(c)
			return
		}

		c.Set(ContextSession, s)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath)
	c.Abort()
}

// RequireRole answers 403 unless the session role is one of roles.
func RequireRole(roles ...backend.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := CurrentSession(c)
		if s == nil {
			redirectToLogin(c)
			return
		}
		for _, r := range roles {
			if s.Role == r {
				c.Next()
				return
			}
		}
		httperr.Write(c, http.StatusForbidden, "forbidden_role", "This page is not available for your role")
		c.Abort()
	}
}

// CurrentSession returns the session set by RouteGuard, or nil.
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
