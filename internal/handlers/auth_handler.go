package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/middleware"
	"github.com/BruksfildServices01/booking-panel/internal/models"
	"github.com/BruksfildServices01/booking-panel/internal/session"
)

// SessionManager is what the auth handler needs from session.Manager.
type SessionManager interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Get(ctx context.Context, id string) (*session.Session, error)
	Logout(ctx context.Context, id string) error
	TokenValid(token string) bool
}

type AuthHandler struct {
	sessions     SessionManager
	cookieSecure bool
	cookieMaxAge int
	logger       zerolog.Logger
}

func NewAuthHandler(sessions SessionManager, cookieSecure bool, cookieMaxAge int, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		cookieSecure: cookieSecure,
		cookieMaxAge: cookieMaxAge,
		logger:       logger,
	}
}

// --------- Responses ---------

type LoginResponse struct {
	Role     string `json:"role"`
	UserID   int64  `json:"user_id"`
	Redirect string `json:"redirect"`
}

// --------- Handlers ---------

// LoginPage tells the client whether a login form is needed, or where an
// already signed-in user belongs.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	id, _ := c.Cookie(middleware.SessionCookie)
	s, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Warn().Err(err).Msg("session lookup failed")
	}
	if s != nil && h.sessions.TokenValid(s.Token) {
		c.JSON(http.StatusOK, gin.H{
			"authenticated": true,
			"role":          s.Role,
			"redirect":      s.Role.HomePath(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	s, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, session.ErrLoginFailed) {
			httperr.Unauthorized(c, "login_failed", "Login failed. Please check your credentials")
			return
		}
		httperr.Internal(c, "session_unavailable", "Login failed. Please try again later")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, s.ID, h.cookieMaxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, LoginResponse{
		Role:     string(s.Role),
		UserID:   s.UserID,
		Redirect: s.Role.HomePath(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	id, _ := c.Cookie(middleware.SessionCookie)
	if err := h.sessions.Logout(c.Request.Context(), id); err != nil {
		h.logger.Warn().Err(err).Msg("failed to drop session on logout")
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, gin.H{"redirect": middleware.LoginPath})
}
