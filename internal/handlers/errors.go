package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	domain "github.com/BruksfildServices01/booking-panel/internal/domain/booking"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
)

var guardStatus = map[string]int{
	"invalid_step":           http.StatusConflict,
	"already_canceled":       http.StatusConflict,
	"reschedule_not_open":    http.StatusConflict,
	"wizard_not_found":       http.StatusNotFound,
	"branch_not_found":       http.StatusNotFound,
	"appointment_incomplete": http.StatusUnprocessableEntity,
}

var extraMessages = map[string]string{
	"wizard_not_found":       "Your booking session has expired, please start again",
	"branch_not_found":       "Branch not found",
	"appointment_incomplete": "This appointment can not be rescheduled online",
}

func guardMessage(code string) string {
	if m, ok := extraMessages[code]; ok {
		return m
	}
	return domain.GuardMessage(code)
}

// fail answers err. Backend failures get message, the action's fixed text;
// booking actions carry their own text.
func fail(c *gin.Context, err error, code, message string) {
	_ = c.Error(err)

	var ae *domain.ActionError
	if errors.As(err, &ae) {
		httperr.BadGateway(c, ae.Code, ae.Message)
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		status, ok := guardStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		httperr.Write(c, status, be.Code, guardMessage(be.Code))
		return
	}

	if errors.Is(err, backend.ErrNotSupported) {
		httperr.NotFound(c, "not_supported", "This action is not available for your role")
		return
	}

	var se *backend.StatusError
	if errors.As(err, &se) || code != "" {
		if code == "" {
			code = "backend_error"
		}
		if message == "" {
			message = "The booking service is unavailable, please try again later"
		}
		httperr.BadGateway(c, code, message)
		return
	}

	httperr.Internal(c, "internal_error", "Something went wrong")
}

func invalidInput(c *gin.Context, err error) {
	_ = c.Error(err)
	httperr.BadRequest(c, "invalid_request", "Please fill in all fields correctly")
}
