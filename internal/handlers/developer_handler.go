package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/models"
)

// RegisterOwner creates an owner account. The email domain must accept mail.
func (h *PanelHandler) RegisterOwner(c *gin.Context) {
	dev, s, ok := panelScope[backend.DeveloperScope](c, h.client)
	if !ok {
		return
	}
	var in models.AccountInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidInput(c, err)
		return
	}
	if !h.checkEmail(c, in.Email) {
		return
	}

	created, err := dev.RegisterOwner(c.Request.Context(), in)
	if err != nil {
		fail(c, err, "failed_to_register_owner", "Failed to register owner")
		return
	}
	writeAudit(h.audit, s, "owner_registered", "owner", created.ID, gin.H{"email": in.Email})

	c.JSON(http.StatusCreated, models.Created{Message: "Owner registered", ID: created.ID})
}
