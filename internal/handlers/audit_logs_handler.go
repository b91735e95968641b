package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogReader lists stored audit events.
type AuditLogReader interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	client *backend.Client
	reader AuditLogReader
}

// NewAuditLogsHandler takes a nil reader when events only go to the log.
func NewAuditLogsHandler(client *backend.Client, reader AuditLogReader) *AuditLogsHandler {
	return &AuditLogsHandler{client: client, reader: reader}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if _, _, ok := panelScope[backend.DeveloperScope](c, h.client); !ok {
		return
	}
	if h.reader == nil {
		httperr.NotFound(c, "audit_log_unavailable", "Audit log storage is not configured")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Actor:  c.Query("actor"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Page:   page,
		Limit:  limit,
	}.Normalize()

	logs, total, err := h.reader.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "audit_list_failed", "Failed to load audit logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
