package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/models"
	"github.com/BruksfildServices01/booking-panel/internal/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func bindReportFilter(c *gin.Context) (models.ReportFilter, bool) {
	var f models.ReportFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		_ = c.Error(err)
		httperr.BadRequest(c, "invalid_date_range", "Invalid date range")
		return f, false
	}
	if f.StartDate != "" && f.EndDate != "" && f.EndDate < f.StartDate {
		httperr.BadRequest(c, "invalid_date_range", "Invalid date range")
		return f, false
	}
	return f, true
}

func (h *PanelHandler) Reports(c *gin.Context) {
	owner, _, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}

	summary, err := reports.Build(c.Request.Context(), owner, f)
	if err != nil {
		fail(c, err, "failed_to_load_reports", "Failed to load reports")
		return
	}
	httpresp.OK(c, summary)
}

func (h *PanelHandler) ExportReports(c *gin.Context) {
	owner, s, ok := panelScope[backend.OwnerScope](c, h.client)
	if !ok {
		return
	}
	f, ok := bindReportFilter(c)
	if !ok {
		return
	}

	summary, err := reports.Build(c.Request.Context(), owner, f)
	if err != nil {
		fail(c, err, "failed_to_load_reports", "Failed to load reports")
		return
	}
	buf, err := reports.ExportXLSX(summary)
	if err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_export_reports", "Failed to export reports")
		return
	}
	writeAudit(h.audit, s, "reports_exported", "report", 0, f)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, reports.FileName(f)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
