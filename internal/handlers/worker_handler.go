package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/validators"
)

func (h *PanelHandler) WorkerAppointments(c *gin.Context) {
	w, _, ok := panelScope[backend.WorkerScope](c, h.client)
	if !ok {
		return
	}
	list, err := w.Appointments(c.Request.Context())
	if err != nil {
		fail(c, err, "failed_to_load_appointments", "Failed to load appointments")
		return
	}
	httpresp.List(c, list)
}

// WorkerSchedule lists the worker's shifts. Without dates the range is the
// coming week in the app timezone.
func (h *PanelHandler) WorkerSchedule(c *gin.Context) {
	w, _, ok := panelScope[backend.WorkerScope](c, h.client)
	if !ok {
		return
	}

	start, end := scheduleRange(h.tz, h.now(), c.Query("start_date"), c.Query("end_date"))
	if !validators.IsDate(start) || !validators.IsDate(end) || end < start {
		httperr.BadRequest(c, "invalid_date_range", "Invalid date range")
		return
	}

	list, err := w.Schedule(c.Request.Context(), start, end)
	if err != nil {
		fail(c, err, "failed_to_load_schedule", "Failed to load work schedule")
		return
	}
	httpresp.List(c, list)
}
