package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-panel/internal/domain/booking"
	"github.com/BruksfildServices01/booking-panel/internal/httperr"
	"github.com/BruksfildServices01/booking-panel/internal/httpresp"
	"github.com/BruksfildServices01/booking-panel/internal/middleware"
	"github.com/BruksfildServices01/booking-panel/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	wizard            *booking.WizardService
	confirmation      *booking.ConfirmationService
	defaultBusinessID int64
}

func NewPublicHandler(
	wizard *booking.WizardService,
	confirmation *booking.ConfirmationService,
	defaultBusinessID int64,
) *PublicHandler {
	return &PublicHandler{
		wizard:            wizard,
		confirmation:      confirmation,
		defaultBusinessID: defaultBusinessID,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type StartWizardRequest struct {
	BusinessID int64 `json:"business_id"`
	BranchID   int64 `json:"branch_id" binding:"required,gt=0"`
}

type FlowRequest struct {
	Flow string `json:"flow" binding:"required"`
}

type WorkerPickRequest struct {
	WorkerID int64 `json:"worker_id" binding:"required,gt=0"`
}

type ServicePickRequest struct {
	ServiceID  int64 `json:"service_id" binding:"required,gt=0"`
	PositionID int64 `json:"position_id"`
}

type DatePickRequest struct {
	Date string `json:"date"`
}

type SlotPickRequest struct {
	Slot string `json:"slot"`
}

type SubmitRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

// WizardView is the wizard plus the lists the current step renders.
type WizardView struct {
	*domain.Wizard
	AvailableDates []string `json:"available_dates"`
	DaySlots       []string `json:"day_slots"`
}

func wizardView(w *domain.Wizard) WizardView {
	v := WizardView{Wizard: w, AvailableDates: w.Slots.Dates(), DaySlots: []string{}}
	if w.Date != "" {
		v.DaySlots = w.Slots.SlotsFor(w.Date)
	}
	return v
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier")
		return 0, false
	}
	return id, true
}

////////////////////////////////////////////////////////
// CITIES
////////////////////////////////////////////////////////

func (h *PublicHandler) Cities(c *gin.Context) {
	businessID := h.defaultBusinessID
	if c.Param("businessID") != "" {
		id, ok := pathID(c, "businessID")
		if !ok {
			return
		}
		businessID = id
	}

	out, err := h.wizard.Cities(c.Request.Context(), businessID)
	if err != nil {
		fail(c, err, "", "")
		return
	}
	httpresp.OK(c, out)
}

////////////////////////////////////////////////////////
// WIZARD
////////////////////////////////////////////////////////

func (h *PublicHandler) StartWizard(c *gin.Context) {
	var req StartWizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	if req.BusinessID <= 0 {
		req.BusinessID = h.defaultBusinessID
	}

	w, err := h.wizard.Start(c.Request.Context(), req.BusinessID, req.BranchID)
	if err != nil {
		fail(c, err, "", "")
		return
	}
	c.JSON(http.StatusCreated, wizardView(w))
}

func (h *PublicHandler) GetWizard(c *gin.Context) {
	w, err := h.wizard.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "", "")
		return
	}
	httpresp.OK(c, wizardView(w))
}

func (h *PublicHandler) WizardCalendar(c *gin.Context) {
	cal, err := h.wizard.Calendar(c.Request.Context(), c.Param("id"), c.Query("month"))
	if err != nil {
		fail(c, err, "", "")
		return
	}
	httpresp.OK(c, cal)
}

func (h *PublicHandler) ChooseFlow(c *gin.Context) {
	var req FlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	w, err := h.wizard.ChooseFlow(c.Request.Context(), c.Param("id"), req.Flow)
	h.replyWizard(c, w, err)
}

func (h *PublicHandler) SelectWorker(c *gin.Context) {
	var req WorkerPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	w, err := h.wizard.SelectWorker(c.Request.Context(), c.Param("id"), req.WorkerID)
	h.replyWizard(c, w, err)
}

func (h *PublicHandler) SelectService(c *gin.Context) {
	var req ServicePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	w, err := h.wizard.SelectService(c.Request.Context(), c.Param("id"), req.ServiceID, req.PositionID)
	h.replyWizard(c, w, err)
}

func (h *PublicHandler) SelectDate(c *gin.Context) {
	var req DatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	w, err := h.wizard.SelectDate(c.Request.Context(), c.Param("id"), req.Date)
	h.replyWizard(c, w, err)
}

func (h *PublicHandler) SelectSlot(c *gin.Context) {
	var req SlotPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	w, err := h.wizard.SelectSlot(c.Request.Context(), c.Param("id"), req.Slot)
	h.replyWizard(c, w, err)
}

func (h *PublicHandler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}

	w, created, err := h.wizard.Submit(c.Request.Context(), booking.SubmitInput{
		WizardID:      c.Param("id"),
		VisitorID:     middleware.VisitorID(c),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		fail(c, err, "", "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":          created.Message,
		"appointment_id":   created.AppointmentID,
		"confirmation_url": fmt.Sprintf("/api/public/appointments/%d", created.AppointmentID),
		"wizard":           wizardView(w),
	})
}

func (h *PublicHandler) replyWizard(c *gin.Context, w *domain.Wizard, err error) {
	if err != nil {
		fail(c, err, "", "")
		return
	}
	httpresp.OK(c, wizardView(w))
}

////////////////////////////////////////////////////////
// CONFIRMATION
////////////////////////////////////////////////////////

func (h *PublicHandler) Appointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conf, err := h.confirmation.Load(c.Request.Context(), middleware.VisitorID(c), id)
	h.replyConfirmation(c, conf, err)
}

func (h *PublicHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conf, err := h.confirmation.Cancel(c.Request.Context(), middleware.VisitorID(c), id)
	h.replyConfirmation(c, conf, err)
}

func (h *PublicHandler) OpenReschedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conf, err := h.confirmation.OpenReschedule(c.Request.Context(), middleware.VisitorID(c), id)
	h.replyConfirmation(c, conf, err)
}

func (h *PublicHandler) RescheduleDate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req DatePickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	conf, err := h.confirmation.SelectRescheduleDate(c.Request.Context(), middleware.VisitorID(c), id, req.Date)
	h.replyConfirmation(c, conf, err)
}

func (h *PublicHandler) RescheduleSlot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req SlotPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, err)
		return
	}
	conf, err := h.confirmation.SelectRescheduleSlot(c.Request.Context(), middleware.VisitorID(c), id, req.Slot)
	h.replyConfirmation(c, conf, err)
}

func (h *PublicHandler) RescheduleCalendar(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cal, err := h.confirmation.RescheduleCalendar(c.Request.Context(), middleware.VisitorID(c), id, c.Query("month"))
	if err != nil {
		fail(c, err, "", "")
		return
	}
	httpresp.OK(c, cal)
}

func (h *PublicHandler) SubmitReschedule(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	conf, err := h.confirmation.SubmitReschedule(c.Request.Context(), middleware.VisitorID(c), id)
	h.replyConfirmation(c, conf, err)
}

func (h *PublicHandler) replyConfirmation(c *gin.Context, conf *domain.Confirmation, err error) {
	if err != nil {
		fail(c, err, "", "")
		return
	}
	httpresp.OK(c, conf.View())
}
