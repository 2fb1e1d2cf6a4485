package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/dto"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httperr"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/httpresp"
	ucAppointment "github.com/aaafasf/PETPOCKEBACKEND1/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	get          *ucAppointment.GetAppointment
	list         *ucAppointment.ListAppointments
	listByClient *ucAppointment.ListByClient
	update       *ucAppointment.UpdateAppointment
	reschedule   *ucAppointment.RescheduleAppointment
	changeState  *ucAppointment.ChangeState
	cancel       *ucAppointment.CancelAppointment
	availability *ucAppointment.CheckAvailability
	statistics   *ucAppointment.Statistics
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	get *ucAppointment.GetAppointment,
	list *ucAppointment.ListAppointments,
	listByClient *ucAppointment.ListByClient,
	update *ucAppointment.UpdateAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	changeState *ucAppointment.ChangeState,
	cancel *ucAppointment.CancelAppointment,
	availability *ucAppointment.CheckAvailability,
	statistics *ucAppointment.Statistics,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		get:          get,
		list:         list,
		listByClient: listByClient,
		update:       update,
		reschedule:   reschedule,
		changeState:  changeState,
		cancel:       cancel,
		availability: availability,
		statistics:   statistics,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint `json:"client_id" binding:"required"`
	PetID     uint `json:"pet_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	VetID *int `json:"vet_id"`

	PetName   string `json:"pet_name"`
	OwnerName string `json:"owner_name"`

	Reason          string   `json:"reason"`
	Symptoms        string   `json:"symptoms"`
	PriorDiagnosis  string   `json:"prior_diagnosis"`
	PriorTreatments []string `json:"prior_treatments"`
	AdditionalNotes string   `json:"additional_notes"`
}

type UpdateAppointmentRequest struct {
	ClientID  *uint   `json:"client_id"`
	PetID     *uint   `json:"pet_id"`
	ServiceID *uint   `json:"service_id"`
	Date      *string `json:"date"`
	Time      *string `json:"time"`

	PetName   *string `json:"pet_name"`
	OwnerName *string `json:"owner_name"`

	Reason          *string  `json:"reason"`
	Symptoms        *string  `json:"symptoms"`
	PriorDiagnosis  *string  `json:"prior_diagnosis"`
	PriorTreatments []string `json:"prior_treatments"`
	AdditionalNotes *string  `json:"additional_notes"`
}

type RescheduleRequest struct {
	Date  *string `json:"date"`
	Time  *string `json:"time"`
	VetID *int    `json:"vet_id"`
	Note  string  `json:"note"`
}

type ChangeStateRequest struct {
	State    string  `json:"state" binding:"required"`
	Notes    *string `json:"notes"`
	Attended *bool   `json:"attended"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:        req.ClientID,
		PetID:           req.PetID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		VetID:           req.VetID,
		PetName:         req.PetName,
		OwnerName:       req.OwnerName,
		Reason:          req.Reason,
		Symptoms:        req.Symptoms,
		PriorDiagnosis:  req.PriorDiagnosis,
		PriorTreatments: req.PriorTreatments,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message": "Appointment created.",
		"id":      ap.ID,
	})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, dto.FromView(view))
}

// List is the admin listing: every appointment, optionally bounded
// by ?from/?to dates and a ?state filter.
func (h *AppointmentHandler) List(c *gin.Context) {
	views, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		From:  c.Query("from"),
		To:    c.Query("to"),
		State: c.Query("state"),
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	out := make([]dto.AppointmentDTO, 0, len(views))
	for i := range views {
		out = append(out, dto.FromView(&views[i]))
	}
	httpresp.List(c, out)
}

// Calendar is the booking-view slice: only slot-blocking
// appointments inside the requested date range.
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	views, err := h.list.Execute(c.Request.Context(), ucAppointment.ListAppointmentsInput{
		From:       c.Query("from"),
		To:         c.Query("to"),
		ActiveOnly: true,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	out := make([]dto.AppointmentDTO, 0, len(views))
	for i := range views {
		out = append(out, dto.FromView(&views[i]))
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("clientId"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "Client id must be numeric.")
		return
	}

	views, ucErr := h.listByClient.Execute(
		c.Request.Context(),
		uint(clientID),
		c.Query("state"),
	)
	if ucErr != nil {
		httperr.Handle(c, ucErr)
		return
	}

	out := make([]dto.AppointmentDTO, 0, len(views))
	for i := range views {
		out = append(out, dto.FromView(&views[i]))
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	err := h.update.Execute(c.Request.Context(), id, ucAppointment.UpdateAppointmentInput{
		ClientID:        req.ClientID,
		PetID:           req.PetID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		PetName:         req.PetName,
		OwnerName:       req.OwnerName,
		Reason:          req.Reason,
		Symptoms:        req.Symptoms,
		PriorDiagnosis:  req.PriorDiagnosis,
		PriorTreatments: req.PriorTreatments,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment updated."})
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	err := h.reschedule.Execute(c.Request.Context(), id, ucAppointment.RescheduleInput{
		Date:  req.Date,
		Time:  req.Time,
		VetID: req.VetID,
		Note:  req.Note,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment rescheduled."})
}

func (h *AppointmentHandler) ChangeState(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	err := h.changeState.Execute(c.Request.Context(), id, ucAppointment.ChangeStateInput{
		State:    req.State,
		Notes:    req.Notes,
		Attended: req.Attended,
	})
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "State changed to " + req.State + "."})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), id); err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Appointment cancelled."})
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	hour := c.Query("time")

	available, err := h.availability.Execute(c.Request.Context(), date, hour)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	message := "Slot available"
	if !available {
		message = "Slot unavailable, an appointment already exists"
	}

	httpresp.OK(c, gin.H{
		"available": available,
		"message":   message,
	})
}

func (h *AppointmentHandler) Statistics(c *gin.Context) {
	result, err := h.statistics.Execute(
		c.Request.Context(),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		httperr.Handle(c, err)
		return
	}

	httpresp.OK(c, result)
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, httperr.HTTPError{
			Code:    "invalid_id",
			Message: "Appointment id must be numeric.",
		})
		return 0, false
	}
	return uint(id), true
}
