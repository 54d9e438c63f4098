package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/service"
	"clinic-app-server/internal/utils"
)

// AppointmentHandler handles booking, rescheduling, cancellation, status
// changes and doctor-side appointment queries.
type AppointmentHandler struct {
	Scheduling *service.SchedulingService
	Patients   *service.PatientService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(scheduling *service.SchedulingService, patients *service.PatientService) *AppointmentHandler {
	return &AppointmentHandler{Scheduling: scheduling, Patients: patients}
}

// BookRequest represents the request body for booking an appointment.
type BookRequest struct {
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
}

// UpdateRequest represents the request body for rescheduling an
// appointment.
type UpdateRequest struct {
	ID              string `json:"id" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
	PatientID       string `json:"patientId" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
}

// StatusRequest represents the request body for a status change.
type StatusRequest struct {
	Status *int `json:"status" binding:"required"`
}

// appointmentTimeLayouts are accepted in order; the first is the canonical
// wire format.
var appointmentTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04",
}

func parseAppointmentTime(value string) (time.Time, bool) {
	for _, layout := range appointmentTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Book creates a new appointment for the authenticated patient after
// validating the proposed time against the doctor's declared slots.
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req BookRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	at, ok := parseAppointmentTime(req.AppointmentTime)
	if !ok {
		utils.BadRequest(c, "Invalid appointment time format")
		return
	}
	if !at.After(time.Now()) {
		utils.BadRequest(c, "Appointment time must be in the future")
		return
	}

	token, ok := middleware.GetTokenFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}
	patient, err := h.Patients.Details(c.Request.Context(), token)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	switch h.Scheduling.Validate(c.Request.Context(), req.DoctorID, at) {
	case service.SlotDoctorUnknown:
		utils.BadRequest(c, "Invalid doctor id")
		return
	case service.SlotInvalid:
		utils.BadRequest(c, "Appointment already booked for given time or Doctor not available")
		return
	}

	appt, err := h.Scheduling.Book(c.Request.Context(), req.DoctorID, patient.ID, at)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			utils.Conflict(c, "Appointment already booked for given time")
		} else {
			utils.InternalServerError(c, "Failed to book appointment")
		}
		return
	}

	utils.Created(c, "Appointment booked successfully", appt)
}

// Update reschedules an existing appointment. The stored doctor and patient
// ids must both match the request body.
func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	at, ok := parseAppointmentTime(req.AppointmentTime)
	if !ok {
		utils.BadRequest(c, "Invalid appointment time format")
		return
	}

	appt, err := h.Scheduling.Update(c.Request.Context(), req.ID, at, req.PatientID, req.DoctorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, service.ErrUnauthorized):
			utils.Unauthorized(c, "Appointment does not belong to given patient and doctor")
		case errors.Is(err, service.ErrInvalidTime):
			utils.BadRequest(c, "Appointment already booked for given time or Doctor not available")
		case errors.Is(err, service.ErrConflict):
			utils.Conflict(c, "Appointment already booked for given time")
		default:
			utils.InternalServerError(c, "Failed to update appointment")
		}
		return
	}

	utils.Success(c, "Appointment updated successfully", appt)
}

// Cancel hard-deletes an appointment owned by the authenticated patient.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	token, ok := middleware.GetTokenFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	if err := h.Scheduling.Cancel(c.Request.Context(), c.Param("id"), token); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, service.ErrUnauthorized):
			utils.Unauthorized(c, "Appointment does not belong to the patient")
		default:
			utils.InternalServerError(c, "Failed to cancel appointment")
		}
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// ListForDoctor lists the authenticated doctor's appointments, optionally
// narrowed by the "patientName" and "date" (YYYY-MM-DD) query parameters.
func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	token, ok := middleware.GetTokenFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	patientName := c.Query("patientName")

	var date *time.Time
	if raw := c.Query("date"); raw != "" && raw != "null" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "Invalid date format; expected YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	details, err := h.Scheduling.ListForDoctor(c.Request.Context(), token, patientName, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			utils.Unauthorized(c, "Invalid or expired token.")
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Doctor not found")
		default:
			utils.InternalServerError(c, "Failed to fetch appointments")
		}
		return
	}

	utils.Success(c, "Appointments retrieved", details)
}

// ChangeStatus updates an appointment's status. Only the scheduled ->
// fulfilled transition is accepted when strict transitions are enabled.
func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	var req StatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Scheduling.ChangeStatus(c.Request.Context(), c.Param("id"), *req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, service.ErrInvalidInput):
			utils.BadRequest(c, "Invalid status transition")
		default:
			utils.InternalServerError(c, "Failed to update appointment status")
		}
		return
	}

	utils.Success(c, "Appointment status updated", nil)
}
