package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/service"
	"clinic-app-server/internal/utils"
)

// PrescriptionHandler handles prescription creation and lookup.
type PrescriptionHandler struct {
	Prescriptions *service.PrescriptionService
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(prescriptions *service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{Prescriptions: prescriptions}
}

// PrescriptionRequest represents the request body for saving a
// prescription.
type PrescriptionRequest struct {
	PatientName   string `json:"patientName" binding:"required"`
	AppointmentID string `json:"appointmentId" binding:"required"`
	Medication    string `json:"medication" binding:"required"`
	Dosage        string `json:"dosage" binding:"required"`
	DoctorNotes   string `json:"doctorNotes"`
}

// Create stores a prescription for an appointment and marks the
// appointment fulfilled. Each appointment holds at most one prescription.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req PrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	prescription := models.Prescription{
		PatientName:   req.PatientName,
		AppointmentID: req.AppointmentID,
		Medication:    req.Medication,
		Dosage:        req.Dosage,
		DoctorNotes:   req.DoctorNotes,
	}

	if err := h.Prescriptions.Save(c.Request.Context(), &prescription); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, service.ErrConflict):
			utils.Conflict(c, "Prescription already exists for this appointment.")
		default:
			utils.InternalServerError(c, "Failed to save prescription")
		}
		return
	}

	utils.Created(c, "Prescription saved successfully", prescription)
}

// ByAppointment returns the prescriptions recorded for an appointment.
func (h *PrescriptionHandler) ByAppointment(c *gin.Context) {
	prescriptions, err := h.Prescriptions.ByAppointment(c.Request.Context(), c.Param("appointmentId"))
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions")
		return
	}

	utils.Success(c, "Prescriptions retrieved", prescriptions)
}
