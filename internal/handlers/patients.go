package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/service"
	"clinic-app-server/internal/utils"
)

// PatientHandler handles patient registration, login, profile and
// appointment-history requests.
type PatientHandler struct {
	Patients   *service.PatientService
	Scheduling *service.SchedulingService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patients *service.PatientService, scheduling *service.SchedulingService) *PatientHandler {
	return &PatientHandler{Patients: patients, Scheduling: scheduling}
}

// PatientRegisterRequest represents the request body for patient sign-up.
type PatientRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone" binding:"required,len=10,numeric"`
	Address  string `json:"address" binding:"max=255"`
}

// PatientLoginRequest represents the request body for patient login.
type PatientLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new patient account.
func (h *PatientHandler) Register(c *gin.Context) {
	var req PatientRegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := patient.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to process password")
		return
	}

	if err := h.Patients.Register(c.Request.Context(), &patient); err != nil {
		if errors.Is(err, service.ErrConflict) {
			utils.Conflict(c, "Patient with given email or phone already exists")
		} else {
			utils.InternalServerError(c, "Failed to register patient")
		}
		return
	}

	utils.Created(c, "Patient registered successfully", patient)
}

// Login authenticates a patient and issues a bearer token.
func (h *PatientHandler) Login(c *gin.Context) {
	var req PatientLoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, patient, err := h.Patients.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Patient validation failed")
		}
		return
	}

	utils.Success(c, "Login successful", gin.H{"token": token, "patient": patient})
}

// Me returns the profile of the patient resolved from the bearer token.
func (h *PatientHandler) Me(c *gin.Context) {
	token, ok := middleware.GetTokenFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	patient, err := h.Patients.Details(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			utils.Unauthorized(c, "Invalid or expired token.")
		case errors.Is(err, service.ErrNotFound):
			utils.NotFound(c, "Patient not found")
		default:
			utils.InternalServerError(c, "Failed to fetch patient details")
		}
		return
	}

	utils.Success(c, "Patient details retrieved", patient)
}

// Appointments lists all appointments of the authenticated patient,
// ascending by time.
func (h *PatientHandler) Appointments(c *gin.Context) {
	token, ok := middleware.GetTokenFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	details, err := h.Scheduling.ListForPatient(c.Request.Context(), token)
	if err != nil {
		h.respondListError(c, err)
		return
	}

	utils.Success(c, "Appointments retrieved", details)
}

// FilterAppointments narrows the patient's appointment history by the
// "condition" ("future" or "past") and "doctorName" query parameters.
func (h *PatientHandler) FilterAppointments(c *gin.Context) {
	token, ok := middleware.GetTokenFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	condition := c.Query("condition")
	doctorName := c.Query("doctorName")

	details, err := h.Scheduling.FilterForPatient(c.Request.Context(), token, condition, doctorName)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			utils.BadRequest(c, "Invalid condition; expected 'future' or 'past'")
			return
		}
		h.respondListError(c, err)
		return
	}

	utils.Success(c, "Appointments retrieved", details)
}

func (h *PatientHandler) respondListError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		utils.Unauthorized(c, "Invalid or expired token.")
	case errors.Is(err, service.ErrNotFound):
		utils.NotFound(c, "Patient not found")
	default:
		utils.InternalServerError(c, "Failed to fetch appointments")
	}
}
