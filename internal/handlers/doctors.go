package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/models"
	"clinic-app-server/internal/service"
	"clinic-app-server/internal/utils"
)

// DoctorHandler handles doctor-related requests.
type DoctorHandler struct {
	Doctors *service.DoctorService
	Tokens  *service.TokenService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(doctors *service.DoctorService, tokens *service.TokenService) *DoctorHandler {
	return &DoctorHandler{Doctors: doctors, Tokens: tokens}
}

// DoctorLoginRequest represents the request body for a doctor login.
type DoctorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles doctor login and issues a bearer token.
func (h *DoctorHandler) Login(c *gin.Context) {
	var req DoctorLoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, doctor, err := h.Doctors.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Doctor validation failed")
		}
		return
	}

	utils.Success(c, "Login successful", gin.H{"token": token, "doctor": doctor})
}

// List handles fetching all doctors, sorted by name.
func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.Doctors.List(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors")
		return
	}
	utils.Success(c, "Doctors fetched successfully", doctors)
}

// Filter handles filtering doctors by name, slot period (AM/PM) and
// specialty. Absent filters are passed as the literal "null".
func (h *DoctorHandler) Filter(c *gin.Context) {
	name := c.Param("name")
	period := c.Param("time")
	specialty := c.Param("specialty")

	doctors, err := h.Doctors.Filter(c.Request.Context(), name, specialty, period)
	if err != nil {
		utils.InternalServerError(c, "Failed to filter doctors")
		return
	}
	utils.Success(c, "Doctors filtered successfully", doctors)
}

// Availability handles fetching a doctor's slot list for a date. The caller
// states its own role in the path and the token must hold that role.
func (h *DoctorHandler) Availability(c *gin.Context) {
	role := c.Param("role")
	doctorID := c.Param("id")

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		utils.BadRequest(c, "Invalid date format, expected YYYY-MM-DD")
		return
	}

	token, ok := bearerToken(c)
	if !ok || !h.Tokens.ValidateRole(c.Request.Context(), token, role) {
		utils.Unauthorized(c, "Invalid or expired token.")
		return
	}

	slots := h.Doctors.Availability(c.Request.Context(), doctorID, date)
	utils.Success(c, "Availability fetched successfully", gin.H{"availableTimes": slots})
}

// DoctorRequest represents the request body for creating or updating a
// doctor.
type DoctorRequest struct {
	Name           string   `json:"name" binding:"required,min=3,max=100"`
	Specialty      string   `json:"specialty" binding:"required,min=3,max=50"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=6"`
	Phone          string   `json:"phone" binding:"required,len=10,numeric"`
	AvailableTimes []string `json:"availableTimes"`
}

func validSlots(c *gin.Context, slots []string) bool {
	for _, slot := range slots {
		if !utils.ValidSlot(slot) {
			utils.BadRequest(c, "Invalid slot format: "+slot+" (expected HH:MM-HH:MM)")
			return false
		}
	}
	return true
}

// Create handles adding a new doctor (admin only).
func (h *DoctorHandler) Create(c *gin.Context) {
	var req DoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !validSlots(c, req.AvailableTimes) {
		return
	}

	doctor := models.Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Phone:          req.Phone,
		AvailableTimes: req.AvailableTimes,
	}
	if err := doctor.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	if err := h.Doctors.Save(c.Request.Context(), &doctor); err != nil {
		if errors.Is(err, service.ErrConflict) {
			utils.Conflict(c, "Doctor already exists")
		} else {
			utils.InternalServerError(c, "Some internal error occurred")
		}
		return
	}

	utils.Created(c, "Doctor added to db", doctor)
}

// Update handles overwriting a doctor's record (admin only).
func (h *DoctorHandler) Update(c *gin.Context) {
	var req DoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !validSlots(c, req.AvailableTimes) {
		return
	}

	doctor := models.Doctor{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Email:          req.Email,
		Phone:          req.Phone,
		AvailableTimes: req.AvailableTimes,
	}
	doctor.ID = c.Param("id")
	if err := doctor.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	if err := h.Doctors.Update(c.Request.Context(), &doctor); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Failed to update doctor")
		}
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// Delete handles removing a doctor and all their appointments (admin only).
func (h *DoctorHandler) Delete(c *gin.Context) {
	if err := h.Doctors.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.NotFound(c, "Doctor not found with id")
		} else {
			utils.InternalServerError(c, "Failed to delete doctor")
		}
		return
	}
	utils.Success(c, "Doctor deleted successfully", nil)
}
