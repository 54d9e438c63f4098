package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/service"
	"clinic-app-server/internal/utils"
)

// AdminHandler handles admin authentication requests.
type AdminHandler struct {
	Admins *service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admins *service.AdminService) *AdminHandler {
	return &AdminHandler{Admins: admins}
}

// AdminLoginRequest represents the request body for an admin login.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles admin login and issues a bearer token.
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, err := h.Admins.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			utils.Unauthorized(c, "Invalid username or password")
		} else {
			utils.InternalServerError(c, "Admin validation failed")
		}
		return
	}

	utils.Success(c, "Login successful", gin.H{"token": token})
}
