package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sun6bks/ticket-api/internal/service"
	"github.com/sun6bks/ticket-api/internal/utils"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authSvc *service.AdminAuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authSvc *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Email and password are required")
		return
	}

	token, admin, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
		"admin": admin,
	})
}
