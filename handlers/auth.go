package handlers

import (
	"net/http"

	"karigar/middleware"
	"karigar/models"
	"karigar/services/user"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves registration, login and profile.
type AuthHandler struct {
	Service user.UserService
}

func NewAuthHandler(service user.UserService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// RegisterHandler handles POST /auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": resp.Token, "user": resp.User})
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": resp.Token, "user": resp.User})
}

// GetProfileHandler handles GET /auth/profile.
func (h *AuthHandler) GetProfileHandler(c *gin.Context) {
	u, err := h.Service.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// UpdateProfileHandler handles PUT /auth/profile.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Service.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": u})
}
