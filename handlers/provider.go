package handlers

import (
	"net/http"
	"strconv"

	"karigar/middleware"
	"karigar/models"
	"karigar/services/provider"
	"karigar/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler serves the service provider endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

func NewProviderHandler(service provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Service: service}
}

// ListProvidersHandler handles GET /service-providers.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	q := models.DirectoryQuery{
		ServiceType: c.Query("serviceType"),
		City:        c.Query("city"),
		SortBy:      c.Query("sortBy"),
	}
	if raw := c.Query("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondError(c, utils.NewValidationError("minRating must be a number"))
			return
		}
		q.MinRating = v
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.Limit, _ = strconv.Atoi(c.Query("limit"))

	result, err := h.Service.SearchDirectory(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageEnvelope("serviceProviders", result))
}

// GetProviderHandler handles GET /service-providers/:id.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := h.Service.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "serviceProvider": p})
}

// GetProviderAvailabilityHandler handles GET /service-providers/:id/availability.
func (h *ProviderHandler) GetProviderAvailabilityHandler(c *gin.Context) {
	a, err := h.Service.GetAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availability": a})
}

// GetMyProfileHandler handles GET /service-providers/me.
func (h *ProviderHandler) GetMyProfileHandler(c *gin.Context) {
	p, err := h.Service.GetMyProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "serviceProvider": p})
}

// CreateProfileHandler handles POST /service-providers.
func (h *ProviderHandler) CreateProfileHandler(c *gin.Context) {
	var req models.CreateProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := middleware.UserID(c)
	p, err := h.Service.CreateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.GetLogger().Warn("Create provider profile failed", zap.String("userID", userID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Service provider profile created", "serviceProvider": p})
}

// UpdateProfileHandler handles PATCH /service-providers/me.
func (h *ProviderHandler) UpdateProfileHandler(c *gin.Context) {
	var req models.UpdateProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Service.UpdateMyProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service provider profile updated", "serviceProvider": p})
}
