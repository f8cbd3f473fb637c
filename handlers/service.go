package handlers

import (
	"net/http"

	"karigar/middleware"
	"karigar/models"
	"karigar/services/catalog"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// ServiceHandler serves a provider's service catalog.
type ServiceHandler struct {
	Service catalog.CatalogService
}

func NewServiceHandler(service catalog.CatalogService) *ServiceHandler {
	return &ServiceHandler{Service: service}
}

// CreateServiceHandler handles POST /services.
func (h *ServiceHandler) CreateServiceHandler(c *gin.Context) {
	var req models.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Service.CreateService(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Service created successfully", "service": svc})
}

// GetMyServicesHandler handles GET /services/my-services.
func (h *ServiceHandler) GetMyServicesHandler(c *gin.Context) {
	services, err := h.Service.MyServices(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(services), "services": services})
}

// GetServiceHandler handles GET /services/:id.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	svc, err := h.Service.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
}

// UpdateServiceHandler handles PUT /services/:id.
func (h *ServiceHandler) UpdateServiceHandler(c *gin.Context) {
	var req models.UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}
	svc, err := h.Service.UpdateService(c.Request.Context(), middleware.UserID(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service updated successfully", "service": svc})
}

// DeleteServiceHandler handles DELETE /services/:id.
func (h *ServiceHandler) DeleteServiceHandler(c *gin.Context) {
	if err := h.Service.DeleteService(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted successfully"})
}
