package handlers

import (
	"strings"

	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dst, writing a 400 envelope on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, &utils.AppError{Kind: utils.KindValidation, Message: "Invalid request body", Err: err})
		return false
	}
	return true
}

// pageEnvelope flattens a page into the list response shape.
func pageEnvelope[T any](key string, page models.PageResult[T]) gin.H {
	return gin.H{
		"success":     true,
		"count":       len(page.Items),
		"total":       page.Total,
		"totalPages":  page.TotalPages,
		"currentPage": page.CurrentPage,
		key:           page.Items,
	}
}

// parseStatuses reads a comma separated ?status= filter.
func parseStatuses(raw string) []models.BookingStatus {
	if raw == "" {
		return nil
	}
	var out []models.BookingStatus
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, models.BookingStatus(part))
		}
	}
	return out
}
