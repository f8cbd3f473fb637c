package handlers

import (
	"net/http"

	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last backend health snapshot. The memory driver has no backends to report.
func HealthHandler(memoryStore bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if memoryStore {
			c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok", "storage": "memory"})
			return
		}
		h := utils.GetHealthStatus()
		status := "ok"
		code := http.StatusOK
		if !h.Mongo {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"success": h.Mongo, "status": status, "checks": h})
	}
}
