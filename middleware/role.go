package middleware

import (
	"net/http"

	"karigar/models"
	"karigar/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the caller holds one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(Role(c))
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "User role "+string(role)+" is not authorized to access this route")
	}
}
