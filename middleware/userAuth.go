package middleware

import (
	"net/http"
	"strings"

	"karigar/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the caller's id and role on the context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Not authorized, token failed")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// UserID returns the authenticated caller, or "" outside JWTAuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// Role returns the authenticated caller's role.
func Role(c *gin.Context) string {
	return c.GetString(ContextRole)
}
