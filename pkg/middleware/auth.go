package middleware

import (
	"net/http"
	"strings"

	"rentdesk/pkg/jwt"
	"rentdesk/pkg/models"
	"rentdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token into user_id/role on the
// request context. Missing or invalid tokens short-circuit with 401.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized(""))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Invalid authorization header"))
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Unauthorized("Invalid or expired token"))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireLandlord gates routes to landlord accounts. Runs after
// AuthMiddleware; the first failing guard terminates the request.
func RequireLandlord() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != string(models.RoleLandlord) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Forbidden("Landlord access required"))
			return
		}
		c.Next()
	}
}
