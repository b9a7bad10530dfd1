package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hametuha/hamelp-be/types"
	"github.com/hametuha/hamelp-be/utils"
)

const viewerContextKey = "viewer"

// OptionalAuth extracts viewer claims when a valid Bearer token is
// present. Anonymous requests pass through; the FAQ endpoint is public
// and downstream checks decide what anonymity means.
func OptionalAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.Next()
		return
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.Next()
		return
	}

	claims, err := utils.ParseUserToken(parts[1])
	if err == nil {
		c.Set(viewerContextKey, claims)
	}
	c.Next()
}

// RequireRole aborts unless the request carries a valid token for a role
// at or above minRole.
func RequireRole(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  "error",
				Message: "Authorization header format must be Bearer {token}",
			})
			return
		}

		claims, err := utils.ParseUserToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.DataResponse{
				Status:  "error",
				Message: "Invalid token",
			})
			return
		}
		if !types.RoleSatisfies(claims.Role, minRole) {
			c.AbortWithStatusJSON(http.StatusForbidden, types.DataResponse{
				Status:  "error",
				Message: "Insufficient permissions",
			})
			return
		}

		c.Set(viewerContextKey, claims)
		c.Next()
	}
}

// Viewer returns the authenticated viewer, or nil for anonymous requests.
func Viewer(c *gin.Context) *utils.UserClaims {
	value, exists := c.Get(viewerContextKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*utils.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
