package auth

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/gin-gonic/gin"
)

// Gin context keys set by RequireAuth.
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's ID and role in the context.
func RequireAuth(a *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Missing bearer token", Code: "UNAUTHORIZED"})
			return
		}

		claims, err := a.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Invalid token", Code: "UNAUTHORIZED"})
			return
		}

		userID, _ := claims.UserID()
		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Message: "Insufficient permissions", Code: "FORBIDDEN"})
	}
}

// CurrentUser returns the authenticated caller set by RequireAuth.
func CurrentUser(c *gin.Context) (uint, models.UserRole, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0, "", false
	}
	userID, ok := id.(uint)
	if !ok || userID == 0 {
		return 0, "", false
	}
	role, _ := c.Get(ContextUserRole)
	userRole, _ := role.(models.UserRole)
	return userID, userRole, true
}
