package middleware

import (
	"context"

	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the Gin context.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// roleKey is the key used to store the authenticated user's role.
const roleKey = contextKey("role")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(userIDKey).(string); ok && v != "" {
			return v, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetActingUserFromContext returns the authenticated user and role.
// A missing role claim is treated as viewer.
func GetActingUserFromContext(c *gin.Context) (domain.ActingUser, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.ActingUser{}, false
	}
	role := domain.RoleViewer
	if v, exists := c.Get(string(roleKey)); exists {
		if r, ok := v.(domain.Role); ok {
			role = r
		}
	} else if r, ok := c.Request.Context().Value(roleKey).(domain.Role); ok {
		role = r
	}
	return domain.ActingUser{UserID: userID, Role: role}, true
}

// WithActingUser stores the acting user in ctx. Used by the auth middleware and tests.
func WithActingUser(ctx context.Context, user domain.ActingUser) context.Context {
	ctx = context.WithValue(ctx, userIDKey, user.UserID)
	return context.WithValue(ctx, roleKey, user.Role)
}
