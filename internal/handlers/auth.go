package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/apperr"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"

	identityKey = "identity"

	// RoleAdmin gates the admin route group.
	RoleAdmin = "admin"
)

// Identity is the caller as asserted by the gateway authorizer. UserID is
// empty for guest traffic.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller has the admin role.
func (id Identity) IsAdmin() bool { return id.Role == RoleAdmin }

// IdentityMiddleware extracts the caller identity from the headers the
// gateway authorizer injects.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, Identity{
			UserID: c.GetHeader(headerUserID),
			Role:   c.GetHeader(headerUserRole),
		})
		c.Next()
	}
}

// IdentityFrom returns the caller identity stored by IdentityMiddleware.
func IdentityFrom(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}

// RequireAdmin aborts non-admin callers with permission-denied.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAdmin() {
			writeError(c, apperr.New(apperr.PermissionDenied, "admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
