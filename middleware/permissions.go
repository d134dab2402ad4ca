package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Role constants to avoid string typos
const (
	RoleSuperAdmin = "superadmin"
	RoleGymAdmin   = "gymadmin"
	RoleTrainer    = "trainer"
	RoleMember     = "member"
)

// AccessContext stores user access information
type AccessContext struct {
	UserID         uint
	RoleName       string
	GymID          uint   // Tenant resolved from X-Gym-ID / token claims
	PermissionType string // "full" or "readonly"
}

// CanWrite returns true if the user may create or mutate gym resources
func (ac *AccessContext) CanWrite() bool {
	return ac.PermissionType == "full"
}

// CanRead returns true if the user has read permissions
func (ac *AccessContext) CanRead() bool {
	return ac.PermissionType == "full" || ac.PermissionType == "readonly"
}

// CanAccessGym checks if the user can access a specific gym
func (ac *AccessContext) CanAccessGym(gymID uint) bool {
	if ac.RoleName == RoleSuperAdmin {
		return true
	}
	return ac.GymID == gymID
}

// ExtractGymIDFromHeader parses the X-Gym-ID tenant selector, if present.
func ExtractGymIDFromHeader(c *gin.Context) *uint {
	gymIDStr := c.GetHeader("X-Gym-ID")
	if gymIDStr == "" {
		return nil
	}

	gymID, err := strconv.ParseUint(gymIDStr, 10, 64)
	if err != nil {
		return nil
	}

	id := uint(gymID)
	return &id
}

// GetAccessContext retrieves the access context set by AuthMiddleware.
func GetAccessContext(c *gin.Context) (AccessContext, bool) {
	raw, exists := c.Get("access_context")
	if !exists {
		return AccessContext{}, false
	}
	ac, ok := raw.(AccessContext)
	return ac, ok
}
