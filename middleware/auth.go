package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sandeshk25/gym-management-backend/config"
	"github.com/sandeshk25/gym-management-backend/internal/auth"
)

// AuthMiddleware handles JWT authentication and sets up access context
func AuthMiddleware(cfg *config.Config, authSvc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		tokenStr := parts[1]
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTAccessSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id missing in token"})
			return
		}

		userID := uint(userIDFloat)
		user, err := authSvc.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		// Set user in context
		c.Set("user", user)
		c.Set("user_id", user.ID)
		c.Set("claims", claims)

		gymID := ResolveGymID(c, user, claims)

		accessContext := CreateAccessContext(user, gymID)
		c.Set("access_context", accessContext)
		c.Set("gym_id", gymID)

		c.Next()
	}
}

// ResolveGymID determines the tenant for the current request.
// Priority: X-Gym-ID header, then token claim, then the user's own gym,
// then the fixed default tenant.
func ResolveGymID(c *gin.Context, user auth.User, claims jwt.MapClaims) uint {
	if headerID := ExtractGymIDFromHeader(c); headerID != nil {
		return *headerID
	}

	if gymIDFloat, ok := claims["gym_id"].(float64); ok && gymIDFloat > 0 {
		return uint(gymIDFloat)
	}

	if user.GymID != nil {
		return *user.GymID
	}

	return config.DefaultGymID
}

// CreateAccessContext maps the user's role onto a permission type.
func CreateAccessContext(user auth.User, gymID uint) AccessContext {
	accessContext := AccessContext{
		UserID:   user.ID,
		RoleName: user.Role.RoleName,
		GymID:    gymID,
	}

	switch user.Role.RoleName {
	case RoleSuperAdmin, RoleGymAdmin, RoleTrainer:
		accessContext.PermissionType = "full"
	default:
		// Members browse and register; they never mutate gym resources.
		accessContext.PermissionType = "readonly"
	}

	return accessContext
}
