package userprofile

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/internal/auth"
	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ===========================
// 🔹 PROFILE ENDPOINTS
// ===========================

// GET /users/profile/me
func (h *Handler) GetMyProfile(c *gin.Context) {
	user, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	currentUser := user.(auth.User)

	profile, err := h.service.Get(currentUser.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GET /users/profile/:id
//
// Returns the public projection of any member in the caller's gym.
func (h *Handler) GetPublicProfile(c *gin.Context) {
	if _, ok := middleware.GetAccessContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := h.service.GetPublicProfile(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PUT /users/profile/me
func (h *Handler) CreateOrUpdateProfile(c *gin.Context) {
	user, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	currentUser := user.(auth.User)

	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var input MemberProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid profile payload"})
		return
	}

	profile, err := h.service.CreateOrUpdateProfile(
		c.Request.Context(),
		currentUser.ID,
		accessContext.GymID,
		input,
		middleware.GetIPFromContext(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// ===========================
// 🔹 MEMBERSHIP ENDPOINTS
// ===========================

// POST /users/memberships/:gymId
func (h *Handler) JoinGym(c *gin.Context) {
	user, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	currentUser := user.(auth.User)

	gymID, err := strconv.ParseUint(c.Param("gymId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid gym id"})
		return
	}

	membership, err := h.service.JoinGym(
		c.Request.Context(),
		currentUser.ID,
		uint(gymID),
		currentUser.Role.RoleName,
		middleware.GetIPFromContext(c),
	)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, membership)
}

// GET /users/memberships
func (h *Handler) ListMemberships(c *gin.Context) {
	user, ok := c.Get("user")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	currentUser := user.(auth.User)

	memberships, err := h.service.ListMemberships(currentUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}
