package gym

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 🏋️ Create Gym - POST /gyms
func (h *Handler) CreateGym(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	g, err := h.Service.CreateGym(&req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, g)
}

// ===========================
// 🔍 Get Gym - GET /gyms/:id
func (h *Handler) GetGymByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return
	}

	g, err := h.Service.GetGymByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "gym not found"})
		return
	}

	c.JSON(http.StatusOK, g)
}

// ===========================
// 📄 List Gyms - GET /gyms
func (h *Handler) ListGyms(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	gyms, err := h.Service.ListGyms(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list gyms"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}
