package participation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// ✍️ Join Event - POST /events/participation
func (h *Handler) Join(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "event_id is required"})
		return
	}

	p, err := h.Service.Join(req.EventID, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrEventNotJoinable),
			errors.Is(err, ErrEventFull),
			errors.Is(err, ErrAlreadyRegistered):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register for event"})
		}
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ===========================
// 🚫 Cancel Registration - DELETE /events/participation/:id
func (h *Handler) Cancel(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid participation id"})
		return
	}

	if err := h.Service.Cancel(uint(id), accessContext, middleware.GetIPFromContext(c)); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "participation not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotRegistered):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel registration"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ===========================
// ✅ Mark Attended - PUT /events/participation/:id/attended
func (h *Handler) MarkAttended(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid participation id"})
		return
	}

	if err := h.Service.MarkAttended(uint(id), accessContext, middleware.GetIPFromContext(c)); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "participation not found"})
		case errors.Is(err, ErrNotRegistered):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "participation marked as attended"})
}

// ===========================
// 📄 My Participations - GET /events/participation/me
func (h *Handler) ListMine(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	participations, err := h.Service.ListMine(accessContext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch participations"})
		return
	}

	c.JSON(http.StatusOK, participations)
}

// ===========================
// 📄 Event Roster - GET /events/participation/event/:id
func (h *Handler) ListForEvent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid event id"})
		return
	}

	participations, err := h.Service.ListForEvent(uint(id), accessContext)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch participations"})
		return
	}

	c.JSON(http.StatusOK, participations)
}
