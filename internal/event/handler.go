package event

import (
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
// 📄 List Events - GET /events/
// Query params: skip, limit, status, start_date, end_date, title_contains,
// location_contains, created_by, only_available
func (h *Handler) ListEvents(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	f := ListFilters{
		Status:           c.Query("status"),
		TitleContains:    c.Query("title_contains"),
		LocationContains: c.Query("location_contains"),
	}

	f.Skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	if v := c.Query("start_date"); v != "" {
		t, err := ParseISOTime(v)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid start_date"})
			return
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := ParseISOTime(v)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid end_date"})
			return
		}
		f.EndDate = &t
	}
	if v := c.Query("created_by"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid created_by"})
			return
		}
		uid := uint(id)
		f.CreatedBy = &uid
	}
	if v := c.Query("only_available"); v != "" {
		f.OnlyAvailable = v == "true" || v == "1"
	}

	resp, err := h.Service.ListEvents(accessContext, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ===========================
// 🔍 Get Event - GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	e, err := h.Service.GetEventByID(uint(id), accessContext)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 🎯 Create Event - POST /events
func (h *Handler) CreateEvent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.CreateEvent(&req, accessContext, ip)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, e)
}

// ===========================
// 🛠 Update Event - PUT /events/:id
func (h *Handler) UpdateEvent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	ip := middleware.GetIPFromContext(c)
	e, err := h.Service.UpdateEvent(uint(id), &req, accessContext, ip)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, e)
}

// ===========================
// 🚫 Cancel Event - DELETE /events/:id
func (h *Handler) CancelEvent(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	ip := middleware.GetIPFromContext(c)
	if err := h.Service.CancelEvent(uint(id), accessContext, ip); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event cancelled"})
}
