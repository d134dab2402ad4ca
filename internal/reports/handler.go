package reports

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sandeshk25/gym-management-backend/internal/event"
	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

func parseFilters(c *gin.Context, accessContext middleware.AccessContext) (ReportFilters, error) {
	f := ReportFilters{GymID: accessContext.GymID}

	if v := c.Query("start_date"); v != "" {
		t, err := event.ParseISOTime(v)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := event.ParseISOTime(v)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}

	return f, nil
}

// ===========================
// 📊 Event Attendance - GET /reports/event-attendance
func (h *Handler) EventAttendance(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	f, err := parseFilters(c, accessContext)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date filter"})
		return
	}

	rows, err := h.service.EventAttendance(c.Request.Context(), f, accessContext)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ===========================
// 📊 Membership Revenue - GET /reports/membership-revenue
func (h *Handler) MembershipRevenue(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	f, err := parseFilters(c, accessContext)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date filter"})
		return
	}

	rows, err := h.service.MembershipRevenue(c.Request.Context(), f, accessContext)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ===========================
// 📦 Export - GET /reports/:report/export?format=csv|xlsx|pdf
func (h *Handler) Export(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	f, err := parseFilters(c, accessContext)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date filter"})
		return
	}

	report := c.Param("report")
	format := c.DefaultQuery("format", FormatCSV)

	data, filename, contentType, err := h.service.Export(
		c.Request.Context(), report, f, format, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
