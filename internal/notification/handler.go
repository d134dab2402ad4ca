package notification

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ===========================
// 📨 Send Notification - POST /notifications/send
//
// Gymadmin/trainer broadcast to an audience or explicit recipient list.
func (h *Handler) SendNotification(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req struct {
		Channel    string   `json:"channel" binding:"required"`
		Subject    string   `json:"subject"`
		Body       string   `json:"body" binding:"required"`
		Audience   string   `json:"audience"`
		Recipients []string `json:"recipients"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "channel and body are required"})
		return
	}

	recipients := req.Recipients
	if len(recipients) == 0 && req.Audience != "" {
		var err error
		recipients, err = h.service.GetEmailsByAudience(accessContext.GymID, req.Audience)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
	}

	err := h.service.SendNotification(
		c.Request.Context(),
		accessContext.UserID,
		accessContext.GymID,
		req.Channel,
		req.Subject,
		req.Body,
		recipients,
		middleware.GetIPFromContext(c),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification sent"})
}

// ===========================
// 🔔 In-App Notifications - GET /notifications/in-app
func (h *Handler) ListInApp(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	gymID := accessContext.GymID
	items, err := h.service.ListInAppByUser(c.Request.Context(), accessContext.UserID, &gymID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}

	unread, _ := h.service.CountUnread(c.Request.Context(), accessContext.UserID)

	c.JSON(http.StatusOK, gin.H{
		"notifications": items,
		"unread_count":  unread,
	})
}

// ===========================
// ✅ Mark Read - PUT /notifications/in-app/:id/read
func (h *Handler) MarkInAppAsRead(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.service.MarkInAppAsRead(c.Request.Context(), uint(id), accessContext.UserID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read"})
}

// ===========================
// 📱 Register Device - POST /notifications/devices
func (h *Handler) RegisterDevice(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req struct {
		DeviceToken string `json:"device_token" binding:"required"`
		DeviceType  string `json:"device_type"`
		DeviceName  string `json:"device_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "device_token is required"})
		return
	}

	err := h.service.RegisterDeviceToken(
		c.Request.Context(),
		accessContext.UserID,
		accessContext.GymID,
		req.DeviceToken,
		req.DeviceType,
		req.DeviceName,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "device registered"})
}

// ===========================
// 📱 Remove Device - DELETE /notifications/devices
func (h *Handler) RemoveDevice(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req struct {
		DeviceToken string `json:"device_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "device_token is required"})
		return
	}

	if err := h.service.RemoveDeviceToken(c.Request.Context(), accessContext.UserID, req.DeviceToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove device"})
		return
	}

	c.Status(http.StatusNoContent)
}
