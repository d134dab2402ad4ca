package membership

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// ===========================
// 🟡 Create Plan - POST /memberships/plans
func (h *Handler) CreatePlan(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.CreatePlan(c.Request.Context(), accessContext.GymID, req, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// ===========================
// 📄 List Plans - GET /memberships/plans
func (h *Handler) ListPlans(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	plans, err := h.service.ListPlans(c.Request.Context(), accessContext.GymID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch plans"})
		return
	}

	c.JSON(http.StatusOK, plans)
}

// ===========================
// 🚫 Deactivate Plan - DELETE /memberships/plans/:id
func (h *Handler) DeactivatePlan(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid plan id"})
		return
	}

	if err := h.service.DeactivatePlan(c.Request.Context(), uint(id), accessContext, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ===========================
// 💳 Start Purchase - POST /memberships/purchase
func (h *Handler) StartPurchase(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "plan_id is required"})
		return
	}

	resp, err := h.service.StartPurchase(c.Request.Context(), req.PlanID, accessContext, middleware.GetIPFromContext(c))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ===========================
// ✅ Verify Payment - POST /memberships/verify
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "order_id, payment_id and razorpay_signature are required"})
		return
	}

	if err := h.service.VerifyAndActivate(c.Request.Context(), req, middleware.GetIPFromContext(c)); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "membership activated"})
}

// ===========================
// 📄 My Memberships - GET /memberships/me
func (h *Handler) ListMine(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	memberships, err := h.service.ListMine(c.Request.Context(), accessContext.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch memberships"})
		return
	}

	c.JSON(http.StatusOK, memberships)
}

// ===========================
// 📄 Active Membership - GET /memberships/active
func (h *Handler) GetActive(c *gin.Context) {
	accessContext, ok := middleware.GetAccessContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access context missing"})
		return
	}

	m, err := h.service.GetActive(c.Request.Context(), accessContext.UserID, accessContext.GymID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active membership"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch membership"})
		return
	}

	c.JSON(http.StatusOK, m)
}
