package membership

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/config"
	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/middleware"
)

type Service interface {
	// Plans (gymadmin)
	CreatePlan(ctx context.Context, gymID uint, req CreatePlanRequest, accessContext middleware.AccessContext, ip string) (*Plan, error)
	ListPlans(ctx context.Context, gymID uint) ([]Plan, error)
	DeactivatePlan(ctx context.Context, planID uint, accessContext middleware.AccessContext, ip string) error

	// Purchases (member)
	StartPurchase(ctx context.Context, planID uint, accessContext middleware.AccessContext, ip string) (*PurchaseResponse, error)
	VerifyAndActivate(ctx context.Context, req VerifyPaymentRequest, ip string) error
	ListMine(ctx context.Context, userID uint) ([]Membership, error)
	GetActive(ctx context.Context, userID, gymID uint) (*Membership, error)
}

type service struct {
	repo     Repository
	client   *razorpay.Client
	cfg      *config.Config
	auditSvc auditlog.Service
}

func NewService(repo Repository, cfg *config.Config, auditSvc auditlog.Service) Service {
	client := razorpay.NewClient(cfg.RazorpayKey, cfg.RazorpaySecret)
	return &service{
		repo:     repo,
		client:   client,
		cfg:      cfg,
		auditSvc: auditSvc,
	}
}

// ==============================
// Plans
// ==============================

func (s *service) CreatePlan(ctx context.Context, gymID uint, req CreatePlanRequest, accessContext middleware.AccessContext, ip string) (*Plan, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	p := &Plan{
		GymID:        gymID,
		Name:         req.Name,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		Price:        req.Price,
		IsActive:     true,
	}

	err := s.repo.CreatePlan(ctx, p)

	status := "success"
	if err != nil {
		status = "failure"
	}
	s.auditSvc.LogAction(ctx, &accessContext.UserID, &gymID, "PLAN_CREATED", map[string]interface{}{
		"plan_name":     req.Name,
		"price":         req.Price,
		"duration_days": req.DurationDays,
	}, ip, status)

	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) ListPlans(ctx context.Context, gymID uint) ([]Plan, error) {
	return s.repo.ListPlansByGym(ctx, gymID)
}

func (s *service) DeactivatePlan(ctx context.Context, planID uint, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	err := s.repo.DeactivatePlan(ctx, planID, accessContext.GymID)

	status := "success"
	if err != nil {
		status = "failure"
	}
	gymID := accessContext.GymID
	s.auditSvc.LogAction(ctx, &accessContext.UserID, &gymID, "PLAN_DEACTIVATED", map[string]interface{}{
		"plan_id": planID,
	}, ip, status)

	return err
}

// ==============================
// Purchases
// ==============================

// StartPurchase creates the Razorpay order and a pending membership row.
func (s *service) StartPurchase(ctx context.Context, planID uint, accessContext middleware.AccessContext, ip string) (*PurchaseResponse, error) {
	plan, err := s.repo.GetPlanByID(ctx, planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("plan not found")
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, errors.New("plan is no longer available")
	}
	if !accessContext.CanAccessGym(plan.GymID) {
		return nil, errors.New("plan not found")
	}

	userID := accessContext.UserID
	gymID := plan.GymID

	amountInPaise := int(plan.Price * 100)
	data := map[string]interface{}{
		"amount":          amountInPaise,
		"currency":        "INR",
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"user_id": userID,
			"gym_id":  gymID,
			"plan_id": plan.ID,
		},
	}

	order, err := s.client.Order.Create(data, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, &userID, &gymID, "MEMBERSHIP_INITIATED", map[string]interface{}{
			"plan_id": plan.ID,
			"amount":  plan.Price,
			"error":   err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("razorpay order creation failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok {
		return nil, errors.New("unable to extract order_id from Razorpay response")
	}

	m := &Membership{
		UserID:  userID,
		GymID:   gymID,
		PlanID:  plan.ID,
		Amount:  plan.Price,
		Status:  StatusPending,
		OrderID: orderID,
		Method:  "PENDING",
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.auditSvc.LogAction(ctx, &userID, &gymID, "MEMBERSHIP_INITIATED", map[string]interface{}{
			"plan_id":  plan.ID,
			"order_id": orderID,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, fmt.Errorf("failed to create membership record: %w", err)
	}

	s.auditSvc.LogAction(ctx, &userID, &gymID, "MEMBERSHIP_INITIATED", map[string]interface{}{
		"plan_id":  plan.ID,
		"amount":   plan.Price,
		"order_id": orderID,
	}, ip, "success")

	return &PurchaseResponse{
		OrderID:     orderID,
		Amount:      plan.Price,
		Currency:    "INR",
		RazorpayKey: s.cfg.RazorpayKey,
	}, nil
}

// VerifyAndActivate verifies the Razorpay signature, confirms the capture
// with Razorpay, and activates the membership for the plan duration.
func (s *service) VerifyAndActivate(ctx context.Context, req VerifyPaymentRequest, ip string) error {
	// Step 1: Verify HMAC signature
	expected := hmac.New(sha256.New, []byte(s.cfg.RazorpaySecret))
	expected.Write([]byte(req.OrderID + "|" + req.PaymentID))
	computedSignature := hex.EncodeToString(expected.Sum(nil))

	if computedSignature != req.RazorpaySig {
		s.auditSvc.LogAction(ctx, nil, nil, "MEMBERSHIP_VERIFICATION_FAILED", map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"reason":     "invalid payment signature",
		}, ip, "failure")
		return fmt.Errorf("invalid payment signature")
	}

	// Step 2: Fetch payment details from Razorpay
	payment, err := s.client.Payment.Fetch(req.PaymentID, nil, nil)
	if err != nil {
		s.auditSvc.LogAction(ctx, nil, nil, "MEMBERSHIP_VERIFICATION_FAILED", map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"reason":     "razorpay payment fetch failed",
			"error":      err.Error(),
		}, ip, "failure")
		return fmt.Errorf("razorpay payment fetch failed: %w", err)
	}

	paymentStatus, ok := payment["status"].(string)
	if !ok {
		return errors.New("invalid payment status format")
	}

	// Step 3: Load the membership record
	m, err := s.repo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		s.auditSvc.LogAction(ctx, nil, nil, "MEMBERSHIP_VERIFICATION_FAILED", map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
			"reason":     "membership record not found",
		}, ip, "failure")
		return errors.New("membership record not found for given order ID")
	}

	if m.Status == StatusActive {
		// Already processed; verification is idempotent
		return nil
	}

	// Step 4: Cross-check the captured amount
	var amount float64
	switch val := payment["amount"].(type) {
	case float64:
		amount = val / 100
	case json.Number:
		amountPaise, _ := val.Float64()
		amount = amountPaise / 100
	default:
		return fmt.Errorf("unsupported amount type: %T", val)
	}

	method := "UNKNOWN"
	if paymentMethod, ok := payment["method"].(string); ok {
		method = paymentMethod
	}

	newStatus := StatusFailed
	var startsAt, endsAt *time.Time
	auditAction := "MEMBERSHIP_FAILED"
	auditStatus := "failure"

	if paymentStatus == "captured" && amount >= m.Amount {
		newStatus = StatusActive
		now := time.Now()
		end := now.AddDate(0, 0, m.Plan.DurationDays)
		startsAt = &now
		endsAt = &end
		auditAction = "MEMBERSHIP_ACTIVATED"
		auditStatus = "success"
	}

	err = s.repo.UpdatePaymentDetails(ctx, req.OrderID, UpdatePaymentDetailsParams{
		Status:    newStatus,
		PaymentID: &req.PaymentID,
		Method:    method,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
	})
	if err != nil {
		return err
	}

	s.auditSvc.LogAction(ctx, &m.UserID, &m.GymID, auditAction, map[string]interface{}{
		"order_id":        req.OrderID,
		"payment_id":      req.PaymentID,
		"amount":          amount,
		"method":          method,
		"razorpay_status": paymentStatus,
		"plan_id":         m.PlanID,
	}, ip, auditStatus)

	return nil
}

func (s *service) ListMine(ctx context.Context, userID uint) ([]Membership, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetActive(ctx context.Context, userID, gymID uint) (*Membership, error) {
	return s.repo.GetActiveByUserAndGym(ctx, userID, gymID)
}
