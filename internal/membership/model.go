package membership

import (
	"time"
)

// Payment workflow states
const (
	StatusPending = "PENDING"
	StatusActive  = "ACTIVE"
	StatusFailed  = "FAILED"
	StatusExpired = "EXPIRED"
)

// ============================
// 🔷 Membership Plan Model
type Plan struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	GymID uint `gorm:"not null;index" json:"gym_id"`

	Name         string  `gorm:"type:varchar(100);not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	DurationDays int     `gorm:"not null" json:"duration_days"`
	Price        float64 `gorm:"not null" json:"price"` // INR
	IsActive     bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Plan) TableName() string {
	return "membership_plans"
}

// ============================
// 🔷 Membership Purchase Model
//
// One row per purchase attempt. Rows stay PENDING until the Razorpay
// payment is verified, then flip to ACTIVE with start/end dates set.
type Membership struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	GymID  uint `gorm:"not null;index" json:"gym_id"`
	PlanID uint `gorm:"not null;index" json:"plan_id"`
	Plan   Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`

	Amount    float64 `gorm:"not null" json:"amount"`
	Status    string  `gorm:"size:20;default:'PENDING'" json:"status"`
	OrderID   string  `gorm:"size:100;uniqueIndex" json:"order_id"`
	PaymentID *string `gorm:"size:100" json:"payment_id,omitempty"`
	Method    string  `gorm:"size:30;default:'PENDING'" json:"method"`

	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

// ============================
// 🟡 Requests / Responses

type CreatePlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DurationDays int     `json:"duration_days" binding:"required,min=1"`
	Price        float64 `json:"price" binding:"required,min=0"`
}

type PurchaseRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type PurchaseResponse struct {
	OrderID     string  `json:"order_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	RazorpayKey string  `json:"razorpay_key"` // Razorpay key for client-side SDK
}

type VerifyPaymentRequest struct {
	OrderID     string `json:"order_id" binding:"required"`
	PaymentID   string `json:"payment_id" binding:"required"`
	RazorpaySig string `json:"razorpay_signature" binding:"required"`
}
