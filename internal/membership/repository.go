package membership

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	// Plans
	CreatePlan(ctx context.Context, p *Plan) error
	GetPlanByID(ctx context.Context, id uint) (*Plan, error)
	ListPlansByGym(ctx context.Context, gymID uint) ([]Plan, error)
	DeactivatePlan(ctx context.Context, id uint, gymID uint) error

	// Memberships
	Create(ctx context.Context, m *Membership) error
	GetByOrderID(ctx context.Context, orderID string) (*Membership, error)
	ListByUser(ctx context.Context, userID uint) ([]Membership, error)
	GetActiveByUserAndGym(ctx context.Context, userID, gymID uint) (*Membership, error)
	UpdatePaymentDetails(ctx context.Context, orderID string, params UpdatePaymentDetailsParams) error
}

type UpdatePaymentDetailsParams struct {
	Status    string
	PaymentID *string
	Method    string
	StartsAt  *time.Time
	EndsAt    *time.Time
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ------------------------------
// Plans
// ------------------------------

func (r *repository) CreatePlan(ctx context.Context, p *Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetPlanByID(ctx context.Context, id uint) (*Plan, error) {
	var p Plan
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPlansByGym(ctx context.Context, gymID uint) ([]Plan, error) {
	var plans []Plan
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND is_active = ?", gymID, true).
		Order("price ASC").
		Find(&plans).Error
	return plans, err
}

func (r *repository) DeactivatePlan(ctx context.Context, id uint, gymID uint) error {
	res := r.db.WithContext(ctx).
		Model(&Plan{}).
		Where("id = ? AND gym_id = ?", id, gymID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ------------------------------
// Memberships
// ------------------------------

func (r *repository) Create(ctx context.Context, m *Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) GetByOrderID(ctx context.Context, orderID string) (*Membership, error) {
	var m Membership
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("order_id = ?", orderID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]Membership, error) {
	var memberships []Membership
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&memberships).Error
	return memberships, err
}

func (r *repository) GetActiveByUserAndGym(ctx context.Context, userID, gymID uint) (*Membership, error) {
	var m Membership
	if err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ? AND gym_id = ? AND status = ? AND ends_at > ?",
			userID, gymID, StatusActive, time.Now()).
		Order("ends_at DESC").
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) UpdatePaymentDetails(ctx context.Context, orderID string, params UpdatePaymentDetailsParams) error {
	updates := map[string]interface{}{
		"status": params.Status,
		"method": params.Method,
	}
	if params.PaymentID != nil {
		updates["payment_id"] = *params.PaymentID
	}
	if params.StartsAt != nil {
		updates["starts_at"] = *params.StartsAt
	}
	if params.EndsAt != nil {
		updates["ends_at"] = *params.EndsAt
	}

	return r.db.WithContext(ctx).
		Model(&Membership{}).
		Where("order_id = ?", orderID).
		Updates(updates).Error
}
