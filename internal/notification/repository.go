package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Logs
	CreateNotificationLog(ctx context.Context, log *NotificationLog) error
	UpdateNotificationLog(ctx context.Context, log *NotificationLog) error
	GetNotificationsByUser(ctx context.Context, userID uint) ([]NotificationLog, error)

	// In-app notifications
	CreateInApp(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, gymID *uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)

	// FCM device tokens
	SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error
	GetUserDeviceTokens(ctx context.Context, userID uint, gymID uint) ([]string, error)
	GetDeviceTokensByGymAndRole(ctx context.Context, gymID uint, roleNames []string) ([]string, error)
	RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ------------------------------
// Logs
// ------------------------------

func (r *repository) CreateNotificationLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) UpdateNotificationLog(ctx context.Context, log *NotificationLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *repository) GetNotificationsByUser(ctx context.Context, userID uint) ([]NotificationLog, error) {
	var logs []NotificationLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs).Error
	return logs, err
}

// ------------------------------
// In-app notifications
// ------------------------------

func (r *repository) CreateInApp(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListInAppByUser(ctx context.Context, userID uint, gymID *uint, limit int) ([]InAppNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if gymID != nil {
		q = q.Where("gym_id = ?", *gymID)
	}

	var items []InAppNotification
	err := q.Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}

func (r *repository) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// ------------------------------
// FCM device tokens
// ------------------------------

func (r *repository) SaveDeviceToken(ctx context.Context, token *FCMDeviceToken) error {
	token.LastUsedAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "device_token"}},
			DoUpdates: clause.AssignmentColumns([]string{"device_type", "device_name", "is_active", "last_used_at", "updated_at"}),
		}).
		Create(token).Error
}

func (r *repository) GetUserDeviceTokens(ctx context.Context, userID uint, gymID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND gym_id = ? AND is_active = ?", userID, gymID, true).
		Pluck("device_token", &tokens).Error
	return tokens, err
}

func (r *repository) GetDeviceTokensByGymAndRole(ctx context.Context, gymID uint, roleNames []string) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Table("fcm_device_tokens").
		Select("fcm_device_tokens.device_token").
		Joins("JOIN users ON users.id = fcm_device_tokens.user_id").
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("fcm_device_tokens.gym_id = ? AND fcm_device_tokens.is_active = ?", gymID, true).
		Where("user_roles.role_name IN ?", roleNames).
		Pluck("fcm_device_tokens.device_token", &tokens).Error
	return tokens, err
}

func (r *repository) RemoveDeviceToken(ctx context.Context, userID uint, deviceToken string) error {
	return r.db.WithContext(ctx).
		Model(&FCMDeviceToken{}).
		Where("user_id = ? AND device_token = ?", userID, deviceToken).
		Update("is_active", false).Error
}
