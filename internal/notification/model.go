package notification

import (
	"time"

	"gorm.io/datatypes"
)

// 1. NotificationLog - each actual message sent
type NotificationLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"` // sender
	GymID      uint           `gorm:"not null;index" json:"gym_id"`  // tenant context
	Channel    string         `gorm:"size:20;not null" json:"channel"` // email, push
	Subject    string         `gorm:"size:255" json:"subject,omitempty"`
	Body       string         `gorm:"type:text;not null" json:"body"`
	Recipients datatypes.JSON `gorm:"type:jsonb;not null" json:"recipients"` // email/token array
	Status     string         `gorm:"size:20;default:'pending'" json:"status"`
	Error      *string        `json:"error,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// 2. InAppNotification - per-user, in-app bell notifications
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	GymID     uint      `gorm:"not null;index" json:"gym_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // event, participation, membership, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 3. FCMDeviceToken - stores user device tokens for push notifications
type FCMDeviceToken struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index:idx_user_token" json:"user_id"`
	GymID       uint      `gorm:"not null;index" json:"gym_id"`
	DeviceToken string    `gorm:"size:255;not null;index:idx_user_token,unique" json:"device_token"`
	DeviceType  string    `gorm:"size:20" json:"device_type"`  // android, ios, web
	DeviceName  string    `gorm:"size:100" json:"device_name"` // optional device name
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	LastUsedAt  time.Time `json:"last_used_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
