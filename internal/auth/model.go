package auth

import (
	"time"
)

// ============================
// 🔷 User Model
type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	FullName     string   `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string   `gorm:"type:varchar(255);unique;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Phone        string   `gorm:"type:varchar(20)" json:"phone"`
	RoleID       uint     `gorm:"not null;index" json:"role_id"`
	Role         UserRole `gorm:"foreignKey:RoleID" json:"role"`
	GymID        *uint    `gorm:"index" json:"gym_id,omitempty"`
	Status       string   `gorm:"type:varchar(20);default:'active'" json:"status"`

	ForgotPasswordToken  *string    `json:"-"`
	ForgotPasswordExpiry *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// ============================
// 🔷 Role Model
type UserRole struct {
	ID                  uint   `gorm:"primaryKey" json:"id"`
	RoleName            string `gorm:"type:varchar(50);unique;not null" json:"role_name"`
	Description         string `gorm:"type:text" json:"description"`
	CanRegisterPublicly bool   `gorm:"default:false" json:"can_register_publicly"`
}

// PublicRoleResponse is the projection exposed on the signup screen.
type PublicRoleResponse struct {
	ID          uint   `json:"id"`
	RoleName    string `json:"role_name"`
	Description string `json:"description"`
}
