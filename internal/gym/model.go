package gym

import (
	"time"
)

// ============================
// 🔷 Gym Model (tenant)
type Gym struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Email       string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Phone       string `gorm:"type:varchar(20);not null" json:"phone"`
	Description string `gorm:"type:text" json:"description"`

	StreetAddress string `gorm:"not null" json:"street_address"`
	City          string `gorm:"not null" json:"city"`
	State         string `gorm:"not null" json:"state"`
	Pincode       string `gorm:"not null" json:"pincode"`

	// Floor capacity, used as the default event capacity when unset.
	Capacity int `gorm:"default:0" json:"capacity"`

	CreatedBy uint `gorm:"not null" json:"created_by"`
	IsActive  bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Gym model
func (Gym) TableName() string {
	return "gyms"
}

// ============================
// 🟡 Create Gym Request
type CreateGymRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Description   string `json:"description"`
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state" binding:"required"`
	Pincode       string `json:"pincode" binding:"required"`
	Capacity      int    `json:"capacity"`
}
