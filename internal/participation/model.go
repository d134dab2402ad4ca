package participation

import (
	"time"
)

// Participation statuses mirrored by the Go client.
const (
	StatusRegistered = "REGISTERED"
	StatusCancelled  = "CANCELLED"
	StatusAttended   = "ATTENDED"
)

// ============================
// 🔷 GORM EventParticipation Model
type EventParticipation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventID       uint      `gorm:"not null;index:idx_event_member" json:"event_id"`
	MemberID      uint      `gorm:"not null;index:idx_event_member" json:"member_id"`
	GymID         uint      `gorm:"not null;index" json:"gym_id"`
	Status        string    `gorm:"type:varchar(20);not null;default:'REGISTERED'" json:"status"`
	ReferenceCode string    `gorm:"type:varchar(36);uniqueIndex" json:"reference_code"`
	RegisteredAt  time.Time `gorm:"not null" json:"registered_at"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides table name for EventParticipation
func (EventParticipation) TableName() string {
	return "event_participations"
}

// ============================
// 🟡 Join Request (POST /events/participation)
type JoinRequest struct {
	EventID uint `json:"event_id" binding:"required"`
}
