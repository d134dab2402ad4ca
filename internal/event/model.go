package event

import (
	"time"
)

// Event lifecycle states
const (
	StatusScheduled = "scheduled"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ============================
// 🔷 GORM Event Model
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GymID       uint      `gorm:"not null;index" json:"gym_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	StartTime   time.Time `gorm:"not null;index" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Location    string    `gorm:"type:text" json:"location"`
	Capacity    int       `gorm:"default:0" json:"capacity"` // 0 = unlimited
	Status      string    `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	CreatedBy   uint      `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Derived from the participations table, never stored.
	ParticipantsCount int `gorm:"-" json:"participants_count"`
}

// ============================
// 🟡 Create Event Request
type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	StartTime   string `json:"start_time" binding:"required"` // ISO-8601
	EndTime     string `json:"end_time" binding:"required"`   // ISO-8601
	Location    string `json:"location" binding:"required"`
	Capacity    int    `json:"capacity"`
}

// ============================
// 🟠 Update Event Request
type UpdateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Capacity    int     `json:"capacity"`
	Status      *string `json:"status,omitempty"`
}

// ============================
// 🔎 List Filters (GET /events/ query params)
type ListFilters struct {
	Status           string
	StartDate        *time.Time
	EndDate          *time.Time
	TitleContains    string
	LocationContains string
	CreatedBy        *uint
	OnlyAvailable    bool
	Skip             int
	Limit            int
}

// ListResponse is the GET /events/ payload shared with the Go client.
type ListResponse struct {
	Events []Event `json:"events"`
	Total  int64   `json:"total"`
	Skip   int     `json:"skip"`
	Limit  int     `json:"limit"`
}
