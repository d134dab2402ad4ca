package userprofile

import (
	"time"

	"gorm.io/gorm"
)

// ============================
// 🔷 Member Profile Model
type MemberProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"` // Injected from token
	GymID  uint `gorm:"not null;index" json:"gym_id"`  // Injected from token

	// SECTION 1: Personal Details
	FullName      *string    `json:"full_name,omitempty"`
	DOB           *time.Time `json:"dob,omitempty"`
	Gender        *string    `json:"gender,omitempty"`
	StreetAddress *string    `json:"street_address,omitempty"`
	City          *string    `json:"city,omitempty"`
	State         *string    `json:"state,omitempty"`
	Pincode       *string    `json:"pincode,omitempty"`
	Country       *string    `json:"country,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty"`

	// SECTION 2: Fitness Info
	HeightCM              *float64 `json:"height_cm,omitempty"`
	WeightKG              *float64 `json:"weight_kg,omitempty"`
	FitnessGoal           *string  `json:"fitness_goal,omitempty"`
	ExperienceLevel       *string  `json:"experience_level,omitempty"`
	PreferredTrainingTime *string  `json:"preferred_training_time,omitempty"`
	TrainerNotes          *string  `json:"trainer_notes,omitempty"`

	// SECTION 3: Health & Medical
	HealthNotes           *string `json:"health_notes,omitempty"`
	AllergiesOrConditions *string `json:"allergies_or_conditions,omitempty"`
	DietaryRestrictions   *string `json:"dietary_restrictions,omitempty"`
	MedicalClearance      *bool   `json:"medical_clearance,omitempty"`

	// SECTION 4: Emergency Contacts
	EmergencyContacts []*EmergencyContact `gorm:"foreignKey:ProfileID" json:"emergency_contacts,omitempty"`

	// Profile Completion
	ProfileCompletionPercentage int `json:"profile_completion_percentage"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ============================
// 🔷 Emergency Contact Model
type EmergencyContact struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	ProfileID           uint      `gorm:"not null;index" json:"-"`
	ContactName         *string   `json:"contact_name,omitempty"`
	ContactRelationship *string   `json:"contact_relationship,omitempty"`
	ContactPhone        *string   `json:"contact_phone,omitempty"`
	ContactAddress      *string   `json:"contact_address,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ==========================
// 🔗 Membership Mapping Table: Gym Join Logic
type UserGymMembership struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	GymID     uint      `gorm:"not null;index" json:"gym_id"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`
	Status    string    `gorm:"default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserGymMembership) TableName() string {
	return "user_gym_memberships"
}

// ============================
// 🟢 Public Profile Projection
//
// The slim view returned to any authenticated user looking up another
// member, e.g. a roster screen resolving participant names.
type PublicProfileResponse struct {
	UserID    uint    `json:"user_id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	RoleName  string  `json:"role_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
