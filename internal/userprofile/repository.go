package userprofile

import (
	"gorm.io/gorm"
)

// Repository defines all methods related to member profiles and memberships.
type Repository interface {
	// MemberProfile methods
	Create(profile *MemberProfile) error
	GetByUserID(userID uint) (*MemberProfile, error)
	GetByUserIDAndGym(userID uint, gymID uint) (*MemberProfile, error)
	Update(profile *MemberProfile) error

	// Membership methods
	CreateMembership(m *UserGymMembership) error
	GetMembership(userID, gymID uint) (*UserGymMembership, error)
	ListMembershipsByUser(userID uint) ([]UserGymMembership, error)
	ListUserIDsByGym(gymID uint) ([]uint, error)
	UpdateMembershipStatus(userID uint, gymID uint, status string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ==============================
// 🔹 MemberProfile Operations
// ==============================

func (r *repository) Create(profile *MemberProfile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return err
	}

	for _, contact := range profile.EmergencyContacts {
		contact.ProfileID = profile.ID
		if err := r.db.Create(contact).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *repository) GetByUserID(userID uint) (*MemberProfile, error) {
	var profile MemberProfile
	if err := r.db.Preload("EmergencyContacts").
		Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) GetByUserIDAndGym(userID uint, gymID uint) (*MemberProfile, error) {
	var profile MemberProfile
	if err := r.db.Preload("EmergencyContacts").
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) Update(profile *MemberProfile) error {
	// Transaction keeps the profile and its contacts consistent
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}

		// Clear old emergency contacts and re-insert
		if err := tx.Where("profile_id = ?", profile.ID).Delete(&EmergencyContact{}).Error; err != nil {
			return err
		}
		for _, contact := range profile.EmergencyContacts {
			contact.ID = 0
			contact.ProfileID = profile.ID
			if err := tx.Create(contact).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// ==============================
// 🔹 Membership Operations
// ==============================

func (r *repository) CreateMembership(m *UserGymMembership) error {
	return r.db.Create(m).Error
}

func (r *repository) GetMembership(userID, gymID uint) (*UserGymMembership, error) {
	var m UserGymMembership
	if err := r.db.Where("user_id = ? AND gym_id = ?", userID, gymID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) ListMembershipsByUser(userID uint) ([]UserGymMembership, error) {
	var memberships []UserGymMembership
	err := r.db.Where("user_id = ?", userID).
		Order("joined_at DESC").
		Find(&memberships).Error
	return memberships, err
}

func (r *repository) ListUserIDsByGym(gymID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&UserGymMembership{}).
		Where("gym_id = ? AND status = ?", gymID, "active").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *repository) UpdateMembershipStatus(userID uint, gymID uint, status string) error {
	return r.db.Model(&UserGymMembership{}).
		Where("user_id = ? AND gym_id = ?", userID, gymID).
		Update("status", status).Error
}
