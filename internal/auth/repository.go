package auth

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
	FindByID(userID uint) (User, error)
	FindRoleByName(name string) (*UserRole, error)
	Update(user *User) error
	UpdateGymID(userID uint, gymID uint) error
	GetUserEmailsByRole(roleName string, gymID uint) ([]string, error)
	GetUserIDsByRole(roleName string, gymID uint) ([]uint, error)

	// Password reset methods
	SetForgotPasswordToken(userID uint, token string, expiry time.Time) error
	GetByResetToken(token string) (*User, error)
	ClearResetToken(userID uint) error

	GetPublicRoles() ([]UserRole, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Create a new user
func (r *repository) Create(user *User) error {
	return r.db.Create(user).Error
}

// Find user by email (used in login & password reset)
func (r *repository) FindByEmail(email string) (*User, error) {
	var u User
	err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error
	return &u, err
}

// Find user by ID (with role preload)
func (r *repository) FindByID(userID uint) (User, error) {
	var user User
	err := r.db.Preload("Role").First(&user, userID).Error
	if err != nil {
		return user, err
	}

	// Resolve GymID lazily from the membership table for members/trainers
	// that signed up before being assigned to a gym.
	if user.GymID == nil {
		type membership struct {
			GymID uint
		}
		var m membership
		err := r.db.
			Table("user_gym_memberships").
			Select("gym_id").
			Where("user_id = ? AND status = ?", userID, "active").
			Order("joined_at DESC").
			First(&m).Error
		if err == nil {
			user.GymID = &m.GymID
		}
	}

	return user, nil
}

// Find user role by name
func (r *repository) FindRoleByName(name string) (*UserRole, error) {
	var role UserRole
	err := r.db.Where("role_name = ?", name).First(&role).Error
	return &role, err
}

func (r *repository) Update(user *User) error {
	return r.db.Save(user).Error
}

// Update user's associated gym
func (r *repository) UpdateGymID(userID uint, gymID uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Update("gym_id", gymID).Error
}

// ✅ GetUserEmailsByRole fetches all user emails by role and gym
func (r *repository) GetUserEmailsByRole(roleName string, gymID uint) ([]string, error) {
	var emails []string

	err := r.db.
		Table("users").
		Select("users.email").
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Where("user_roles.role_name = ? AND users.gym_id = ? AND users.status = ?",
			roleName, gymID, "active").
		Scan(&emails).Error

	return emails, err
}

// GetUserIDsByRole fetches all user IDs by role and gym
func (r *repository) GetUserIDsByRole(roleName string, gymID uint) ([]uint, error) {
	var ids []uint
	type row struct{ ID uint }
	var rows []row
	err := r.db.
		Table("users").
		Select("users.id as id").
		Joins("JOIN user_roles ON users.role_id = user_roles.id").
		Where("user_roles.role_name = ? AND users.gym_id = ? AND users.status = ?",
			roleName, gymID, "active").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// ✅ Set Forgot Password Token and expiry
func (r *repository) SetForgotPasswordToken(userID uint, token string, expiry time.Time) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"forgot_password_token":  token,
		"forgot_password_expiry": expiry,
	}).Error
}

// ✅ Get user by forgot password token (must not be expired)
func (r *repository) GetByResetToken(token string) (*User, error) {
	var user User
	err := r.db.
		Where("forgot_password_token = ? AND forgot_password_expiry > ?", token, time.Now()).
		First(&user).Error
	return &user, err
}

// ✅ Clear forgot password token (after successful reset)
func (r *repository) ClearResetToken(userID uint) error {
	return r.db.Model(&User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"forgot_password_token":  nil,
		"forgot_password_expiry": nil,
	}).Error
}

func (r *repository) GetPublicRoles() ([]UserRole, error) {
	var roles []UserRole
	err := r.db.Where("can_register_publicly = ?", true).Find(&roles).Error
	return roles, err
}
