package auth

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedUserRoles inserts the fixed role set if missing.
func SeedUserRoles(db *gorm.DB) error {
	roles := []UserRole{
		{RoleName: "superadmin", Description: "Platform administrator", CanRegisterPublicly: false},
		{RoleName: "gymadmin", Description: "Owner/manager of a gym", CanRegisterPublicly: false},
		{RoleName: "trainer", Description: "Coach running classes and events", CanRegisterPublicly: true},
		{RoleName: "member", Description: "Gym member", CanRegisterPublicly: true},
	}

	for _, role := range roles {
		var existing UserRole
		err := db.Where("role_name = ?", role.RoleName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&role).Error; err != nil {
				return err
			}
			log.Printf("✅ Seeded role: %s", role.RoleName)
		} else if err != nil {
			return err
		}
	}

	return nil
}

// SeedSuperAdminUser creates the bootstrap superadmin account if missing.
// Credentials come from SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD.
func SeedSuperAdminUser(db *gorm.DB) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD not set, skipping superadmin seed")
		return nil
	}

	var existing User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil // already present
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var role UserRole
	if err := db.Where("role_name = ?", "superadmin").First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		FullName:     "Super Admin",
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Status:       "active",
	}

	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Println("✅ Seeded superadmin user")
	return nil
}
