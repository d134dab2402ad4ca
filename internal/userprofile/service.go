package userprofile

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/internal/auth"
	"github.com/sandeshk25/gym-management-backend/internal/gym"
)

// ========== INTERFACES ==========

type Service interface {
	CreateOrUpdateProfile(ctx context.Context, userID uint, gymID uint, input MemberProfileInput, ip string) (*MemberProfile, error)
	Get(userID uint) (*MemberProfile, error)
	GetByUserIDAndGym(userID uint, gymID uint) (*MemberProfile, error)
	GetPublicProfile(userID uint) (*PublicProfileResponse, error)
	JoinGym(ctx context.Context, userID uint, gymID uint, userRole string, ip string) (*UserGymMembership, error)
	ListMemberships(userID uint) ([]UserGymMembership, error)
	UpdateMembershipStatus(userID uint, gymID uint, status string) error
}

// ========== SERVICE INIT ==========

type service struct {
	repo     Repository
	authRepo auth.Repository
	gymRepo  *gym.Repository
	auditSvc auditlog.Service
}

func NewService(repo Repository, authRepo auth.Repository, gymRepo *gym.Repository, auditSvc auditlog.Service) Service {
	return &service{
		repo:     repo,
		authRepo: authRepo,
		gymRepo:  gymRepo,
		auditSvc: auditSvc,
	}
}

// ========== PROFILE DTO ==========

type MemberProfileInput struct {
	// Section 1
	FullName      *string    `json:"full_name"`
	DOB           *time.Time `json:"dob"`
	Gender        *string    `json:"gender"`
	StreetAddress *string    `json:"street_address"`
	City          *string    `json:"city"`
	State         *string    `json:"state"`
	Pincode       *string    `json:"pincode"`
	Country       *string    `json:"country"`
	AvatarURL     *string    `json:"avatar_url"`

	// Section 2
	HeightCM              *float64 `json:"height_cm"`
	WeightKG              *float64 `json:"weight_kg"`
	FitnessGoal           *string  `json:"fitness_goal"`
	ExperienceLevel       *string  `json:"experience_level"`
	PreferredTrainingTime *string  `json:"preferred_training_time"`
	TrainerNotes          *string  `json:"trainer_notes"`

	// Section 3
	HealthNotes           *string `json:"health_notes"`
	AllergiesOrConditions *string `json:"allergies_or_conditions"`
	DietaryRestrictions   *string `json:"dietary_restrictions"`
	MedicalClearance      *bool   `json:"medical_clearance"`

	// Section 4
	EmergencyContacts []*EmergencyContact `json:"emergency_contacts"`
}

// ========== PROFILE LOGIC ==========

func (s *service) Get(userID uint) (*MemberProfile, error) {
	return s.repo.GetByUserID(userID)
}

func (s *service) GetByUserIDAndGym(userID uint, gymID uint) (*MemberProfile, error) {
	return s.repo.GetByUserIDAndGym(userID, gymID)
}

// GetPublicProfile returns the slim projection any authenticated user may
// see. Name and avatar come from the profile when one exists; the account
// record is the fallback so freshly registered users still resolve.
func (s *service) GetPublicProfile(userID uint) (*PublicProfileResponse, error) {
	user, err := s.authRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	resp := &PublicProfileResponse{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		RoleName: user.Role.RoleName,
	}

	profile, err := s.repo.GetByUserID(userID)
	if err == nil {
		if profile.FullName != nil && *profile.FullName != "" {
			resp.FullName = *profile.FullName
		}
		resp.AvatarURL = profile.AvatarURL
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return resp, nil
}

func (s *service) CreateOrUpdateProfile(ctx context.Context, userID, gymID uint, input MemberProfileInput, ip string) (*MemberProfile, error) {
	existing, err := s.repo.GetByUserID(userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile := &MemberProfile{
		UserID:                      userID,
		GymID:                       gymID,
		FullName:                    input.FullName,
		DOB:                         input.DOB,
		Gender:                      input.Gender,
		StreetAddress:               input.StreetAddress,
		City:                        input.City,
		State:                       input.State,
		Pincode:                     input.Pincode,
		Country:                     input.Country,
		AvatarURL:                   input.AvatarURL,
		HeightCM:                    input.HeightCM,
		WeightKG:                    input.WeightKG,
		FitnessGoal:                 input.FitnessGoal,
		ExperienceLevel:             input.ExperienceLevel,
		PreferredTrainingTime:       input.PreferredTrainingTime,
		TrainerNotes:                input.TrainerNotes,
		HealthNotes:                 input.HealthNotes,
		AllergiesOrConditions:       input.AllergiesOrConditions,
		DietaryRestrictions:         input.DietaryRestrictions,
		MedicalClearance:            input.MedicalClearance,
		EmergencyContacts:           input.EmergencyContacts,
		ProfileCompletionPercentage: calculateCompletionPercentage(input),
		UpdatedAt:                   time.Now(),
	}

	var action string
	if existing != nil && existing.ID > 0 {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		err = s.repo.Update(profile)
		action = "PROFILE_UPDATED"
	} else {
		err = s.repo.Create(profile)
		action = "PROFILE_CREATED"
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	profileName := ""
	if input.FullName != nil {
		profileName = *input.FullName
	}

	auditDetails := map[string]interface{}{
		"profile_id": profile.ID,
		"full_name":  profileName,
		"gym_id":     gymID,
	}

	// Audit failures never fail the operation itself
	_ = s.auditSvc.LogAction(ctx, &userID, &gymID, action, auditDetails, ip, status)

	return profile, err
}

// ========== MEMBERSHIP LOGIC ==========

func (s *service) JoinGym(ctx context.Context, userID uint, gymID uint, userRole string, ip string) (*UserGymMembership, error) {
	g, err := s.gymRepo.GetByID(gymID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("gym not found")
		}
		return nil, err
	}
	if !g.IsActive {
		return nil, errors.New("gym is not active")
	}

	existing, err := s.repo.GetMembership(userID, gymID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("already joined this gym")
	}

	membership := &UserGymMembership{
		UserID:   userID,
		GymID:    gymID,
		JoinedAt: time.Now(),
		Status:   "active",
	}

	err = s.repo.CreateMembership(membership)

	status := "success"
	if err != nil {
		status = "failure"
	}

	var action string
	switch userRole {
	case "trainer":
		action = "TRAINER_JOINED_GYM"
	case "member":
		action = "MEMBER_JOINED_GYM"
	default:
		action = "USER_JOINED_GYM"
	}

	auditDetails := map[string]interface{}{
		"gym_name":  g.Name,
		"user_role": userRole,
		"gym_id":    gymID,
	}

	_ = s.auditSvc.LogAction(ctx, &userID, &gymID, action, auditDetails, ip, status)

	if err != nil {
		return nil, err
	}

	return membership, nil
}

func (s *service) ListMemberships(userID uint) ([]UserGymMembership, error) {
	return s.repo.ListMembershipsByUser(userID)
}

func (s *service) UpdateMembershipStatus(userID uint, gymID uint, status string) error {
	return s.repo.UpdateMembershipStatus(userID, gymID, status)
}

// ========== PROFILE COMPLETION LOGIC ==========

func calculateCompletionPercentage(p MemberProfileInput) int {
	filled := 0
	total := 10
	if p.FullName != nil && *p.FullName != "" {
		filled++
	}
	if p.DOB != nil {
		filled++
	}
	if p.Gender != nil && *p.Gender != "" {
		filled++
	}
	if p.StreetAddress != nil && *p.StreetAddress != "" {
		filled++
	}
	if p.HeightCM != nil {
		filled++
	}
	if p.WeightKG != nil {
		filled++
	}
	if p.FitnessGoal != nil && *p.FitnessGoal != "" {
		filled++
	}
	if p.ExperienceLevel != nil && *p.ExperienceLevel != "" {
		filled++
	}
	if p.HealthNotes != nil && *p.HealthNotes != "" {
		filled++
	}
	if len(p.EmergencyContacts) > 0 {
		filled++
	}
	return int(float64(filled) / float64(total) * 100)
}
