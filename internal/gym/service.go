package gym

import (
	"context"
	"errors"

	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/middleware"
)

// Service wraps business logic for gyms (tenants)
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
}

func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{Repo: r, AuditSvc: auditSvc}
}

// ===========================
// 🏋️ Create Gym
func (s *Service) CreateGym(req *CreateGymRequest, accessContext middleware.AccessContext, ip string) (*Gym, error) {
	if accessContext.RoleName != middleware.RoleSuperAdmin && accessContext.RoleName != middleware.RoleGymAdmin {
		return nil, errors.New("write access denied")
	}

	g := &Gym{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Description:   req.Description,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		State:         req.State,
		Pincode:       req.Pincode,
		Capacity:      req.Capacity,
		CreatedBy:     accessContext.UserID,
		IsActive:      true,
	}

	err := s.Repo.Create(g)

	status := "success"
	details := map[string]interface{}{"gym_name": req.Name, "city": req.City}
	if err != nil {
		status = "failure"
		details["error"] = err.Error()
	}
	_ = s.AuditSvc.LogAction(context.Background(), &accessContext.UserID, nil, "GYM_CREATED", details, ip, status)

	if err != nil {
		return nil, err
	}
	return g, nil
}

// ===========================
// 🔍 Get Gym by ID
func (s *Service) GetGymByID(id uint) (*Gym, error) {
	return s.Repo.GetByID(id)
}

// ===========================
// 📄 List Gyms
func (s *Service) ListGyms(limit, offset int) ([]Gym, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.Repo.ListActive(limit, offset)
}
