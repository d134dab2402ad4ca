package participation

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/internal/event"
	"github.com/sandeshk25/gym-management-backend/middleware"
	"github.com/sandeshk25/gym-management-backend/utils"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventNotJoinable  = errors.New("event is not open for registration")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotOwner          = errors.New("participation belongs to another member")
	ErrNotRegistered     = errors.New("participation is not in REGISTERED state")
)

// Service wraps business logic for event registrations
type Service struct {
	Repo      *Repository
	EventRepo *event.Repository
	AuditSvc  auditlog.Service
}

func NewService(r *Repository, eventRepo *event.Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:      r,
		EventRepo: eventRepo,
		AuditSvc:  auditSvc,
	}
}

// ===========================
// ✍️ Join Event
func (s *Service) Join(eventID uint, accessContext middleware.AccessContext, ip string) (*EventParticipation, error) {
	e, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !accessContext.CanAccessGym(e.GymID) {
		return nil, ErrEventNotFound
	}

	if e.Status != event.StatusScheduled && e.Status != event.StatusActive {
		return nil, ErrEventNotJoinable
	}

	if _, err := s.Repo.FindRegistered(eventID, accessContext.UserID); err == nil {
		return nil, ErrAlreadyRegistered
	}

	if e.Capacity > 0 {
		registered, err := s.Repo.CountRegistered(eventID)
		if err != nil {
			return nil, err
		}
		if registered >= e.Capacity {
			return nil, ErrEventFull
		}
	}

	p := &EventParticipation{
		EventID:       eventID,
		MemberID:      accessContext.UserID,
		GymID:         e.GymID,
		Status:        StatusRegistered,
		ReferenceCode: uuid.NewString(),
		RegisteredAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(p); err != nil {
		s.logAction(accessContext, "PARTICIPATION_REGISTERED", map[string]interface{}{
			"event_id": eventID,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.logAction(accessContext, "PARTICIPATION_REGISTERED", map[string]interface{}{
		"participation_id": p.ID,
		"event_id":         eventID,
		"event_title":      e.Title,
	}, ip, "success")

	utils.PublishParticipation(utils.ParticipationMessage{
		Action:          "registered",
		ParticipationID: p.ID,
		EventID:         e.ID,
		EventTitle:      e.Title,
		MemberID:        p.MemberID,
		GymID:           p.GymID,
		OccurredAt:      p.RegisteredAt,
	})

	return p, nil
}

// ===========================
// 🚫 Cancel Registration
func (s *Service) Cancel(participationID uint, accessContext middleware.AccessContext, ip string) error {
	p, err := s.Repo.GetByID(participationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return err
	}

	if p.MemberID != accessContext.UserID {
		return ErrNotOwner
	}

	if p.Status != StatusRegistered {
		return ErrNotRegistered
	}

	if err := s.Repo.SetStatus(p.ID, StatusCancelled); err != nil {
		s.logAction(accessContext, "PARTICIPATION_CANCELLED", map[string]interface{}{
			"participation_id": p.ID,
			"error":            err.Error(),
		}, ip, "failure")
		return err
	}

	s.logAction(accessContext, "PARTICIPATION_CANCELLED", map[string]interface{}{
		"participation_id": p.ID,
		"event_id":         p.EventID,
	}, ip, "success")

	title := ""
	if e, err := s.EventRepo.GetEventByID(p.EventID); err == nil {
		title = e.Title
	}

	utils.PublishParticipation(utils.ParticipationMessage{
		Action:          "cancelled",
		ParticipationID: p.ID,
		EventID:         p.EventID,
		EventTitle:      title,
		MemberID:        p.MemberID,
		GymID:           p.GymID,
		OccurredAt:      time.Now().UTC(),
	})

	return nil
}

// ===========================
// ✅ Mark Attended (trainer/gymadmin)
func (s *Service) MarkAttended(participationID uint, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	p, err := s.Repo.GetByID(participationID)
	if err != nil {
		return err
	}

	if !accessContext.CanAccessGym(p.GymID) {
		return gorm.ErrRecordNotFound
	}

	if p.Status != StatusRegistered {
		return ErrNotRegistered
	}

	if err := s.Repo.SetStatus(p.ID, StatusAttended); err != nil {
		return err
	}

	s.logAction(accessContext, "PARTICIPATION_ATTENDED", map[string]interface{}{
		"participation_id": p.ID,
		"event_id":         p.EventID,
		"member_id":        p.MemberID,
	}, ip, "success")

	return nil
}

// ===========================
// 📄 My Participations
func (s *Service) ListMine(accessContext middleware.AccessContext) ([]EventParticipation, error) {
	return s.Repo.ListByMember(accessContext.UserID)
}

// ===========================
// 📄 Event Roster
func (s *Service) ListForEvent(eventID uint, accessContext middleware.AccessContext) ([]EventParticipation, error) {
	e, err := s.EventRepo.GetEventByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	if !accessContext.CanAccessGym(e.GymID) {
		return nil, ErrEventNotFound
	}

	return s.Repo.ListByEvent(eventID)
}

func (s *Service) logAction(ac middleware.AccessContext, action string, details map[string]interface{}, ip, status string) {
	gymID := ac.GymID
	err := s.AuditSvc.LogAction(context.Background(), &ac.UserID, &gymID, action, details, ip, status)
	if err != nil {
		log.Printf("❌ Audit log error: %v", err)
	}
}
