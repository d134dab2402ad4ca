package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sandeshk25/gym-management-backend/internal/auditlog"
	"github.com/sandeshk25/gym-management-backend/internal/notification"
	"github.com/sandeshk25/gym-management-backend/middleware"
	"github.com/sandeshk25/gym-management-backend/utils"
)

const listCacheTTL = 30 * time.Second

// Service wraps business logic for gym events
type Service struct {
	Repo     *Repository
	AuditSvc auditlog.Service
	NotifSvc notification.Service
}

// NewService initializes a new Service with audit logging
func NewService(r *Repository, auditSvc auditlog.Service) *Service {
	return &Service{
		Repo:     r,
		AuditSvc: auditSvc,
	}
}

// ===========================
// 🎯 Create Event
func (s *Service) CreateEvent(req *CreateEventRequest, accessContext middleware.AccessContext, ip string) (*Event, error) {
	gymID := accessContext.GymID

	if !accessContext.CanWrite() {
		s.logAction(accessContext, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": "write access denied",
		}, ip, "failure")
		return nil, errors.New("write access denied")
	}

	startTime, err := ParseISOTime(req.StartTime)
	if err != nil {
		s.logAction(accessContext, "EVENT_CREATED", map[string]interface{}{
			"title":      req.Title,
			"error":      "invalid start_time format",
			"start_time": req.StartTime,
		}, ip, "failure")
		return nil, errors.New("invalid start_time format. Use ISO-8601")
	}

	endTime, err := ParseISOTime(req.EndTime)
	if err != nil {
		s.logAction(accessContext, "EVENT_CREATED", map[string]interface{}{
			"title":    req.Title,
			"error":    "invalid end_time format",
			"end_time": req.EndTime,
		}, ip, "failure")
		return nil, errors.New("invalid end_time format. Use ISO-8601")
	}

	if !endTime.After(startTime) {
		return nil, errors.New("end_time must be after start_time")
	}
	if req.Capacity < 0 {
		return nil, errors.New("capacity cannot be negative")
	}

	e := &Event{
		GymID:       gymID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Status:      StatusScheduled,
		CreatedBy:   accessContext.UserID,
	}

	if err := s.Repo.CreateEvent(e); err != nil {
		s.logAction(accessContext, "EVENT_CREATED", map[string]interface{}{
			"title": req.Title,
			"error": err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.logAction(accessContext, "EVENT_CREATED", map[string]interface{}{
		"event_id":   e.ID,
		"title":      e.Title,
		"start_time": e.StartTime.Format(time.RFC3339),
		"location":   e.Location,
		"capacity":   e.Capacity,
	}, ip, "success")

	s.invalidateListCache(gymID)

	// In-app notifications to members & trainers of the gym
	if s.NotifSvc != nil {
		_ = s.NotifSvc.CreateInAppForGymRoles(context.Background(), gymID,
			[]string{"member", "trainer"},
			"New Event",
			e.Title+" on "+e.StartTime.Format("2006-01-02 15:04"),
			"event",
		)
	}

	return e, nil
}

// ===========================
// 🔍 Get Event by ID (gym scoped)
func (s *Service) GetEventByID(id uint, accessContext middleware.AccessContext) (*Event, error) {
	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	if !accessContext.CanAccessGym(e.GymID) {
		return nil, errors.New("event not found")
	}

	return e, nil
}

// ===========================
// 📄 List Events with pagination, filters, short-TTL cache
func (s *Service) ListEvents(accessContext middleware.AccessContext, f ListFilters) (*ListResponse, error) {
	gymID := accessContext.GymID

	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Skip < 0 {
		f.Skip = 0
	}

	cacheKey := listCacheKey(gymID, f)
	if payload, err := utils.CacheGet(cacheKey); err == nil {
		var cached ListResponse
		if json.Unmarshal(payload, &cached) == nil {
			return &cached, nil
		}
	}

	events, total, err := s.Repo.ListEvents(gymID, f)
	if err != nil {
		return nil, err
	}

	resp := &ListResponse{
		Events: events,
		Total:  total,
		Skip:   f.Skip,
		Limit:  f.Limit,
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := utils.CacheSet(cacheKey, payload, listCacheTTL); err != nil {
			log.Printf("⚠️ Event list cache write failed: %v", err)
		}
	}

	return resp, nil
}

// ===========================
// 🛠 Update Event (with gym scope check and audit logging)
func (s *Service) UpdateEvent(id uint, req *UpdateEventRequest, accessContext middleware.AccessContext, ip string) (*Event, error) {
	if !accessContext.CanWrite() {
		return nil, errors.New("write access denied")
	}

	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.logAction(accessContext, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    "event not found",
		}, ip, "failure")
		return nil, err
	}

	if !accessContext.CanAccessGym(e.GymID) {
		s.logAction(accessContext, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    "unauthorized access",
		}, ip, "failure")
		return nil, errors.New("unauthorized: cannot update this event")
	}

	startTime, err := ParseISOTime(req.StartTime)
	if err != nil {
		return nil, errors.New("invalid start_time format. Use ISO-8601")
	}
	endTime, err := ParseISOTime(req.EndTime)
	if err != nil {
		return nil, errors.New("invalid end_time format. Use ISO-8601")
	}
	if !endTime.After(startTime) {
		return nil, errors.New("end_time must be after start_time")
	}

	e.Title = req.Title
	e.Description = req.Description
	e.StartTime = startTime
	e.EndTime = endTime
	e.Location = req.Location
	e.Capacity = req.Capacity
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, errors.New("invalid status")
		}
		e.Status = *req.Status
	}

	if err := s.Repo.UpdateEvent(e); err != nil {
		s.logAction(accessContext, "EVENT_UPDATED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return nil, err
	}

	s.logAction(accessContext, "EVENT_UPDATED", map[string]interface{}{
		"event_id": e.ID,
		"title":    e.Title,
	}, ip, "success")

	s.invalidateListCache(e.GymID)

	if s.NotifSvc != nil {
		_ = s.NotifSvc.CreateInAppForGymRoles(context.Background(), e.GymID,
			[]string{"member", "trainer"},
			"Event Updated",
			e.Title+" updated for "+e.StartTime.Format("2006-01-02 15:04"),
			"event",
		)
	}

	return e, nil
}

// ===========================
// 🚫 Cancel Event (soft: status flip, participations kept)
func (s *Service) CancelEvent(id uint, accessContext middleware.AccessContext, ip string) error {
	if !accessContext.CanWrite() {
		return errors.New("write access denied")
	}

	e, err := s.Repo.GetEventByID(id)
	if err != nil {
		s.logAction(accessContext, "EVENT_CANCELLED", map[string]interface{}{
			"event_id": id,
			"error":    "event not found",
		}, ip, "failure")
		return err
	}

	if !accessContext.CanAccessGym(e.GymID) {
		return errors.New("unauthorized: cannot cancel this event")
	}

	if e.Status == StatusCompleted {
		return errors.New("completed events cannot be cancelled")
	}

	if err := s.Repo.SetStatus(id, StatusCancelled); err != nil {
		s.logAction(accessContext, "EVENT_CANCELLED", map[string]interface{}{
			"event_id": id,
			"error":    err.Error(),
		}, ip, "failure")
		return err
	}

	s.logAction(accessContext, "EVENT_CANCELLED", map[string]interface{}{
		"event_id": id,
		"title":    e.Title,
	}, ip, "success")

	s.invalidateListCache(e.GymID)

	if s.NotifSvc != nil {
		_ = s.NotifSvc.CreateInAppForGymRoles(context.Background(), e.GymID,
			[]string{"member", "trainer"},
			"Event Cancelled",
			e.Title+" has been cancelled",
			"event",
		)
	}

	return nil
}

// ===========================
// Helpers

func (s *Service) logAction(ac middleware.AccessContext, action string, details map[string]interface{}, ip, status string) {
	gymID := ac.GymID
	err := s.AuditSvc.LogAction(context.Background(), &ac.UserID, &gymID, action, details, ip, status)
	if err != nil {
		log.Printf("❌ Audit log error: %v", err)
	}
}

func (s *Service) invalidateListCache(gymID uint) {
	utils.CacheInvalidate(fmt.Sprintf("events:gym:%d:*", gymID))
}

func listCacheKey(gymID uint, f ListFilters) string {
	var start, end, createdBy string
	if f.StartDate != nil {
		start = f.StartDate.Format(time.RFC3339)
	}
	if f.EndDate != nil {
		end = f.EndDate.Format(time.RFC3339)
	}
	if f.CreatedBy != nil {
		createdBy = fmt.Sprint(*f.CreatedBy)
	}
	return fmt.Sprintf("events:gym:%d:%s|%s|%s|%s|%s|%s|%t|%d|%d",
		gymID, f.Status, start, end, f.TitleContains, f.LocationContains,
		createdBy, f.OnlyAvailable, f.Skip, f.Limit)
}

func validStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ParseISOTime accepts ISO-8601 timestamps with or without fractional
// seconds (and date-only values for filters), normalized to UTC.
func ParseISOTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", value)
}
