package participation

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// ===========================
// ✍️ Create Participation
func (r *Repository) Create(p *EventParticipation) error {
	return r.DB.Create(p).Error
}

// ===========================
// 🔍 Get Participation By ID
func (r *Repository) GetByID(id uint) (*EventParticipation, error) {
	var p EventParticipation
	err := r.DB.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindRegistered returns the member's REGISTERED row for an event, if any.
func (r *Repository) FindRegistered(eventID, memberID uint) (*EventParticipation, error) {
	var p EventParticipation
	err := r.DB.
		Where("event_id = ? AND member_id = ? AND status = ?", eventID, memberID, StatusRegistered).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ===========================
// 📄 List by Member (newest first)
func (r *Repository) ListByMember(memberID uint) ([]EventParticipation, error) {
	var rows []EventParticipation
	err := r.DB.
		Where("member_id = ?", memberID).
		Order("registered_at DESC").
		Find(&rows).Error
	return rows, err
}

// ===========================
// 📄 List by Event (roster)
func (r *Repository) ListByEvent(eventID uint) ([]EventParticipation, error) {
	var rows []EventParticipation
	err := r.DB.
		Where("event_id = ?", eventID).
		Order("registered_at ASC").
		Find(&rows).Error
	return rows, err
}

// ===========================
// 🛠 Update Status
func (r *Repository) SetStatus(id uint, status string) error {
	return r.DB.Model(&EventParticipation{}).Where("id = ?", id).Update("status", status).Error
}

// CountRegistered counts REGISTERED rows for one event.
func (r *Repository) CountRegistered(eventID uint) (int, error) {
	var count int64
	err := r.DB.Model(&EventParticipation{}).
		Where("event_id = ? AND status = ?", eventID, StatusRegistered).
		Count(&count).Error
	return int(count), err
}
