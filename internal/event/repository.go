package event

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
// 🎯 Create Event
func (r *Repository) CreateEvent(e *Event) error {
	return r.DB.Create(e).Error
}

// ===========================
// 🔍 Get Event By ID with registered participant count
func (r *Repository) GetEventByID(id uint) (*Event, error) {
	var e Event
	err := r.DB.First(&e, id).Error
	if err != nil {
		return nil, err
	}

	count, err := r.CountRegistered(e.ID)
	if err != nil {
		return nil, err
	}

	e.ParticipantsCount = count
	return &e, nil
}

// CountRegistered counts REGISTERED participations for one event.
func (r *Repository) CountRegistered(eventID uint) (int, error) {
	var count int64
	err := r.DB.Table("event_participations").
		Where("event_id = ? AND status = ?", eventID, "REGISTERED").
		Count(&count).Error
	return int(count), err
}

// ===========================
// 📄 List Events With Pagination & Filters, ordered by start time
func (r *Repository) ListEvents(gymID uint, f ListFilters) ([]Event, int64, error) {
	query := r.DB.Model(&Event{}).Where("gym_id = ?", gymID)

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.StartDate != nil {
		query = query.Where("start_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("start_time <= ?", *f.EndDate)
	}
	if f.TitleContains != "" {
		query = query.Where("title ILIKE ?", "%"+f.TitleContains+"%")
	}
	if f.LocationContains != "" {
		query = query.Where("location ILIKE ?", "%"+f.LocationContains+"%")
	}
	if f.CreatedBy != nil {
		query = query.Where("created_by = ?", *f.CreatedBy)
	}
	if f.OnlyAvailable {
		// Unlimited-capacity events are always available.
		query = query.Where(
			"capacity = 0 OR capacity > (SELECT COUNT(*) FROM event_participations p WHERE p.event_id = events.id AND p.status = 'REGISTERED')",
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []Event
	err := query.
		Order("start_time ASC").
		Limit(f.Limit).
		Offset(f.Skip).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}

	for i := range events {
		count, err := r.CountRegistered(events[i].ID)
		if err != nil {
			return nil, 0, err
		}
		events[i].ParticipantsCount = count
	}

	return events, total, nil
}

// ===========================
// 🛠 Update Event
func (r *Repository) UpdateEvent(e *Event) error {
	return r.DB.Save(e).Error
}

// ===========================
// 🚫 Set Event Status
func (r *Repository) SetStatus(id uint, status string) error {
	return r.DB.Model(&Event{}).Where("id = ?", id).Update("status", status).Error
}
