package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	EventAttendance(ctx context.Context, f ReportFilters) ([]EventAttendanceRow, error)
	MembershipRevenue(ctx context.Context, f ReportFilters) ([]MembershipRevenueRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) EventAttendance(ctx context.Context, f ReportFilters) ([]EventAttendanceRow, error) {
	q := r.db.WithContext(ctx).
		Table("events").
		Select(`events.id AS event_id,
			events.title,
			events.start_time,
			events.status,
			events.capacity,
			COUNT(CASE WHEN ep.status = 'REGISTERED' THEN 1 END) AS registered,
			COUNT(CASE WHEN ep.status = 'ATTENDED' THEN 1 END) AS attended,
			COUNT(CASE WHEN ep.status = 'CANCELLED' THEN 1 END) AS cancelled`).
		Joins("LEFT JOIN event_participations ep ON ep.event_id = events.id").
		Where("events.gym_id = ?", f.GymID).
		Group("events.id, events.title, events.start_time, events.status, events.capacity").
		Order("events.start_time ASC")

	if f.StartDate != nil {
		q = q.Where("events.start_time >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("events.start_time <= ?", *f.EndDate)
	}

	var rows []EventAttendanceRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) MembershipRevenue(ctx context.Context, f ReportFilters) ([]MembershipRevenueRow, error) {
	q := r.db.WithContext(ctx).
		Table("memberships").
		Select(`membership_plans.id AS plan_id,
			membership_plans.name AS plan_name,
			COUNT(memberships.id) AS sold,
			COALESCE(SUM(memberships.amount), 0) AS revenue`).
		Joins("JOIN membership_plans ON membership_plans.id = memberships.plan_id").
		Where("memberships.gym_id = ? AND memberships.status = ?", f.GymID, "ACTIVE").
		Group("membership_plans.id, membership_plans.name").
		Order("revenue DESC")

	if f.StartDate != nil {
		q = q.Where("memberships.starts_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("memberships.starts_at <= ?", *f.EndDate)
	}

	var rows []MembershipRevenueRow
	err := q.Scan(&rows).Error
	return rows, err
}
