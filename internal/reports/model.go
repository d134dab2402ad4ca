package reports

import "time"

// ============================
// 📊 Report Row Types

// EventAttendanceRow summarizes registrations for a single event.
type EventAttendanceRow struct {
	EventID    uint      `json:"event_id"`
	Title      string    `json:"title"`
	StartTime  time.Time `json:"start_time"`
	Status     string    `json:"status"`
	Capacity   int       `json:"capacity"`
	Registered int       `json:"registered"`
	Attended   int       `json:"attended"`
	Cancelled  int       `json:"cancelled"`
}

// MembershipRevenueRow aggregates activated memberships per plan.
type MembershipRevenueRow struct {
	PlanID   uint    `json:"plan_id"`
	PlanName string  `json:"plan_name"`
	Sold     int     `json:"sold"`
	Revenue  float64 `json:"revenue"`
}

// ============================
// 🔍 Filters

type ReportFilters struct {
	GymID     uint
	StartDate *time.Time
	EndDate   *time.Time
}

// Supported export formats
const (
	FormatCSV   = "csv"
	FormatExcel = "xlsx"
	FormatPDF   = "pdf"
)
