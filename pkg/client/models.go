package client

import (
	"net/url"
	"strconv"
	"time"
)

// Event is the read-only mirror of a backend event. ParticipantsCount is
// adjusted locally after confirmed join/cancel successes, pending the next
// full fetch.
type Event struct {
	ID                uint    `json:"id"`
	GymID             uint    `json:"gym_id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	StartTime         APITime `json:"start_time"`
	EndTime           APITime `json:"end_time"`
	Location          string  `json:"location"`
	Capacity          int     `json:"capacity"`
	Status            string  `json:"status"`
	CreatedBy         uint    `json:"created_by"`
	ParticipantsCount int     `json:"participants_count"`
	CreatedAt         APITime `json:"created_at"`
	UpdatedAt         APITime `json:"updated_at"`
}

// Participation mirrors one registration row owned by the backend.
type Participation struct {
	ID            uint    `json:"id"`
	EventID       uint    `json:"event_id"`
	MemberID      uint    `json:"member_id"`
	GymID         uint    `json:"gym_id"`
	Status        string  `json:"status"`
	ReferenceCode string  `json:"reference_code"`
	RegisteredAt  APITime `json:"registered_at"`
}

// ParticipationRegistered is the status marker for an active registration.
const ParticipationRegistered = "REGISTERED"

// UserProfile is the public projection of another member.
type UserProfile struct {
	UserID    uint    `json:"user_id"`
	FullName  string  `json:"full_name"`
	Email     string  `json:"email"`
	RoleName  string  `json:"role_name"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

type listResponse struct {
	Events []Event `json:"events"`
	Total  int64   `json:"total"`
	Skip   int     `json:"skip"`
	Limit  int     `json:"limit"`
}

// ListFilters narrows a list fetch. Zero values are omitted from the query.
type ListFilters struct {
	Status           string
	StartDate        *time.Time
	EndDate          *time.Time
	TitleContains    string
	LocationContains string
	CreatedBy        uint
	OnlyAvailable    bool
	Skip             int
	Limit            int
}

func (f ListFilters) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.StartDate != nil {
		q.Set("start_date", f.StartDate.UTC().Format(timeLayoutPlain))
	}
	if f.EndDate != nil {
		q.Set("end_date", f.EndDate.UTC().Format(timeLayoutPlain))
	}
	if f.TitleContains != "" {
		q.Set("title_contains", f.TitleContains)
	}
	if f.LocationContains != "" {
		q.Set("location_contains", f.LocationContains)
	}
	if f.CreatedBy != 0 {
		q.Set("created_by", strconv.FormatUint(uint64(f.CreatedBy), 10))
	}
	if f.OnlyAvailable {
		q.Set("only_available", "true")
	}
	if f.Skip > 0 {
		q.Set("skip", strconv.Itoa(f.Skip))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}
