package client

import "time"

// placeholderEvents is the list shown when no credentials are configured,
// e.g. a first app launch before login. IDs are zero so none of them can
// collide with a real event.
func placeholderEvents() []Event {
	base := time.Now().UTC().Truncate(time.Hour).Add(24 * time.Hour)

	mk := func(offset time.Duration, title, desc, location string) Event {
		return Event{
			Title:       title,
			Description: desc,
			StartTime:   APITime{base.Add(offset)},
			EndTime:     APITime{base.Add(offset + time.Hour)},
			Location:    location,
			Status:      "scheduled",
		}
	}

	return []Event{
		mk(0, "Morning Yoga Flow", "Start the day with a guided vinyasa session for all levels.", "Studio A"),
		mk(3*time.Hour, "HIIT Circuit", "High intensity interval training in the functional zone.", "Main Floor"),
		mk(6*time.Hour, "Strength Fundamentals", "Barbell basics with a coach, squat, hinge and press.", "Weights Room"),
	}
}
