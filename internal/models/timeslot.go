package models

import "time"

// SlotCapacity tracks enrollment limits for a time slot. One-on-one slots are
// always capped at a single student.
type SlotCapacity struct {
	MaxStudents       int `json:"max_students"`
	MinStudents       int `json:"min_students"`
	CurrentEnrollment int `json:"current_enrollment"`
	AvailableSpots    int `json:"available_spots"`
}

// OneOnOneCapacity returns the fixed capacity record for a 1:1 slot.
func OneOnOneCapacity(enrolled int) SlotCapacity {
	available := 1 - enrolled
	if available < 0 {
		available = 0
	}
	return SlotCapacity{MaxStudents: 1, MinStudents: 1, CurrentEnrollment: enrolled, AvailableSpots: available}
}

// TimeSlot represents a bookable window in a teacher's schedule.
type TimeSlot struct {
	ID              string       `json:"id"`
	StartTime       time.Time    `json:"start_time"`
	EndTime         time.Time    `json:"end_time"`
	DurationMinutes int          `json:"duration_minutes"`
	DayOfWeek       time.Weekday `json:"day_of_week"`
	IsAvailable     bool         `json:"is_available"`
	Capacity        SlotCapacity `json:"capacity"`
	Location        string       `json:"location,omitempty"`
}

// MatchesPreference reports whether the slot lands on the same weekday and
// clock time as the preferred window. Calendar dates are ignored so a
// "Monday 09:00" preference matches any future Monday 09:00 opening.
func (s TimeSlot) MatchesPreference(preferred TimeSlot) bool {
	if s.DayOfWeek != preferred.DayOfWeek {
		return false
	}
	return s.StartTime.Hour() == preferred.StartTime.Hour() &&
		s.StartTime.Minute() == preferred.StartTime.Minute()
}
