package models

import "time"

// Supported lesson durations in minutes.
const (
	DurationShort = 30
	DurationLong  = 60
)

// ValidDuration reports whether the requested lesson length is supported.
func ValidDuration(minutes int) bool {
	return minutes == DurationShort || minutes == DurationLong
}

// ComplementaryDuration returns the other supported lesson length.
func ComplementaryDuration(minutes int) int {
	if minutes == DurationShort {
		return DurationLong
	}
	return DurationShort
}

// RequestStatus tracks a booking request through the matching pipeline. All
// states are terminal or in-memory only; nothing intermediate is persisted.
type RequestStatus string

const (
	RequestPending             RequestStatus = "pending"
	RequestValidated           RequestStatus = "validated"
	RequestScored              RequestStatus = "scored"
	RequestRecommended         RequestStatus = "recommended"
	RequestConflictChecked     RequestStatus = "conflict_checked"
	RequestBooked              RequestStatus = "booked"
	RequestAlternativesOffered RequestStatus = "alternatives_offered"
	RequestFailed              RequestStatus = "error"
)

// BookingRequest is the immutable input to the matching pipeline.
type BookingRequest struct {
	ID              string           `json:"id"`
	StudentID       string           `json:"student_id"`
	CourseID        string           `json:"course_id"`
	DurationMinutes int              `json:"duration_minutes"`
	Criteria        MatchingCriteria `json:"criteria"`
	RequestType     string           `json:"request_type"`
	Priority        string           `json:"priority,omitempty"`
	Status          RequestStatus    `json:"status"`
	RequestedAt     time.Time        `json:"requested_at"`
}

// Booking is the durable outcome of a successful match.
type Booking struct {
	ID              string    `db:"id" json:"id"`
	Reference       string    `db:"reference" json:"reference"`
	StudentID       string    `db:"student_id" json:"student_id"`
	TeacherID       string    `db:"teacher_id" json:"teacher_id"`
	CourseID        string    `db:"course_id" json:"course_id"`
	SlotID          string    `db:"slot_id" json:"slot_id"`
	StartsAt        time.Time `db:"starts_at" json:"starts_at"`
	EndsAt          time.Time `db:"ends_at" json:"ends_at"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	MeetingLink     string    `db:"meeting_link" json:"meeting_link"`
	Status          string    `db:"status" json:"status"`
	Location        string    `db:"location" json:"location"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Booking statuses.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)
