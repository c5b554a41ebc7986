package models

import (
	"time"

	"github.com/lib/pq"
)

// TeacherRatings aggregates review data for a teacher.
type TeacherRatings struct {
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	TotalReviews  int     `db:"total_reviews" json:"total_reviews"`
	RecentAverage float64 `db:"recent_average" json:"recent_average"`
}

// TeacherProfile represents an instructor eligible for matching.
type TeacherProfile struct {
	ID                  string         `db:"id" json:"id"`
	Email               string         `db:"email" json:"email"`
	FullName            string         `db:"full_name" json:"full_name"`
	Gender              string         `db:"gender" json:"gender,omitempty"`
	ExperienceYears     int            `db:"experience_years" json:"experience_years"`
	Specializations     pq.StringArray `db:"specializations" json:"specializations"`
	Certifications      pq.StringArray `db:"certifications" json:"certifications,omitempty"`
	LanguagesSpoken     pq.StringArray `db:"languages_spoken" json:"languages_spoken"`
	TeachingStyles      pq.StringArray `db:"teaching_styles" json:"teaching_styles,omitempty"`
	PersonalityTraits   pq.StringArray `db:"personality_traits" json:"personality_traits,omitempty"`
	Ratings             TeacherRatings `db:"ratings" json:"ratings"`
	AvailabilitySummary string         `db:"availability_summary" json:"availability_summary,omitempty"`
	HourlyRate          float64        `db:"hourly_rate" json:"hourly_rate"`
	Active              bool           `db:"active" json:"active"`
	OneOnOneEligible    bool           `db:"one_on_one_eligible" json:"one_on_one_eligible"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

// TeacherFilter captures filtering options for listing teachers.
type TeacherFilter struct {
	Search    string
	Active    *bool
	Eligible  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
