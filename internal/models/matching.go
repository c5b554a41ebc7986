package models

import (
	"time"

	appErrors "github.com/kestrel-academy/booking-api/pkg/errors"
)

// AlgorithmVersion identifies the matching algorithm revision reported in
// result metrics.
const AlgorithmVersion = "1.3.0"

// MatchingCriteria drives teacher scoring. Optional fields carry documented
// defaults that are applied inside the scorer, not here, because they change
// ranking outcomes and must stay in one place.
type MatchingCriteria struct {
	PreferredTimeSlots  []TimeSlot         `json:"preferred_time_slots"`
	DurationPreference  int                `json:"duration_preference,omitempty"`
	TeacherPreferences  TeacherPreferences `json:"teacher_preferences,omitempty"`
	LearningGoals       LearningGoals      `json:"learning_goals,omitempty"`
	Urgency             string             `json:"urgency,omitempty"`
	FlexibleScheduling  bool               `json:"flexible_scheduling,omitempty"`
	MaxScheduleVariance int                `json:"max_schedule_variance_days,omitempty"`
}

// TeacherPreferences captures the caller's teacher attribute wishes. Every
// field is optional.
type TeacherPreferences struct {
	PreferredTeacherIDs []string `json:"preferred_teacher_ids,omitempty"`
	Gender              string   `json:"gender,omitempty"`
	ExperienceLevel     string   `json:"experience_level,omitempty"`
	TeachingStyles      []string `json:"teaching_styles,omitempty"`
	PersonalityTraits   []string `json:"personality_traits,omitempty"`
	Languages           []string `json:"languages,omitempty"`
}

// LearningGoals describes what the student wants out of the lessons.
type LearningGoals struct {
	PrimaryObjectives []string `json:"primary_objectives,omitempty"`
	SkillFocus        []string `json:"skill_focus,omitempty"`
	ImprovementAreas  []string `json:"improvement_areas,omitempty"`
}

// ScoreBreakdown holds the six normalized sub-scores.
type ScoreBreakdown struct {
	Availability   float64 `json:"availability"`
	Experience     float64 `json:"experience"`
	Specialization float64 `json:"specialization"`
	Preference     float64 `json:"preference"`
	Performance    float64 `json:"performance"`
	Language       float64 `json:"language"`
}

// TeacherMatchingScore is the scored fit of one teacher against a request.
type TeacherMatchingScore struct {
	TeacherID       string         `json:"teacher_id"`
	OverallScore    float64        `json:"overall_score"`
	Breakdown       ScoreBreakdown `json:"score_breakdown"`
	AvailableSlots  []TimeSlot     `json:"available_slots"`
	ConfidenceLevel float64        `json:"confidence_level"`
	Rationale       string         `json:"matching_rationale"`
}

// BookingConstraints are the fixed policy constants attached to every
// recommendation.
type BookingConstraints struct {
	LatestBookingTime  time.Time `json:"latest_booking_time"`
	CancellationPolicy string    `json:"cancellation_policy"`
	ReschedulingPolicy string    `json:"rescheduling_policy"`
}

// BookingRecommendation pairs a scored teacher with concrete slots.
type BookingRecommendation struct {
	TeacherMatch              TeacherMatchingScore `json:"teacher_match"`
	RecommendedSlot           TimeSlot             `json:"recommended_slot"`
	AlternativeSlots          []TimeSlot           `json:"alternative_slots"`
	Confidence                float64              `json:"confidence"`
	BookingSuccessProbability float64              `json:"booking_success_probability"`
	Benefits                  []string             `json:"benefits"`
	Drawbacks                 []string             `json:"drawbacks"`
	Constraints               BookingConstraints   `json:"constraints"`
}

// SchedulingConflict is a detected collision blocking a recommendation.
type SchedulingConflict struct {
	Type              string   `json:"type"`
	TeacherID         string   `json:"teacher_id,omitempty"`
	StudentID         string   `json:"student_id,omitempty"`
	Slot              TimeSlot `json:"slot"`
	ExistingBookingID string   `json:"existing_booking_id,omitempty"`
	Description       string   `json:"description"`
}

// AlternativeOptions is the fallback set offered when the top recommendation
// cannot be committed.
type AlternativeOptions struct {
	Teachers        []TeacherMatchingScore `json:"teachers"`
	Slots           []TimeSlot             `json:"slots"`
	DurationMinutes int                    `json:"duration_minutes"`
	FlexibleOptions []string               `json:"flexible_options"`
}

// BookingMetrics reports pipeline timing and evaluation counts.
type BookingMetrics struct {
	ProcessingTimeMs    int64  `json:"processing_time_ms"`
	TeachersEvaluated   int    `json:"teachers_evaluated"`
	TimeSlotsConsidered int    `json:"time_slots_considered"`
	AlgorithmVersion    string `json:"algorithm_version"`
}

// BookingResult is the single structured outcome of a matching run. Errors are
// carried as values; the engine never lets a failure escape as a panic or a
// bare error to the handler layer.
type BookingResult struct {
	RequestID       string                  `json:"request_id"`
	Success         bool                    `json:"success"`
	Booking         *Booking                `json:"booking,omitempty"`
	Recommendations []BookingRecommendation `json:"recommendations,omitempty"`
	Conflicts       []SchedulingConflict    `json:"conflicts,omitempty"`
	Alternatives    *AlternativeOptions     `json:"alternatives,omitempty"`
	Metrics         BookingMetrics          `json:"metrics"`
	Error           *appErrors.Error        `json:"error,omitempty"`
}
