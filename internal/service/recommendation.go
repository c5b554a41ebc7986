package service

import (
	"time"

	"github.com/kestrel-academy/booking-api/internal/models"
)

const (
	maxRecommendations  = 5
	maxAlternativeSlots = 3

	latestBookingLead  = 24 * time.Hour
	cancellationPolicy = "Free cancellation up to 24 hours before the session"
	reschedulingPolicy = "Rescheduling allowed up to 2 hours before the session"
)

// RecommendationBuilder pairs ranked teachers with concrete slots and attaches
// human-readable rationale.
type RecommendationBuilder struct{}

// NewRecommendationBuilder constructs a RecommendationBuilder.
func NewRecommendationBuilder() *RecommendationBuilder {
	return &RecommendationBuilder{}
}

// Build turns the top ranked scores into at most five recommendations.
// Teachers without a single open slot are excluded. Input must already be
// sorted by overall score, highest first.
func (b *RecommendationBuilder) Build(scores []models.TeacherMatchingScore, preferred []models.TimeSlot) []models.BookingRecommendation {
	limit := len(scores)
	if limit > maxRecommendations {
		limit = maxRecommendations
	}

	recommendations := make([]models.BookingRecommendation, 0, limit)
	for _, score := range scores[:limit] {
		slot, ok := b.pickSlot(score.AvailableSlots, preferred)
		if !ok {
			continue
		}

		probability := 0.9*score.OverallScore + 0.05
		if probability > 0.95 {
			probability = 0.95
		}

		recommendations = append(recommendations, models.BookingRecommendation{
			TeacherMatch:              score,
			RecommendedSlot:           slot,
			AlternativeSlots:          b.alternativeSlots(score.AvailableSlots, slot),
			Confidence:                score.ConfidenceLevel,
			BookingSuccessProbability: probability,
			Benefits:                  b.benefits(score.Breakdown),
			Drawbacks:                 b.drawbacks(score.Breakdown),
			Constraints: models.BookingConstraints{
				LatestBookingTime:  slot.StartTime.Add(-latestBookingLead),
				CancellationPolicy: cancellationPolicy,
				ReschedulingPolicy: reschedulingPolicy,
			},
		})
	}
	return recommendations
}

// pickSlot prefers the first open slot that lands exactly on a preferred
// weekday and clock time, falling back to the teacher's first open slot.
func (b *RecommendationBuilder) pickSlot(available, preferred []models.TimeSlot) (models.TimeSlot, bool) {
	for _, want := range preferred {
		for _, slot := range available {
			if slot.IsAvailable && slot.MatchesPreference(want) {
				return slot, true
			}
		}
	}
	for _, slot := range available {
		if slot.IsAvailable {
			return slot, true
		}
	}
	return models.TimeSlot{}, false
}

func (b *RecommendationBuilder) alternativeSlots(available []models.TimeSlot, recommended models.TimeSlot) []models.TimeSlot {
	alternatives := make([]models.TimeSlot, 0, maxAlternativeSlots)
	for _, slot := range available {
		if slot.ID == recommended.ID || !slot.IsAvailable {
			continue
		}
		alternatives = append(alternatives, slot)
		if len(alternatives) == maxAlternativeSlots {
			break
		}
	}
	return alternatives
}

func (b *RecommendationBuilder) benefits(breakdown models.ScoreBreakdown) []string {
	var benefits []string
	if breakdown.Experience > 0.8 {
		benefits = append(benefits, "Highly experienced teacher")
	}
	if breakdown.Specialization > 0.8 {
		benefits = append(benefits, "Specializes in your learning goals")
	}
	if breakdown.Performance >= 0.9 {
		benefits = append(benefits, "Consistently high student ratings")
	}
	if breakdown.Availability >= 0.8 {
		benefits = append(benefits, "Excellent fit with your preferred times")
	}
	return benefits
}

func (b *RecommendationBuilder) drawbacks(breakdown models.ScoreBreakdown) []string {
	var drawbacks []string
	if breakdown.Availability < 0.5 {
		drawbacks = append(drawbacks, "Limited availability matching your preferences")
	}
	if breakdown.Experience < 0.4 {
		drawbacks = append(drawbacks, "Less experience than requested")
	}
	if breakdown.Performance < 0.6 {
		drawbacks = append(drawbacks, "Below-average student ratings")
	}
	return drawbacks
}
