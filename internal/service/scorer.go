package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrel-academy/booking-api/internal/models"
)

// Sub-score weights. They must sum to exactly 1.0; the weighted combination is
// part of the ranking contract, so they are constants rather than config.
const (
	weightAvailability   = 0.30
	weightExperience     = 0.20
	weightSpecialization = 0.20
	weightPreference     = 0.15
	weightPerformance    = 0.10
	weightLanguage       = 0.05
)

// Defaults applied when the caller leaves an optional criteria dimension
// empty. Applied here, not at the type boundary, so ranking outcomes have a
// single source of truth.
const (
	defaultExperienceScore     = 0.8
	defaultSpecializationScore = 0.8
	defaultPreferenceScore     = 0.5
	defaultLanguageScore       = 0.8
)

type experienceBracket struct {
	min int
	max int // -1 means open-ended
}

var experienceBrackets = map[string]experienceBracket{
	"beginner":     {min: 0, max: 2},
	"intermediate": {min: 2, max: 5},
	"advanced":     {min: 5, max: 10},
	"expert":       {min: 10, max: -1},
}

// MatchScorer computes the six-factor weighted fit of a teacher against a
// booking request. Scoring is pure: no shared mutable state, safe to fan out
// across goroutines.
type MatchScorer struct{}

// NewMatchScorer constructs a MatchScorer.
func NewMatchScorer() *MatchScorer {
	return &MatchScorer{}
}

// Score evaluates one teacher against the request given the teacher's open
// slots. Every sub-score and the overall score land in [0, 1].
func (s *MatchScorer) Score(req models.BookingRequest, teacher models.TeacherProfile, slots []models.TimeSlot) models.TeacherMatchingScore {
	breakdown := models.ScoreBreakdown{
		Availability:   s.availabilityScore(req.Criteria.PreferredTimeSlots, slots),
		Experience:     s.experienceScore(req.Criteria.TeacherPreferences.ExperienceLevel, teacher.ExperienceYears),
		Specialization: s.specializationScore(req.Criteria.LearningGoals.PrimaryObjectives, teacher.Specializations),
		Preference:     s.preferenceScore(req.Criteria.TeacherPreferences, teacher),
		Performance:    s.performanceScore(teacher.Ratings.AverageRating),
		Language:       s.languageScore(req.Criteria.TeacherPreferences.Languages, teacher.LanguagesSpoken),
	}

	overall := weightAvailability*breakdown.Availability +
		weightExperience*breakdown.Experience +
		weightSpecialization*breakdown.Specialization +
		weightPreference*breakdown.Preference +
		weightPerformance*breakdown.Performance +
		weightLanguage*breakdown.Language
	overall = clamp01(overall)

	confidence := 0.8*overall + 0.1
	if confidence > 0.9 {
		confidence = 0.9
	}

	return models.TeacherMatchingScore{
		TeacherID:       teacher.ID,
		OverallScore:    overall,
		Breakdown:       breakdown,
		AvailableSlots:  slots,
		ConfidenceLevel: confidence,
		Rationale:       s.rationale(teacher, breakdown),
	}
}

// availabilityScore is the fraction of preferred windows with a day/time-exact
// counterpart among the teacher's open slots. A teacher with no open slots
// scores zero.
func (s *MatchScorer) availabilityScore(preferred, available []models.TimeSlot) float64 {
	if len(available) == 0 || len(preferred) == 0 {
		return 0
	}
	matched := 0
	for _, want := range preferred {
		for _, slot := range available {
			if slot.IsAvailable && slot.MatchesPreference(want) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(preferred))
}

// experienceScore checks the teacher against the requested bracket. Below the
// bracket the score decays by 0.2 per missing year down to 0; above it, by 0.1
// per excess year with a floor of 0.7.
func (s *MatchScorer) experienceScore(level string, years int) float64 {
	bracket, ok := experienceBrackets[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		return defaultExperienceScore
	}

	if years < bracket.min {
		score := 1.0 - 0.2*float64(bracket.min-years)
		if score < 0 {
			return 0
		}
		return score
	}
	if bracket.max >= 0 && years > bracket.max {
		score := 1.0 - 0.1*float64(years-bracket.max)
		if score < 0.7 {
			return 0.7
		}
		return score
	}
	return 1.0
}

// specializationScore is the fraction of primary objectives matching any
// teacher specialization by case-insensitive substring in either direction.
func (s *MatchScorer) specializationScore(objectives, specializations []string) float64 {
	if len(objectives) == 0 {
		return defaultSpecializationScore
	}
	matched := 0
	for _, objective := range objectives {
		if containsSubstringMatch(specializations, objective) {
			matched++
		}
	}
	return float64(matched) / float64(len(objectives))
}

// preferenceScore averages only the preference dimensions the caller actually
// supplied: explicit teacher id match, teaching style overlap and personality
// trait overlap.
func (s *MatchScorer) preferenceScore(prefs models.TeacherPreferences, teacher models.TeacherProfile) float64 {
	var total float64
	dimensions := 0

	if len(prefs.PreferredTeacherIDs) > 0 {
		dimensions++
		for _, id := range prefs.PreferredTeacherIDs {
			if id == teacher.ID {
				total += 1.0
				break
			}
		}
	}
	if len(prefs.TeachingStyles) > 0 {
		dimensions++
		total += overlapFraction(prefs.TeachingStyles, teacher.TeachingStyles)
	}
	if len(prefs.PersonalityTraits) > 0 {
		dimensions++
		total += overlapFraction(prefs.PersonalityTraits, teacher.PersonalityTraits)
	}

	if dimensions == 0 {
		return defaultPreferenceScore
	}
	return total / float64(dimensions)
}

func (s *MatchScorer) performanceScore(averageRating float64) float64 {
	return clamp01(averageRating / 5.0)
}

// languageScore is the fraction of requested languages matched by
// case-insensitive substring against the teacher's spoken languages.
func (s *MatchScorer) languageScore(requested, spoken []string) float64 {
	if len(requested) == 0 {
		return defaultLanguageScore
	}
	matched := 0
	for _, lang := range requested {
		if containsSubstringMatch(spoken, lang) {
			matched++
		}
	}
	return float64(matched) / float64(len(requested))
}

func (s *MatchScorer) rationale(teacher models.TeacherProfile, b models.ScoreBreakdown) string {
	parts := []string{
		fmt.Sprintf("%d years of teaching experience", teacher.ExperienceYears),
		fmt.Sprintf("rated %.1f/5 across %d reviews", teacher.Ratings.AverageRating, teacher.Ratings.TotalReviews),
	}
	switch {
	case b.Availability >= 0.8:
		parts = append(parts, "schedule closely matches your preferred times")
	case b.Availability > 0:
		parts = append(parts, "partial overlap with your preferred times")
	default:
		parts = append(parts, "no direct overlap with your preferred times")
	}
	if b.Specialization >= 0.8 {
		parts = append(parts, "specializes in your learning goals")
	}
	return strings.Join(parts, "; ")
}

// sortScoresDescending orders scores by overall score, highest first. The sort
// is stable so ties preserve the original fetch order.
func sortScoresDescending(scores []models.TeacherMatchingScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].OverallScore > scores[j].OverallScore
	})
}

func overlapFraction(requested, offered []string) float64 {
	if len(requested) == 0 {
		return 0
	}
	offeredSet := make(map[string]struct{}, len(offered))
	for _, item := range offered {
		offeredSet[strings.ToLower(strings.TrimSpace(item))] = struct{}{}
	}
	matched := 0
	for _, item := range requested {
		if _, ok := offeredSet[strings.ToLower(strings.TrimSpace(item))]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(requested))
}

func containsSubstringMatch(haystack []string, needle string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return false
	}
	for _, candidate := range haystack {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
