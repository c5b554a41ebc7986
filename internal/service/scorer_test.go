package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-academy/booking-api/internal/models"
)

func mondaySlot(hour int, weekOffset int) models.TimeSlot {
	start := time.Date(2026, time.September, 7, hour, 0, 0, 0, time.UTC).AddDate(0, 0, 7*weekOffset)
	return models.TimeSlot{
		ID:              start.Format("slot-20060102-1504"),
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		DayOfWeek:       start.Weekday(),
		IsAvailable:     true,
		Capacity:        models.OneOnOneCapacity(0),
	}
}

func TestScoreWeightsSumToOne(t *testing.T) {
	sum := weightAvailability + weightExperience + weightSpecialization + weightPreference + weightPerformance + weightLanguage
	assert.InEpsilon(t, 1.0, sum, 1e-9)
}

func TestAvailabilityScore(t *testing.T) {
	scorer := NewMatchScorer()

	preferred := []models.TimeSlot{mondaySlot(9, 0), mondaySlot(14, 0)}
	available := []models.TimeSlot{mondaySlot(9, 1), mondaySlot(11, 1)}

	// One of two preferred windows has a day/time-exact counterpart.
	assert.InDelta(t, 0.5, scorer.availabilityScore(preferred, available), 1e-9)

	// No open slots at all scores zero.
	assert.Zero(t, scorer.availabilityScore(preferred, nil))
}

func TestExperienceScoreBrackets(t *testing.T) {
	scorer := NewMatchScorer()

	tests := []struct {
		name  string
		level string
		years int
		want  float64
	}{
		{"inside bracket", "advanced", 7, 1.0},
		{"lower bound", "advanced", 5, 1.0},
		{"upper bound", "advanced", 10, 1.0},
		{"one year below", "advanced", 4, 0.8},
		{"far below floors at zero", "expert", 2, 0.0},
		{"one year above", "intermediate", 6, 0.9},
		{"far above floors at 0.7", "beginner", 20, 0.7},
		{"expert open ended", "expert", 30, 1.0},
		{"no bracket requested", "", 3, 0.8},
		{"unknown bracket", "wizard", 3, 0.8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scorer.experienceScore(tc.level, tc.years), 1e-9)
		})
	}
}

func TestSpecializationScore(t *testing.T) {
	scorer := NewMatchScorer()

	specs := []string{"Conversational English", "IELTS Preparation"}

	// Substring match in either direction, case-insensitive.
	assert.InDelta(t, 1.0, scorer.specializationScore([]string{"ielts"}, specs), 1e-9)
	assert.InDelta(t, 0.5, scorer.specializationScore([]string{"ielts", "business writing"}, specs), 1e-9)

	// No goals given falls back to the documented default.
	assert.InDelta(t, 0.8, scorer.specializationScore(nil, specs), 1e-9)
}

func TestPreferenceScoreAveragesSuppliedDimensionsOnly(t *testing.T) {
	scorer := NewMatchScorer()
	teacher := models.TeacherProfile{
		ID:                "t1",
		TeachingStyles:    []string{"visual", "structured"},
		PersonalityTraits: []string{"patient", "energetic"},
	}

	// Nothing supplied: neutral default.
	assert.InDelta(t, 0.5, scorer.preferenceScore(models.TeacherPreferences{}, teacher), 1e-9)

	// Only explicit teacher id supplied and it matches.
	assert.InDelta(t, 1.0, scorer.preferenceScore(models.TeacherPreferences{PreferredTeacherIDs: []string{"t1"}}, teacher), 1e-9)

	// Teacher id miss plus full style overlap averages to 0.5.
	prefs := models.TeacherPreferences{
		PreferredTeacherIDs: []string{"someone-else"},
		TeachingStyles:      []string{"Visual", "Structured"},
	}
	assert.InDelta(t, 0.5, scorer.preferenceScore(prefs, teacher), 1e-9)

	// Half trait overlap alone.
	prefs = models.TeacherPreferences{PersonalityTraits: []string{"patient", "strict"}}
	assert.InDelta(t, 0.5, scorer.preferenceScore(prefs, teacher), 1e-9)
}

func TestLanguageScore(t *testing.T) {
	scorer := NewMatchScorer()
	spoken := []string{"English", "Spanish"}

	assert.InDelta(t, 0.8, scorer.languageScore(nil, spoken), 1e-9)
	assert.InDelta(t, 1.0, scorer.languageScore([]string{"english"}, spoken), 1e-9)
	assert.InDelta(t, 0.5, scorer.languageScore([]string{"english", "mandarin"}, spoken), 1e-9)
}

func TestScoreOverallBoundsAndConfidence(t *testing.T) {
	scorer := NewMatchScorer()

	teacher := models.TeacherProfile{
		ID:              "t1",
		ExperienceYears: 6,
		Specializations: []string{"Conversational English"},
		LanguagesSpoken: []string{"English"},
		Ratings:         models.TeacherRatings{AverageRating: 4.8, TotalReviews: 120},
	}
	req := models.BookingRequest{
		DurationMinutes: 60,
		Criteria: models.MatchingCriteria{
			PreferredTimeSlots: []models.TimeSlot{mondaySlot(9, 0)},
			LearningGoals:      models.LearningGoals{PrimaryObjectives: []string{"conversational english"}},
		},
	}

	score := scorer.Score(req, teacher, []models.TimeSlot{mondaySlot(9, 1), mondaySlot(11, 1)})

	require.Equal(t, "t1", score.TeacherID)
	assert.GreaterOrEqual(t, score.OverallScore, 0.0)
	assert.LessOrEqual(t, score.OverallScore, 1.0)
	assert.Greater(t, score.OverallScore, 0.7)
	assert.InDelta(t, minFloat(0.9, 0.8*score.OverallScore+0.1), score.ConfidenceLevel, 1e-9)
	assert.NotEmpty(t, score.Rationale)

	for _, sub := range []float64{
		score.Breakdown.Availability,
		score.Breakdown.Experience,
		score.Breakdown.Specialization,
		score.Breakdown.Preference,
		score.Breakdown.Performance,
		score.Breakdown.Language,
	} {
		assert.GreaterOrEqual(t, sub, 0.0)
		assert.LessOrEqual(t, sub, 1.0)
	}
}

func TestConfidenceIsCapped(t *testing.T) {
	scorer := NewMatchScorer()

	teacher := models.TeacherProfile{
		ID:              "t-perfect",
		ExperienceYears: 7,
		Specializations: []string{"Everything"},
		LanguagesSpoken: []string{"English"},
		Ratings:         models.TeacherRatings{AverageRating: 5.0},
	}
	req := models.BookingRequest{
		Criteria: models.MatchingCriteria{
			PreferredTimeSlots: []models.TimeSlot{mondaySlot(9, 0)},
			TeacherPreferences: models.TeacherPreferences{
				PreferredTeacherIDs: []string{"t-perfect"},
				ExperienceLevel:     "advanced",
				Languages:           []string{"english"},
			},
			LearningGoals: models.LearningGoals{PrimaryObjectives: []string{"everything"}},
		},
	}

	score := scorer.Score(req, teacher, []models.TimeSlot{mondaySlot(9, 1)})
	assert.InDelta(t, 1.0, score.OverallScore, 1e-9)
	assert.InDelta(t, 0.9, score.ConfidenceLevel, 1e-9)
}

func TestSortScoresDescendingIsStable(t *testing.T) {
	scores := []models.TeacherMatchingScore{
		{TeacherID: "low", OverallScore: 0.3},
		{TeacherID: "tie-first", OverallScore: 0.8},
		{TeacherID: "tie-second", OverallScore: 0.8},
		{TeacherID: "high", OverallScore: 0.9},
	}

	sortScoresDescending(scores)

	require.Len(t, scores, 4)
	assert.Equal(t, "high", scores[0].TeacherID)
	assert.Equal(t, "tie-first", scores[1].TeacherID)
	assert.Equal(t, "tie-second", scores[2].TeacherID)
	assert.Equal(t, "low", scores[3].TeacherID)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
