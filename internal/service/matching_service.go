package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kestrel-academy/booking-api/internal/models"
	"github.com/kestrel-academy/booking-api/pkg/config"
	appErrors "github.com/kestrel-academy/booking-api/pkg/errors"
)

// Matching outcome labels used for metrics.
const (
	outcomeBooked       = "booked"
	outcomeAlternatives = "alternatives_offered"
	outcomeNoTeachers   = "no_teachers"
	outcomeFailed       = "failed"
)

type entityDirectory interface {
	Student(ctx context.Context, id string) (*models.Student, error)
	Course(ctx context.Context, id string) (*models.Course, error)
	EligibleTeachers(ctx context.Context) ([]models.TeacherProfile, error)
}

type bookingWriter interface {
	Create(ctx context.Context, booking *models.Booking) error
}

// MatchingService runs the 1:1 booking pipeline: validate, fetch teachers and
// availability, score concurrently, rank, recommend, conflict-check the top
// candidate, then commit or offer alternatives. One logical engine instance is
// constructed at startup and injected into callers.
//
// The chosen slot is not locked between the conflict check and the commit;
// two concurrent requests for the same slot can both pass the gate. First
// write wins at the persistence layer.
type MatchingService struct {
	directory    entityDirectory
	availability AvailabilityProvider
	scorer       *MatchScorer
	recommender  *RecommendationBuilder
	conflicts    ConflictChecker
	bookings     bookingWriter
	metrics      *MetricsService
	logger       *zap.Logger
	cfg          config.MatchingConfig
	now          func() time.Time
}

// NewMatchingService constructs the matching engine.
func NewMatchingService(directory entityDirectory, availability AvailabilityProvider, conflicts ConflictChecker, bookings bookingWriter, metrics *MetricsService, logger *zap.Logger, cfg config.MatchingConfig) *MatchingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = 14
	}
	if cfg.AlternativeWindowDays <= 0 {
		cfg.AlternativeWindowDays = 7
	}
	return &MatchingService{
		directory:    directory,
		availability: availability,
		scorer:       NewMatchScorer(),
		recommender:  NewRecommendationBuilder(),
		conflicts:    conflicts,
		bookings:     bookings,
		metrics:      metrics,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

// BookOneOnOne is the sole pipeline entry point. Every path, including
// validation failure, returns a fully populated BookingResult; errors are
// values on the result, never propagated to the caller.
func (s *MatchingService) BookOneOnOne(ctx context.Context, req models.BookingRequest) (result models.BookingResult) {
	started := s.now()
	req.Status = models.RequestPending

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("matching pipeline panic", zap.String("request_id", req.ID), zap.Any("panic", rec))
			err := appErrors.Clone(appErrors.ErrBookingFailed, fmt.Sprintf("unexpected failure: %v", rec)).
				WithCategory(appErrors.CategorySystem, appErrors.SeverityCritical)
			result = s.failure(req, started, err, 0, 0)
		}
	}()

	if err := s.validate(ctx, &req); err != nil {
		return s.failure(req, started, err, 0, 0)
	}
	req.Status = models.RequestValidated

	teachers, err := s.directory.EligibleTeachers(ctx)
	if err != nil {
		return s.failure(req, started, s.systemError("failed to load eligible teachers", err), 0, 0)
	}
	if len(teachers) == 0 {
		return s.noTeachers(req, started, 0, 0)
	}

	scores, slotsConsidered, err := s.scoreAll(ctx, req, teachers)
	if err != nil {
		return s.failure(req, started, s.systemError("failed to score teachers", err), len(teachers), 0)
	}
	req.Status = models.RequestScored

	sortScoresDescending(scores)

	recommendations := s.recommender.Build(scores, req.Criteria.PreferredTimeSlots)
	req.Status = models.RequestRecommended
	if len(recommendations) == 0 {
		return s.noTeachers(req, started, len(teachers), slotsConsidered)
	}

	top := recommendations[0]
	conflicts, err := s.conflicts.Check(ctx, req.StudentID, top.TeacherMatch.TeacherID, top.RecommendedSlot, req.DurationMinutes)
	if err != nil {
		return s.failure(req, started, s.systemError("conflict check failed", err), len(teachers), slotsConsidered)
	}
	req.Status = models.RequestConflictChecked

	if len(conflicts) > 0 {
		req.Status = models.RequestAlternativesOffered
		s.observe(outcomeAlternatives, started, len(teachers))
		return models.BookingResult{
			RequestID:       req.ID,
			Success:         false,
			Recommendations: recommendations,
			Conflicts:       conflicts,
			Alternatives:    s.alternatives(ctx, req, recommendations),
			Metrics:         s.buildMetrics(started, len(teachers), slotsConsidered),
		}
	}

	booking := s.buildBooking(req, top)
	if err := s.bookings.Create(ctx, booking); err != nil {
		return s.failure(req, started, s.systemError("failed to persist booking", err), len(teachers), slotsConsidered)
	}
	req.Status = models.RequestBooked

	s.logger.Info("booking confirmed",
		zap.String("request_id", req.ID),
		zap.String("booking_id", booking.ID),
		zap.String("teacher_id", booking.TeacherID),
		zap.Time("starts_at", booking.StartsAt),
	)
	s.observe(outcomeBooked, started, len(teachers))

	return models.BookingResult{
		RequestID:       req.ID,
		Success:         true,
		Booking:         booking,
		Recommendations: recommendations,
		Metrics:         s.buildMetrics(started, len(teachers), slotsConsidered),
	}
}

// AvailableTeachers is the standalone preview listing: every active teacher
// eligible for 1:1 sessions, in stable fetch order.
func (s *MatchingService) AvailableTeachers(ctx context.Context, req models.BookingRequest) ([]models.TeacherProfile, error) {
	teachers, err := s.directory.EligibleTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load eligible teachers")
	}
	return teachers, nil
}

// validate runs the ordered preconditions: student exists, course exists,
// duration is supported, preferred slots are present. It never touches
// teachers or availability.
func (s *MatchingService) validate(ctx context.Context, req *models.BookingRequest) *appErrors.Error {
	if _, err := s.directory.Student(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || req.StudentID == "" {
			return s.validationError("Student not found")
		}
		return s.systemError("failed to load student", err)
	}
	if _, err := s.directory.Course(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) || req.CourseID == "" {
			return s.validationError("Course not found")
		}
		return s.systemError("failed to load course", err)
	}
	if !models.ValidDuration(req.DurationMinutes) {
		return s.validationError("Duration must be either 30 or 60 minutes")
	}
	if len(req.Criteria.PreferredTimeSlots) == 0 {
		return s.validationError("At least one preferred time slot is required")
	}
	return nil
}

// scoreAll fans scoring out across teachers. Each teacher's availability fetch
// and score computation is independent and side-effect-free; results land in
// per-index slots so no coordination beyond the WaitGroup is needed.
func (s *MatchingService) scoreAll(ctx context.Context, req models.BookingRequest, teachers []models.TeacherProfile) ([]models.TeacherMatchingScore, int, error) {
	scores := make([]models.TeacherMatchingScore, len(teachers))
	errs := make([]error, len(teachers))
	from := s.now()

	var wg sync.WaitGroup
	for i := range teachers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			teacher := teachers[i]
			slots, err := s.availability.OpenSlots(ctx, teacher.ID, from, s.cfg.LookaheadDays)
			if err != nil {
				errs[i] = fmt.Errorf("availability for teacher %s: %w", teacher.ID, err)
				return
			}
			scores[i] = s.scorer.Score(req, teacher, slots)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, 0, err
		}
	}

	slotsConsidered := 0
	for _, score := range scores {
		slotsConsidered += len(score.AvailableSlots)
	}
	return scores, slotsConsidered, nil
}

// alternatives assembles the fallback set offered when the top recommendation
// cannot be committed: the next ranked teachers, a fresh slot list over the
// alternative window, the complementary duration and generic flexibility
// hints.
func (s *MatchingService) alternatives(ctx context.Context, req models.BookingRequest, recommendations []models.BookingRecommendation) *models.AlternativeOptions {
	teachers := make([]models.TeacherMatchingScore, 0, 3)
	for _, rec := range recommendations[1:] {
		teachers = append(teachers, rec.TeacherMatch)
		if len(teachers) == 3 {
			break
		}
	}

	var slots []models.TimeSlot
	from := s.now()
	for _, match := range teachers {
		open, err := s.availability.OpenSlots(ctx, match.TeacherID, from, s.cfg.AlternativeWindowDays)
		if err != nil {
			s.logger.Warn("alternative slot fetch failed", zap.String("teacher_id", match.TeacherID), zap.Error(err))
			continue
		}
		slots = append(slots, open...)
		if len(slots) >= 9 {
			slots = slots[:9]
			break
		}
	}

	return &models.AlternativeOptions{
		Teachers:        teachers,
		Slots:           slots,
		DurationMinutes: models.ComplementaryDuration(req.DurationMinutes),
		FlexibleOptions: []string{
			"Consider a different time of day for more teacher options",
			"Consider one of the other recommended teachers",
		},
	}
}

func (s *MatchingService) buildBooking(req models.BookingRequest, rec models.BookingRecommendation) *models.Booking {
	id := uuid.NewString()
	start := rec.RecommendedSlot.StartTime
	return &models.Booking{
		ID:              id,
		Reference:       bookingReference(id),
		StudentID:       req.StudentID,
		TeacherID:       rec.TeacherMatch.TeacherID,
		CourseID:        req.CourseID,
		SlotID:          rec.RecommendedSlot.ID,
		StartsAt:        start,
		EndsAt:          start.Add(time.Duration(req.DurationMinutes) * time.Minute),
		DurationMinutes: req.DurationMinutes,
		MeetingLink:     fmt.Sprintf("%s/%s", strings.TrimRight(s.cfg.MeetingLinkBase, "/"), id),
		Status:          models.BookingConfirmed,
		Location:        "Online",
		CreatedAt:       s.now().UTC(),
	}
}

// bookingReference derives a short human-readable reference from the booking id.
func bookingReference(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "BK-" + strings.ToUpper(compact)
}

func (s *MatchingService) noTeachers(req models.BookingRequest, started time.Time, teachersEvaluated, slotsConsidered int) models.BookingResult {
	req.Status = models.RequestFailed
	s.observe(outcomeNoTeachers, started, teachersEvaluated)
	return models.BookingResult{
		RequestID:       req.ID,
		Success:         false,
		Recommendations: []models.BookingRecommendation{},
		Error: appErrors.Clone(appErrors.ErrNoAvailableTeachers, "").
			WithCategory(appErrors.CategoryResource, appErrors.SeverityMedium),
		Metrics: s.buildMetrics(started, teachersEvaluated, slotsConsidered),
	}
}

func (s *MatchingService) failure(req models.BookingRequest, started time.Time, err *appErrors.Error, teachersEvaluated, slotsConsidered int) models.BookingResult {
	req.Status = models.RequestFailed
	s.logger.Warn("matching pipeline failed",
		zap.String("request_id", req.ID),
		zap.String("category", err.Category),
		zap.String("reason", err.Message),
	)
	s.observe(outcomeFailed, started, teachersEvaluated)
	return models.BookingResult{
		RequestID: req.ID,
		Success:   false,
		Error:     err,
		Metrics:   s.buildMetrics(started, teachersEvaluated, slotsConsidered),
	}
}

func (s *MatchingService) validationError(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrBookingFailed, message).
		WithCategory(appErrors.CategoryValidation, appErrors.SeverityMedium)
}

func (s *MatchingService) systemError(message string, err error) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrBookingFailed.Code, appErrors.ErrBookingFailed.Status, message).
		WithCategory(appErrors.CategorySystem, appErrors.SeverityHigh)
}

func (s *MatchingService) buildMetrics(started time.Time, teachersEvaluated, slotsConsidered int) models.BookingMetrics {
	return models.BookingMetrics{
		ProcessingTimeMs:    time.Since(started).Milliseconds(),
		TeachersEvaluated:   teachersEvaluated,
		TimeSlotsConsidered: slotsConsidered,
		AlgorithmVersion:    models.AlgorithmVersion,
	}
}

func (s *MatchingService) observe(outcome string, started time.Time, teachersEvaluated int) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveMatchingRun(outcome, time.Since(started), teachersEvaluated)
}
