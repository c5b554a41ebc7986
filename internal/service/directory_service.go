package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kestrel-academy/booking-api/internal/models"
	"github.com/kestrel-academy/booking-api/pkg/config"
)

type studentLookup interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type teacherLookup interface {
	FindByID(ctx context.Context, id string) (*models.TeacherProfile, error)
	ListEligible(ctx context.Context) ([]models.TeacherProfile, error)
	List(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherProfile, int, error)
}

type courseLookup interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type bookingLookup interface {
	FindByID(ctx context.Context, id string) (*models.Booking, error)
}

// DirectoryService fronts the entity repositories with short-TTL caches.
// Cached entries are replaced whole on refresh, so concurrent readers never
// observe a partially written value. A cache failure degrades to a repository
// read instead of failing the request.
type DirectoryService struct {
	students studentLookup
	teachers teacherLookup
	courses  courseLookup
	bookings bookingLookup
	cache    *CacheService
	ttl      config.CacheConfig
	logger   *zap.Logger
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(students studentLookup, teachers teacherLookup, courses courseLookup, bookings bookingLookup, cache *CacheService, ttl config.CacheConfig, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{
		students: students,
		teachers: teachers,
		courses:  courses,
		bookings: bookings,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Student returns a student by id, cached for the student TTL.
func (s *DirectoryService) Student(ctx context.Context, id string) (*models.Student, error) {
	key := fmt.Sprintf("directory:student:%s", id)
	var cached models.Student
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	student, err := s.students.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, student, s.ttl.StudentTTL); err != nil {
		s.logger.Debug("student cache write skipped", zap.Error(err))
	}
	return student, nil
}

// Teacher returns a teacher profile by id, cached for the teacher TTL.
func (s *DirectoryService) Teacher(ctx context.Context, id string) (*models.TeacherProfile, error) {
	key := fmt.Sprintf("directory:teacher:%s", id)
	var cached models.TeacherProfile
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, teacher, s.ttl.TeacherTTL); err != nil {
		s.logger.Debug("teacher cache write skipped", zap.Error(err))
	}
	return teacher, nil
}

// EligibleTeachers returns every active, 1:1-eligible teacher in stable fetch
// order. The result is cached as a single entry for the teacher TTL.
func (s *DirectoryService) EligibleTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	const key = "directory:teachers:eligible"
	var cached []models.TeacherProfile
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	teachers, err := s.teachers.ListEligible(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, teachers, s.ttl.TeacherTTL); err != nil {
		s.logger.Debug("eligible teachers cache write skipped", zap.Error(err))
	}
	return teachers, nil
}

// ListTeachers delegates to the repository for paginated listings; listing
// queries bypass the cache.
func (s *DirectoryService) ListTeachers(ctx context.Context, filter models.TeacherFilter) ([]models.TeacherProfile, *models.Pagination, error) {
	teachers, total, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	return teachers, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Course returns a course by id, cached for the course TTL.
func (s *DirectoryService) Course(ctx context.Context, id string) (*models.Course, error) {
	key := fmt.Sprintf("directory:course:%s", id)
	var cached models.Course
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, course, s.ttl.CourseTTL); err != nil {
		s.logger.Debug("course cache write skipped", zap.Error(err))
	}
	return course, nil
}

// Booking returns a booking by id with the short booking TTL.
func (s *DirectoryService) Booking(ctx context.Context, id string) (*models.Booking, error) {
	key := fmt.Sprintf("directory:booking:%s", id)
	var cached models.Booking
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, booking, s.ttl.BookingTTL); err != nil {
		s.logger.Debug("booking cache write skipped", zap.Error(err))
	}
	return booking, nil
}
