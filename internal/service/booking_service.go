package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/kestrel-academy/booking-api/internal/models"
	appErrors "github.com/kestrel-academy/booking-api/pkg/errors"
	"github.com/kestrel-academy/booking-api/pkg/export"
)

type bookingDirectory interface {
	Booking(ctx context.Context, id string) (*models.Booking, error)
	Student(ctx context.Context, id string) (*models.Student, error)
	Teacher(ctx context.Context, id string) (*models.TeacherProfile, error)
	Course(ctx context.Context, id string) (*models.Course, error)
}

// BookingService serves read access to committed bookings and renders
// confirmation slips.
type BookingService struct {
	directory bookingDirectory
	exporter  *export.ConfirmationExporter
	logger    *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(directory bookingDirectory, exporter *export.ConfirmationExporter, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if exporter == nil {
		exporter = export.NewConfirmationExporter()
	}
	return &BookingService{directory: directory, exporter: exporter, logger: logger}
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.directory.Booking(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	return booking, nil
}

// Confirmation renders the booking confirmation PDF.
func (s *BookingService) Confirmation(ctx context.Context, id string) ([]byte, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data := export.ConfirmationData{
		Reference:   booking.Reference,
		StartsAt:    booking.StartsAt,
		EndsAt:      booking.EndsAt,
		Duration:    booking.DurationMinutes,
		MeetingLink: booking.MeetingLink,
		Location:    booking.Location,
	}

	if student, err := s.directory.Student(ctx, booking.StudentID); err == nil {
		data.StudentName = student.FullName
	} else {
		s.logger.Warn("confirmation missing student name", zap.String("booking_id", id), zap.Error(err))
	}
	if teacher, err := s.directory.Teacher(ctx, booking.TeacherID); err == nil {
		data.TeacherName = teacher.FullName
	} else {
		s.logger.Warn("confirmation missing teacher name", zap.String("booking_id", id), zap.Error(err))
	}
	if course, err := s.directory.Course(ctx, booking.CourseID); err == nil {
		data.CourseTitle = course.Title
	} else {
		s.logger.Warn("confirmation missing course title", zap.String("booking_id", id), zap.Error(err))
	}

	payload, err := s.exporter.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render confirmation")
	}
	return payload, nil
}
