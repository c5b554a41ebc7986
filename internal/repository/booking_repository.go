package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kestrel-academy/booking-api/internal/models"
)

const bookingColumns = `id, reference, student_id, teacher_id, course_id, slot_id, starts_at, ends_at,
	duration_minutes, meeting_link, status, location, created_at`

// BookingRepository manages persistence for confirmed bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a confirmed booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO bookings (id, reference, student_id, teacher_id, course_id, slot_id, starts_at, ends_at,
		duration_minutes, meeting_link, status, location, created_at)
		VALUES (:id, :reference, :student_id, :teacher_id, :course_id, :slot_id, :starts_at, :ends_at,
		:duration_minutes, :meeting_link, :status, :location, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// FindByID fetches a booking by ID.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1", bookingColumns)
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindOverlapping returns confirmed bookings for either participant that
// collide with the [start, end) window.
func (r *BookingRepository) FindOverlapping(ctx context.Context, teacherID, studentID string, start, end time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings
		WHERE status = $1 AND (teacher_id = $2 OR student_id = $3) AND starts_at < $5 AND ends_at > $4
		ORDER BY starts_at ASC`, bookingColumns)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, models.BookingConfirmed, teacherID, studentID, start, end); err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	return bookings, nil
}
