package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-academy/booking-api/internal/models"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var bookingRowColumns = []string{
	"id", "reference", "student_id", "teacher_id", "course_id", "slot_id", "starts_at", "ends_at",
	"duration_minutes", "meeting_link", "status", "location", "created_at",
}

func TestBookingRepositoryCreateAndGet(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	start := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	booking := &models.Booking{
		Reference:       "BK-4BF92A11",
		StudentID:       "student-1",
		TeacherID:       "teacher-1",
		CourseID:        "course-1",
		SlotID:          "slot-1",
		StartsAt:        start,
		EndsAt:          start.Add(time.Hour),
		DurationMinutes: 60,
		MeetingLink:     "https://meet.example.test/session/abc",
		Status:          models.BookingConfirmed,
		Location:        "Online",
	}
	require.NoError(t, repo.Create(context.Background(), booking))
	require.NotEmpty(t, booking.ID)
	require.False(t, booking.CreatedAt.IsZero())

	rows := sqlmock.NewRows(bookingRowColumns).
		AddRow(booking.ID, booking.Reference, booking.StudentID, booking.TeacherID, booking.CourseID,
			booking.SlotID, booking.StartsAt, booking.EndsAt, booking.DurationMinutes,
			booking.MeetingLink, booking.Status, booking.Location, booking.CreatedAt)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, reference, student_id")).
		WithArgs(booking.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Equal(t, booking.Reference, found.Reference)
	require.Equal(t, booking.TeacherID, found.TeacherID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	start := time.Date(2026, time.September, 7, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rows := sqlmock.NewRows(bookingRowColumns).
		AddRow("b1", "BK-11111111", "other-student", "teacher-1", "course-1", "slot-9",
			start.Add(-30*time.Minute), start.Add(30*time.Minute), 60,
			"https://meet.example.test/session/b1", models.BookingConfirmed, "Online", start.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM bookings\\s+WHERE status = \\$1 AND \\(teacher_id = \\$2 OR student_id = \\$3\\)").
		WithArgs(models.BookingConfirmed, "teacher-1", "student-1", start, end).
		WillReturnRows(rows)

	bookings, err := repo.FindOverlapping(context.Background(), "teacher-1", "student-1", start, end)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.Equal(t, "b1", bookings[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
