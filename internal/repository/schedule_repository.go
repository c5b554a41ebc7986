package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kestrel-academy/booking-api/internal/models"
)

// ScheduleRepository reads teacher schedule slots. Slot rows are maintained by
// the calendar sync process; this API only ever reads them.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

type scheduleSlotRow struct {
	ID                string    `db:"id"`
	TeacherID         string    `db:"teacher_id"`
	StartsAt          time.Time `db:"starts_at"`
	EndsAt            time.Time `db:"ends_at"`
	DurationMinutes   int       `db:"duration_minutes"`
	IsAvailable       bool      `db:"is_available"`
	CurrentEnrollment int       `db:"current_enrollment"`
	Location          string    `db:"location"`
}

// ListOpen returns the teacher's open slots inside [from, to), weekends
// excluded, ordered by start time.
func (r *ScheduleRepository) ListOpen(ctx context.Context, teacherID string, from, to time.Time) ([]models.TimeSlot, error) {
	const query = `SELECT id, teacher_id, starts_at, ends_at, duration_minutes, is_available, current_enrollment, location
		FROM teacher_schedule_slots
		WHERE teacher_id = $1 AND is_available = TRUE AND current_enrollment < 1
		AND starts_at >= $2 AND starts_at < $3
		AND EXTRACT(ISODOW FROM starts_at) < 6
		ORDER BY starts_at ASC`

	var rows []scheduleSlotRow
	if err := r.db.SelectContext(ctx, &rows, query, teacherID, from, to); err != nil {
		return nil, fmt.Errorf("list open slots for teacher %s: %w", teacherID, err)
	}

	slots := make([]models.TimeSlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, models.TimeSlot{
			ID:              row.ID,
			StartTime:       row.StartsAt,
			EndTime:         row.EndsAt,
			DurationMinutes: row.DurationMinutes,
			DayOfWeek:       row.StartsAt.Weekday(),
			IsAvailable:     row.IsAvailable,
			Capacity:        models.OneOnOneCapacity(row.CurrentEnrollment),
			Location:        row.Location,
		})
	}
	return slots, nil
}
