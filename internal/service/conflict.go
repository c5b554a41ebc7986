package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrel-academy/booking-api/internal/models"
)

// ConflictChecker evaluates a candidate slot for scheduling collisions. It is
// only ever invoked against the single best recommendation.
type ConflictChecker interface {
	Check(ctx context.Context, studentID, teacherID string, slot models.TimeSlot, durationMinutes int) ([]models.SchedulingConflict, error)
}

type overlappingBookingLister interface {
	FindOverlapping(ctx context.Context, teacherID, studentID string, start, end time.Time) ([]models.Booking, error)
}

// BookingConflictChecker detects collisions against confirmed bookings for
// either participant.
type BookingConflictChecker struct {
	bookings overlappingBookingLister
}

// NewBookingConflictChecker constructs a BookingConflictChecker.
func NewBookingConflictChecker(bookings overlappingBookingLister) *BookingConflictChecker {
	return &BookingConflictChecker{bookings: bookings}
}

// Check returns one conflict per colliding confirmed booking.
func (c *BookingConflictChecker) Check(ctx context.Context, studentID, teacherID string, slot models.TimeSlot, durationMinutes int) ([]models.SchedulingConflict, error) {
	end := slot.StartTime.Add(time.Duration(durationMinutes) * time.Minute)
	existing, err := c.bookings.FindOverlapping(ctx, teacherID, studentID, slot.StartTime, end)
	if err != nil {
		return nil, err
	}

	conflicts := make([]models.SchedulingConflict, 0, len(existing))
	for _, booking := range existing {
		conflict := models.SchedulingConflict{
			Slot:              slot,
			ExistingBookingID: booking.ID,
		}
		if booking.TeacherID == teacherID {
			conflict.Type = "teacher_busy"
			conflict.TeacherID = teacherID
			conflict.Description = fmt.Sprintf("teacher already has a confirmed session from %s to %s",
				booking.StartsAt.Format(time.RFC3339), booking.EndsAt.Format(time.RFC3339))
		} else {
			conflict.Type = "student_busy"
			conflict.StudentID = studentID
			conflict.Description = fmt.Sprintf("student already has a confirmed session from %s to %s",
				booking.StartsAt.Format(time.RFC3339), booking.EndsAt.Format(time.RFC3339))
		}
		conflicts = append(conflicts, conflict)
	}
	return conflicts, nil
}
