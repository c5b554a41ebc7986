package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrel-academy/booking-api/internal/models"
)

type stubOverlapLister struct {
	bookings []models.Booking
	err      error

	gotStart time.Time
	gotEnd   time.Time
}

func (l *stubOverlapLister) FindOverlapping(_ context.Context, _, _ string, start, end time.Time) ([]models.Booking, error) {
	l.gotStart, l.gotEnd = start, end
	return l.bookings, l.err
}

func TestConflictCheckClassifiesParticipants(t *testing.T) {
	slot := mondaySlot(10, 0)
	lister := &stubOverlapLister{bookings: []models.Booking{
		{ID: "b1", TeacherID: "teacher-1", StudentID: "other-student", StartsAt: slot.StartTime, EndsAt: slot.EndTime},
		{ID: "b2", TeacherID: "other-teacher", StudentID: "student-1", StartsAt: slot.StartTime, EndsAt: slot.EndTime},
	}}
	checker := NewBookingConflictChecker(lister)

	conflicts, err := checker.Check(context.Background(), "student-1", "teacher-1", slot, 60)

	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, "teacher_busy", conflicts[0].Type)
	assert.Equal(t, "teacher-1", conflicts[0].TeacherID)
	assert.Equal(t, "b1", conflicts[0].ExistingBookingID)
	assert.Equal(t, "student_busy", conflicts[1].Type)
	assert.Equal(t, "student-1", conflicts[1].StudentID)
}

func TestConflictCheckWindowUsesRequestedDuration(t *testing.T) {
	slot := mondaySlot(10, 0)
	lister := &stubOverlapLister{}
	checker := NewBookingConflictChecker(lister)

	_, err := checker.Check(context.Background(), "student-1", "teacher-1", slot, 30)

	require.NoError(t, err)
	assert.Equal(t, slot.StartTime, lister.gotStart)
	assert.Equal(t, slot.StartTime.Add(30*time.Minute), lister.gotEnd)
}

func TestConflictCheckCleanSlot(t *testing.T) {
	checker := NewBookingConflictChecker(&stubOverlapLister{})

	conflicts, err := checker.Check(context.Background(), "student-1", "teacher-1", mondaySlot(10, 0), 60)

	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestConflictCheckPropagatesListerError(t *testing.T) {
	checker := NewBookingConflictChecker(&stubOverlapLister{err: errors.New("db down")})

	_, err := checker.Check(context.Background(), "student-1", "teacher-1", mondaySlot(10, 0), 60)

	assert.Error(t, err)
}
