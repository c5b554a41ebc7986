package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/kestrel-academy/booking-api/internal/models"
)

// AvailabilityProvider supplies, per teacher, the open time slots within a
// lookahead horizon. The matcher treats the result as a point-in-time
// snapshot: slots are not refreshed mid-pipeline and are not locked against
// other concurrent requests.
type AvailabilityProvider interface {
	OpenSlots(ctx context.Context, teacherID string, from time.Time, days int) ([]models.TimeSlot, error)
}

type openSlotLister interface {
	ListOpen(ctx context.Context, teacherID string, from, to time.Time) ([]models.TimeSlot, error)
}

// ScheduleAvailability reads open slots from the synced schedule tables.
type ScheduleAvailability struct {
	schedules openSlotLister
}

// NewScheduleAvailability constructs the production availability provider.
func NewScheduleAvailability(schedules openSlotLister) *ScheduleAvailability {
	return &ScheduleAvailability{schedules: schedules}
}

// OpenSlots returns the teacher's open slots over the next `days` days.
func (p *ScheduleAvailability) OpenSlots(ctx context.Context, teacherID string, from time.Time, days int) ([]models.TimeSlot, error) {
	if days <= 0 {
		days = 14
	}
	return p.schedules.ListOpen(ctx, teacherID, from, from.AddDate(0, 0, days))
}

// SyntheticAvailability generates a deterministic pseudo-random schedule from
// a seed. It exists for demo environments and tests; production wiring uses
// ScheduleAvailability.
type SyntheticAvailability struct {
	seed int64
}

// NewSyntheticAvailability constructs a seeded availability generator.
func NewSyntheticAvailability(seed int64) *SyntheticAvailability {
	return &SyntheticAvailability{seed: seed}
}

// OpenSlots produces weekday slots between 09:00 and 17:00 over the window.
// The same seed and teacher ID always yield the same schedule.
func (p *SyntheticAvailability) OpenSlots(_ context.Context, teacherID string, from time.Time, days int) ([]models.TimeSlot, error) {
	if days <= 0 {
		days = 14
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(teacherID))
	rng := rand.New(rand.NewSource(p.seed ^ int64(h.Sum64())))

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	var slots []models.TimeSlot
	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		weekday := date.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			continue
		}
		for hour := 9; hour < 17; hour++ {
			if rng.Float64() > 0.4 {
				continue
			}
			slotStart := date.Add(time.Duration(hour) * time.Hour)
			if !slotStart.After(from) {
				continue
			}
			slots = append(slots, models.TimeSlot{
				ID:              fmt.Sprintf("slot-%s-%s", teacherID, slotStart.Format("20060102-1504")),
				StartTime:       slotStart,
				EndTime:         slotStart.Add(time.Hour),
				DurationMinutes: 60,
				DayOfWeek:       weekday,
				IsAvailable:     true,
				Capacity:        models.OneOnOneCapacity(0),
				Location:        "Online",
			})
		}
	}
	return slots, nil
}
