// Package status derives an event's lifecycle state and fullness from
// wall-clock time. Nothing here stores state: callers pass "now" in and
// persist the result themselves, so reads stay deterministic under test.
package status

import (
	"fmt"
	"time"

	"github.com/gatherly-dev/gatherly/internal/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// StartTime combines the event's calendar date and HH:MM clock time into a
// single instant in the server's local time zone.
func StartTime(event models.Event) (time.Time, error) {
	start, err := time.ParseInLocation(DateLayout+" "+TimeLayout, event.Date+" "+event.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date/time %q %q: %w", event.Date, event.Time, err)
	}
	return start, nil
}

// EndTime is the start instant plus the event's duration in minutes.
func EndTime(event models.Event) (time.Time, error) {
	start, err := StartTime(event)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(event.Duration) * time.Minute), nil
}

func HasStarted(event models.Event, now time.Time) bool {
	start, err := StartTime(event)
	if err != nil {
		return false
	}
	return !now.Before(start)
}

func HasEnded(event models.Event, now time.Time) bool {
	end, err := EndTime(event)
	if err != nil {
		return false
	}
	return now.After(end)
}

// Compute returns the event's lifecycle status at the given instant.
// Cancelled is sticky: once an event is cancelled, recomputation never
// overwrites it. Events with an unparseable date/time keep their stored
// status; validation upstream should have rejected them.
func Compute(event models.Event, now time.Time) models.EventStatus {
	if event.Status == models.StatusCancelled {
		return models.StatusCancelled
	}

	start, err := StartTime(event)
	if err != nil {
		return event.Status
	}
	end := start.Add(time.Duration(event.Duration) * time.Minute)

	switch {
	case now.Before(start):
		return models.StatusUpcoming
	case now.After(end):
		return models.StatusCompleted
	default:
		return models.StatusOngoing
	}
}

// IsFull reports whether the event has reached its participant limit.
// An unset limit means unlimited.
func IsFull(event models.Event, participants int) bool {
	if event.MaxParticipants == nil {
		return false
	}
	return participants >= *event.MaxParticipants
}
