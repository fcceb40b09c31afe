package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatherly-dev/gatherly/internal/models"
)

func eventAt(start time.Time, duration int) models.Event {
	return models.Event{
		Date:     start.Format(DateLayout),
		Time:     start.Format(TimeLayout),
		Duration: duration,
		Status:   models.StatusUpcoming,
	}
}

func TestStartTime(t *testing.T) {
	event := models.Event{Date: "2030-06-15", Time: "18:30", Duration: 60}

	start, err := StartTime(event)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2030, 6, 15, 18, 30, 0, 0, time.Local), start)

	end, err := EndTime(event)
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), end)
}

func TestStartTimeInvalid(t *testing.T) {
	_, err := StartTime(models.Event{Date: "not-a-date", Time: "18:30"})
	assert.Error(t, err)

	_, err = StartTime(models.Event{Date: "2030-06-15", Time: "25:99"})
	assert.Error(t, err)
}

func TestComputeTransitions(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name  string
		start time.Time
		want  models.EventStatus
	}{
		{"future start is upcoming", now.Add(2 * time.Hour), models.StatusUpcoming},
		{"within window is ongoing", now.Add(-30 * time.Minute), models.StatusOngoing},
		{"start boundary is ongoing", now, models.StatusOngoing},
		{"past end is completed", now.Add(-3 * time.Hour), models.StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(eventAt(tt.start, 60), now))
		})
	}
}

func TestComputeEndBoundaryIsOngoing(t *testing.T) {
	start := time.Date(2030, 6, 15, 12, 0, 0, 0, time.Local)
	event := eventAt(start, 60)

	// Exactly at start+duration the event has not yet ended.
	assert.Equal(t, models.StatusOngoing, Compute(event, start.Add(time.Hour)))
	assert.Equal(t, models.StatusCompleted, Compute(event, start.Add(time.Hour+time.Second)))
}

func TestCancelledIsSticky(t *testing.T) {
	now := time.Date(2030, 6, 15, 12, 0, 0, 0, time.Local)

	for _, start := range []time.Time{now.Add(-3 * time.Hour), now, now.Add(3 * time.Hour)} {
		event := eventAt(start, 60)
		event.Status = models.StatusCancelled
		assert.Equal(t, models.StatusCancelled, Compute(event, now))
	}
}

func TestHasStartedHasEnded(t *testing.T) {
	start := time.Date(2030, 6, 15, 12, 0, 0, 0, time.Local)
	event := eventAt(start, 30)

	assert.False(t, HasStarted(event, start.Add(-time.Minute)))
	assert.True(t, HasStarted(event, start))
	assert.False(t, HasEnded(event, start.Add(30*time.Minute)))
	assert.True(t, HasEnded(event, start.Add(31*time.Minute)))
}

func TestIsFull(t *testing.T) {
	unlimited := models.Event{}
	assert.False(t, IsFull(unlimited, 0))
	assert.False(t, IsFull(unlimited, 100000))

	limit := 2
	limited := models.Event{MaxParticipants: &limit}
	assert.False(t, IsFull(limited, 0))
	assert.False(t, IsFull(limited, 1))
	assert.True(t, IsFull(limited, 2))
	assert.True(t, IsFull(limited, 3))
}
