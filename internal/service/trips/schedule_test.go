package trips

import (
	"testing"
	"time"

	"github.com/ridesched/busgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveArrival(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		duration  int
		want      string
	}{
		{name: "Same day", departure: "08:00", duration: 210, want: "11:30"},
		{name: "Wraps past midnight", departure: "22:45", duration: 90, want: "00:15"},
		{name: "Zero duration", departure: "14:05", duration: 0, want: "14:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveArrival(tt.departure, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Invalid departure", func(t *testing.T) {
		_, err := DeriveArrival("late", 60)
		assert.Error(t, err)
	})
}

func TestClampWindowDays(t *testing.T) {
	assert.Equal(t, 0, ClampWindowDays(-5))
	assert.Equal(t, 0, ClampWindowDays(0))
	assert.Equal(t, 45, ClampWindowDays(45))
	assert.Equal(t, 90, ClampWindowDays(90))
	assert.Equal(t, 90, ClampWindowDays(120))
}

func TestCheckCancellation(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tripAt := func(dep time.Time, status domain.TripStatus) *domain.Trip {
		y, m, d := dep.Date()
		return &domain.Trip{
			ID:            7,
			Date:          time.Date(y, m, d, 0, 0, 0, 0, dep.Location()),
			DepartureTime: dep.Format("15:04"),
			Status:        status,
		}
	}

	t.Run("25 hours out succeeds", func(t *testing.T) {
		trip := tripAt(now.Add(25*time.Hour), domain.TripScheduled)
		assert.NoError(t, CheckCancellation(trip, now))
	})

	t.Run("23 hours out is too late", func(t *testing.T) {
		trip := tripAt(now.Add(23*time.Hour), domain.TripScheduled)
		assert.ErrorIs(t, CheckCancellation(trip, now), ErrTooLateToCancel)
	})

	t.Run("Cancelled trip cannot be cancelled again", func(t *testing.T) {
		trip := tripAt(now.Add(72*time.Hour), domain.TripCancelled)
		assert.ErrorIs(t, CheckCancellation(trip, now), ErrAlreadyFinal)
	})

	t.Run("Completed trip is final", func(t *testing.T) {
		trip := tripAt(now.Add(72*time.Hour), domain.TripCompleted)
		assert.ErrorIs(t, CheckCancellation(trip, now), ErrAlreadyFinal)
	})
}
