package booking

import (
	"testing"
	"time"

	"github.com/ridesched/busgo/internal/domain"
	"github.com/stretchr/testify/assert"
)

func tripDepartingAt(dep time.Time, windowDays int) *domain.Trip {
	y, m, d := dep.Date()
	return &domain.Trip{
		ID:                1,
		Date:              time.Date(y, m, d, 0, 0, 0, 0, dep.Location()),
		DepartureTime:     dep.Format("15:04"),
		BookingWindowDays: windowDays,
		Status:            domain.TripScheduled,
	}
}

func TestCheckWindow(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		departure  time.Time
		windowDays int
		wantErr    error
	}{
		{
			name:      "Departing in 20 minutes is rejected",
			departure: now.Add(20 * time.Minute),
			wantErr:   ErrTooCloseToDeparture,
		},
		{
			name:      "Departing in 31 minutes is accepted",
			departure: now.Add(31 * time.Minute),
		},
		{
			name:      "Exactly 30 minutes is accepted",
			departure: now.Add(30 * time.Minute),
		},
		{
			name:      "Departure in the past is rejected",
			departure: now.Add(-1 * time.Hour),
			wantErr:   ErrTooCloseToDeparture,
		},
		{
			name:       "Inside the advance window",
			departure:  now.AddDate(0, 0, 10),
			windowDays: 30,
		},
		{
			name:       "Beyond the advance window",
			departure:  now.AddDate(0, 0, 10),
			windowDays: 7,
			wantErr:    ErrOutsideBookingWindow,
		},
		{
			name:       "Zero window days means no ceiling",
			departure:  now.AddDate(0, 0, 80),
			windowDays: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckWindow(tripDepartingAt(tt.departure, tt.windowDays), now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSeatConflictError(t *testing.T) {
	err := SeatConflictError{Labels: []string{"04", "07"}}

	assert.ErrorIs(t, err, ErrSeatConflict)
	assert.Equal(t, "seats already taken: 04, 07", err.Error())
}
