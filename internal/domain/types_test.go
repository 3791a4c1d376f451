package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictingSeats(t *testing.T) {
	tests := []struct {
		name      string
		requested []string
		taken     []string
		want      []string
	}{
		{
			name:      "No overlap",
			requested: []string{"01", "02"},
			taken:     []string{"03", "04"},
			want:      nil,
		},
		{
			name:      "Partial overlap names exactly the offenders",
			requested: []string{"01", "02", "03"},
			taken:     []string{"02", "05"},
			want:      []string{"02"},
		},
		{
			name:      "Full overlap",
			requested: []string{"07", "06"},
			taken:     []string{"06", "07", "08"},
			want:      []string{"06", "07"},
		},
		{
			name:      "Duplicate request labels reported once",
			requested: []string{"02", "02"},
			taken:     []string{"02"},
			want:      []string{"02"},
		},
		{
			name:      "Empty taken set",
			requested: []string{"01"},
			taken:     nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConflictingSeats(tt.requested, tt.taken))
		})
	}
}

func TestUnionSeats(t *testing.T) {
	got := UnionSeats([]string{"01", "02"}, []string{"02", "03"}, nil, []string{"01"})
	assert.Equal(t, []string{"01", "02", "03"}, got)
}

func TestMergePassengers(t *testing.T) {
	got := MergePassengers([]Passenger{
		{Email: "a@x.test", Name: "Ana", SeatLabels: []string{"01", "02"}},
		{Email: "b@x.test", Name: "Ben", SeatLabels: []string{"03"}},
		{Email: "a@x.test", Name: "Ana", SeatLabels: []string{"02", "04"}},
	})

	require.Len(t, got, 2, "one entry per distinct passenger")
	assert.Equal(t, "a@x.test", got[0].Email)
	assert.Equal(t, []string{"01", "02", "04"}, got[0].SeatLabels)
	assert.Equal(t, "b@x.test", got[1].Email)
	assert.Equal(t, []string{"03"}, got[1].SeatLabels)
}

func TestParseClock(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		clk, err := ParseClock("08:30")
		require.NoError(t, err)
		assert.Equal(t, Clock{Hour: 8, Minute: 30}, clk)
		assert.Equal(t, "08:30", clk.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, s := range []string{"", "25:00", "12:60", "noon"} {
			_, err := ParseClock(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestClockAddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		minutes int
		want    string
	}{
		{name: "Same day", start: "08:00", minutes: 150, want: "10:30"},
		{name: "Wraps past midnight", start: "23:30", minutes: 45, want: "00:15"},
		{name: "Exactly midnight", start: "22:00", minutes: 120, want: "00:00"},
		{name: "Multi-day wraps mod 24h", start: "10:00", minutes: 24*60 + 30, want: "10:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk, err := ParseClock(tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.want, clk.AddMinutes(tt.minutes).String())
		})
	}
}

func TestTripDepartureAt(t *testing.T) {
	trip := &Trip{
		ID:            1,
		Date:          time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		DepartureTime: "06:45",
	}

	at, err := trip.DepartureAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 6, 45, 0, 0, time.UTC), at)

	trip.DepartureTime = "bogus"
	_, err = trip.DepartureAt()
	assert.Error(t, err)
}
