package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultLayout(t *testing.T) {
	layout := GenerateDefaultLayout(4, 13)

	t.Run("Slot counts", func(t *testing.T) {
		assert.Len(t, layout, 53)
		assert.Equal(t, 52, layout.SeatCount())
	})

	t.Run("Driver at row 0, last column", func(t *testing.T) {
		driver := layout[0]
		assert.Equal(t, SlotDriver, driver.Kind)
		assert.Equal(t, 0, driver.Row)
		assert.Equal(t, 3, driver.Col)
	})

	t.Run("Labels are zero-padded and sequential", func(t *testing.T) {
		labels := layout.SeatLabels()
		require.Len(t, labels, 52)
		assert.Equal(t, "01", labels[0])
		assert.Equal(t, "09", labels[8])
		assert.Equal(t, "10", labels[9])
		assert.Equal(t, "52", labels[51])
	})

	t.Run("Window seats on first and last column", func(t *testing.T) {
		for _, s := range layout {
			if s.Kind != SlotSeat {
				continue
			}
			want := s.Col == 0 || s.Col == 3
			assert.Equal(t, want, s.IsWindow, "seat %s", s.Label)
		}
	})

	t.Run("Valid under the vehicle cap", func(t *testing.T) {
		assert.NoError(t, layout.Validate(MaxVehicleSeats))
	})
}

func TestLayoutRoundTrip(t *testing.T) {
	layout := GenerateDefaultLayout(4, 13)

	raw, err := MarshalLayout(layout)
	require.NoError(t, err)

	got, err := UnmarshalLayout(raw)
	require.NoError(t, err)

	assert.Equal(t, layout, got)
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name     string
		layout   Layout
		maxSeats int
		wantErr  string
	}{
		{
			name:     "Empty layout",
			layout:   Layout{},
			maxSeats: MaxVehicleSeats,
			wantErr:  "empty",
		},
		{
			name: "Duplicate seat label",
			layout: Layout{
				{ID: "driver", Row: 0, Col: 1, Kind: SlotDriver, Label: "Driver"},
				{ID: "1-0", Row: 1, Col: 0, Kind: SlotSeat, Label: "01"},
				{ID: "1-1", Row: 1, Col: 1, Kind: SlotSeat, Label: "01"},
			},
			maxSeats: MaxVehicleSeats,
			wantErr:  `duplicate seat label "01"`,
		},
		{
			name: "Missing driver",
			layout: Layout{
				{ID: "1-0", Row: 1, Col: 0, Kind: SlotSeat, Label: "01"},
			},
			maxSeats: MaxVehicleSeats,
			wantErr:  "exactly one driver",
		},
		{
			name: "Column out of range",
			layout: Layout{
				{ID: "driver", Row: 0, Col: 6, Kind: SlotDriver, Label: "Driver"},
				{ID: "1-0", Row: 1, Col: 0, Kind: SlotSeat, Label: "01"},
			},
			maxSeats: MaxVehicleSeats,
			wantErr:  "column 6 out of range",
		},
		{
			name:     "Over the vehicle cap",
			layout:   GenerateDefaultLayout(6, 12), // 72 seats
			maxSeats: MaxVehicleSeats,
			wantErr:  "limit is 70",
		},
		{
			name:     "Template cap admits what the vehicle cap rejects",
			layout:   GenerateDefaultLayout(6, 12),
			maxSeats: MaxTemplateSeats,
		},
		{
			name: "Empty slots occupy cells without labels",
			layout: Layout{
				{ID: "driver", Row: 0, Col: 2, Kind: SlotDriver, Label: "Driver"},
				{ID: "1-0", Row: 1, Col: 0, Kind: SlotSeat, Label: "01"},
				{ID: "1-1", Row: 1, Col: 1, Kind: SlotEmpty},
				{ID: "1-2", Row: 1, Col: 2, Kind: SlotSeat, Label: "02"},
			},
			maxSeats: MaxVehicleSeats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.layout.Validate(tt.maxSeats)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLayoutClone(t *testing.T) {
	tpl := GenerateDefaultLayout(3, 10)
	cp := tpl.Clone()

	cp[1].Label = "VIP"

	assert.Equal(t, "01", tpl[1].Label, "template must not observe vehicle edits")
}
