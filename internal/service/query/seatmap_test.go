package query

import (
	"testing"

	"github.com/ridesched/busgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSeatMap(t *testing.T) {
	layout := domain.Layout{
		{ID: "driver", Row: 0, Col: 2, Kind: domain.SlotDriver, Label: "Driver"},
		{ID: "1-0", Row: 1, Col: 0, Kind: domain.SlotSeat, Label: "01", IsWindow: true},
		{ID: "1-1", Row: 1, Col: 1, Kind: domain.SlotEmpty},
		{ID: "1-2", Row: 1, Col: 2, Kind: domain.SlotSeat, Label: "02", IsWindow: true},
		{ID: "2-0", Row: 2, Col: 0, Kind: domain.SlotSeat, Label: "03", IsWindow: true},
	}

	views := RenderSeatMap(layout, []string{"02", "03"})
	require.Len(t, views, 5)

	byID := make(map[string]SeatView, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	t.Run("Taken seats render reserved", func(t *testing.T) {
		assert.Equal(t, SeatReserved, byID["1-2"].Status)
		assert.Equal(t, SeatReserved, byID["2-0"].Status)
	})

	t.Run("Free seats render available", func(t *testing.T) {
		assert.Equal(t, SeatAvailable, byID["1-0"].Status)
	})

	t.Run("Driver and empty cells carry no status", func(t *testing.T) {
		assert.Empty(t, byID["driver"].Status)
		assert.Empty(t, byID["1-1"].Status)
	})

	t.Run("Order and geometry preserved", func(t *testing.T) {
		for i, v := range views {
			assert.Equal(t, layout[i].ID, v.ID)
			assert.Equal(t, layout[i].Row, v.Row)
			assert.Equal(t, layout[i].Col, v.Col)
			assert.Equal(t, layout[i].IsWindow, v.IsWindow)
		}
	})
}

func TestRenderSeatMapEmptyTaken(t *testing.T) {
	layout := domain.GenerateDefaultLayout(4, 2)

	views := RenderSeatMap(layout, nil)

	reserved := 0
	for _, v := range views {
		if v.Status == SeatReserved {
			reserved++
		}
	}
	assert.Zero(t, reserved)
}
