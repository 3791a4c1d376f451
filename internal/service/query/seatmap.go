package query

import "github.com/ridesched/busgo/internal/domain"

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatReserved  SeatStatus = "reserved"
)

// SeatView is one slot of the rendered seat map. Status is set only for
// seat-kind slots; driver and empty cells render as-is. "Selected" is
// client state and never leaves the browser.
type SeatView struct {
	domain.Slot
	Status SeatStatus `json:"status,omitempty"`
}

// SeatMap is the passenger-facing view of a trip's seat grid.
type SeatMap struct {
	TripID  int64      `json:"trip_id"`
	Columns int        `json:"columns"`
	Rows    int        `json:"rows"`
	Slots   []SeatView `json:"slots"`
}

// RenderSeatMap derives each seat's display status by membership in the
// taken set: labels held by active bookings or blocked by the operator
// render as reserved, everything else as available.
func RenderSeatMap(layout domain.Layout, taken []string) []SeatView {
	idx := make(map[string]struct{}, len(taken))
	for _, label := range taken {
		idx[label] = struct{}{}
	}

	out := make([]SeatView, 0, len(layout))
	for _, slot := range layout {
		view := SeatView{Slot: slot}
		if slot.Kind == domain.SlotSeat {
			if _, ok := idx[slot.Label]; ok {
				view.Status = SeatReserved
			} else {
				view.Status = SeatAvailable
			}
		}
		out = append(out, view)
	}

	return out
}
