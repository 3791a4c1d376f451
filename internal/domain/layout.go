package domain

import (
	"encoding/json"
	"fmt"
)

type SlotKind string

const (
	SlotSeat   SlotKind = "seat"
	SlotEmpty  SlotKind = "empty"
	SlotDriver SlotKind = "driver"
)

// Authoring limits for seat layouts. Templates allow more seats than a
// vehicle's own layout; both caps are enforced where the layout is saved.
const (
	MaxLayoutColumns = 6
	MaxLayoutRows    = 20
	MaxTemplateSeats = 100
	MaxVehicleSeats  = 70
)

// Slot is one cell of a vehicle's seat grid. Empty slots render as gaps
// (aisles) but still occupy a grid cell.
type Slot struct {
	ID       string   `json:"id"`
	Row      int      `json:"row"`
	Col      int      `json:"col"`
	Kind     SlotKind `json:"type"`
	Label    string   `json:"label"`
	IsWindow bool     `json:"isWindow"`
}

// Layout is the ordered slot list making up a vehicle's seat grid.
// Seat labels are the join key against booking and blocking records,
// so they must be unique within one layout.
type Layout []Slot

// GenerateDefaultLayout builds the conventional grid for the given
// dimensions: the driver at (row 0, last column), then rows 1..rows filled
// with sequential zero-padded seat labels. First and last columns are
// window seats.
func GenerateDefaultLayout(columns, rows int) Layout {
	layout := make(Layout, 0, columns*rows+1)

	layout = append(layout, Slot{
		ID:    "driver",
		Row:   0,
		Col:   columns - 1,
		Kind:  SlotDriver,
		Label: "Driver",
	})

	n := 0
	for row := 1; row <= rows; row++ {
		for col := 0; col < columns; col++ {
			n++
			layout = append(layout, Slot{
				ID:       fmt.Sprintf("%d-%d", row, col),
				Row:      row,
				Col:      col,
				Kind:     SlotSeat,
				Label:    fmt.Sprintf("%02d", n),
				IsWindow: col == 0 || col == columns-1,
			})
		}
	}

	return layout
}

// SeatCount returns the number of seat-kind slots.
func (l Layout) SeatCount() int {
	n := 0
	for _, s := range l {
		if s.Kind == SlotSeat {
			n++
		}
	}
	return n
}

// SeatLabels returns the labels of all seat-kind slots in grid order.
func (l Layout) SeatLabels() []string {
	out := make([]string, 0, len(l))
	for _, s := range l {
		if s.Kind == SlotSeat {
			out = append(out, s.Label)
		}
	}
	return out
}

// HasSeat reports whether the layout contains a seat slot with the label.
func (l Layout) HasSeat(label string) bool {
	for _, s := range l {
		if s.Kind == SlotSeat && s.Label == label {
			return true
		}
	}
	return false
}

// Validate checks the authoring invariants: grid bounds, exactly one driver
// slot, at least one seat, unique non-empty seat labels, and the seat cap
// given by maxSeats.
func (l Layout) Validate(maxSeats int) error {
	if len(l) == 0 {
		return fmt.Errorf("layout is empty")
	}

	drivers := 0
	seats := 0
	labels := make(map[string]struct{})

	for _, s := range l {
		if s.Row < 0 || s.Row > MaxLayoutRows {
			return fmt.Errorf("slot %q: row %d out of range", s.ID, s.Row)
		}
		if s.Col < 0 || s.Col >= MaxLayoutColumns {
			return fmt.Errorf("slot %q: column %d out of range", s.ID, s.Col)
		}

		switch s.Kind {
		case SlotDriver:
			drivers++
		case SlotSeat:
			seats++
			if s.Label == "" {
				return fmt.Errorf("slot %q: seat has no label", s.ID)
			}
			if _, dup := labels[s.Label]; dup {
				return fmt.Errorf("duplicate seat label %q", s.Label)
			}
			labels[s.Label] = struct{}{}
		case SlotEmpty:
		default:
			return fmt.Errorf("slot %q: unknown kind %q", s.ID, s.Kind)
		}
	}

	if drivers != 1 {
		return fmt.Errorf("layout must have exactly one driver slot, got %d", drivers)
	}
	if seats == 0 {
		return fmt.Errorf("layout has no seats")
	}
	if seats > maxSeats {
		return fmt.Errorf("layout has %d seats, limit is %d", seats, maxSeats)
	}

	return nil
}

// Clone returns a deep copy. Applying a template to a vehicle copies the
// slot list; the vehicle's layout and the template share no state afterward.
func (l Layout) Clone() Layout {
	cp := make(Layout, len(l))
	copy(cp, l)
	return cp
}

// MarshalLayout serializes a layout for the storage boundary.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// UnmarshalLayout reconstructs a layout from its stored form.
func UnmarshalLayout(raw []byte) (Layout, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var l Layout
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("decode seat layout: %w", err)
	}
	return l, nil
}
