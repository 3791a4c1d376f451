package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

type VehicleType string

const (
	VehicleBus        VehicleType = "Bus"
	VehicleVan        VehicleType = "Van"
	VehicleCar        VehicleType = "Car"
	VehicleSpecialVan VehicleType = "Special Van"
)

type ScheduleType string

const (
	ScheduleDaily  ScheduleType = "Daily"
	ScheduleRandom ScheduleType = "Random"
)

type TripStatus string

const (
	TripScheduled TripStatus = "Scheduled"
	TripCancelled TripStatus = "Cancelled by Operator"
	TripCompleted TripStatus = "Completed"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentExpired  PaymentStatus = "Expired"
	PaymentRefunded PaymentStatus = "Refunded"
)

// ActivePaymentStatuses are the booking states that keep seat labels claimed.
var ActivePaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid}

type Role string

const (
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
)

type Location struct {
	ID       int64
	Name     string
	District string
}

type Route struct {
	ID              int64
	StartLocationID int64
	EndLocationID   int64
	DurationMinutes int
	Stops           []string
}

type Vehicle struct {
	ID               int64
	PlateNumber      string
	Type             VehicleType
	Columns          int
	Rows             int
	TotalSeats       int
	Layout           Layout
	Amenities        []string
	ScheduleType     ScheduleType
	OperatorName     string
	OperatorWhatsapp string
	OwnerID          int64
}

type SeatTemplate struct {
	ID         int64
	Name       string
	Columns    int
	Rows       int
	TotalSeats int
	Layout     Layout
}

type Trip struct {
	ID                int64
	VehicleID         int64
	RouteID           int64
	Date              time.Time // calendar day, midnight in the trip's zone
	DepartureTime     string    // "HH:MM"
	ArrivalTime       string    // "HH:MM", derived
	PricePerSeatCents int
	AvailableSeats    int
	BookingWindowDays int
	BlockedSeats      []string
	Status            TripStatus
}

// DepartureAt combines the trip's calendar date with its departure
// time-of-day. The result is in the same zone as Date.
func (t *Trip) DepartureAt() (time.Time, error) {
	clk, err := ParseClock(t.DepartureTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("trip %d: %w", t.ID, err)
	}

	y, m, d := t.Date.Date()
	return time.Date(y, m, d, clk.Hour, clk.Minute, 0, 0, t.Date.Location()), nil
}

type Booking struct {
	ID            uuid.UUID
	TripID        int64
	UserID        int64
	SeatLabels    []string
	AmountCents   int
	PickupPoint   string
	DropPoint     string
	PaymentStatus PaymentStatus
	PaymentID     string
	CreatedAt     time.Time
}

type User struct {
	ID    int64
	Email string
	Name  string
	Role  Role
}

// Passenger is the notification fan-out view of a booking.
type Passenger struct {
	Email      string
	Name       string
	SeatLabels []string
}

// MergePassengers collapses per-booking rows into one entry per passenger,
// keyed by email, unioning seat labels across their bookings. First-seen
// order and name win.
func MergePassengers(ps []Passenger) []Passenger {
	idx := make(map[string]int, len(ps))
	out := make([]Passenger, 0, len(ps))
	for _, p := range ps {
		if i, ok := idx[p.Email]; ok {
			out[i].SeatLabels = UnionSeats(out[i].SeatLabels, p.SeatLabels)
			continue
		}
		idx[p.Email] = len(out)
		out = append(out, p)
	}
	return out
}

type Clock struct {
	Hour   int
	Minute int
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// ParseClock parses a "HH:MM" time-of-day string.
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return Clock{}, fmt.Errorf("invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid time of day %q", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// AddMinutes advances the clock by the given number of minutes,
// wrapping around midnight.
func (c Clock) AddMinutes(minutes int) Clock {
	total := c.Hour*60 + c.Minute + minutes
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return Clock{Hour: total / 60, Minute: total % 60}
}

// ConflictingSeats returns the requested labels already present in taken,
// sorted, so callers can name the exact offenders.
func ConflictingSeats(requested, taken []string) []string {
	idx := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		idx[s] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{}, len(requested))
	for _, s := range requested {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}

		if _, ok := idx[s]; ok {
			out = append(out, s)
		}
	}

	sort.Strings(out)
	return out
}

// UnionSeats merges label sets, deduplicating while preserving first-seen order.
func UnionSeats(sets ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, set := range sets {
		for _, s := range set {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
