package httpgin

import (
	"time"

	"github.com/ridesched/busgo/internal/domain"
)

type CreateBookingRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Name        string   `json:"name" binding:"required"`
	SeatLabels  []string `json:"seat_labels" binding:"required,min=1,dive,required"`
	PickupPoint string   `json:"pickup_point"`
	DropPoint   string   `json:"drop_point"`
}

type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required"`
	District string `json:"district" binding:"required"`
}

type CreateRouteRequest struct {
	StartLocationID int64    `json:"start_location_id" binding:"required"`
	EndLocationID   int64    `json:"end_location_id" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,gt=0"`
	Stops           []string `json:"stops"`
}

type CreateVehicleRequest struct {
	PlateNumber      string        `json:"plate_number" binding:"required"`
	Type             string        `json:"type" binding:"required"`
	Columns          int           `json:"columns" binding:"required,gt=0"`
	Rows             int           `json:"rows" binding:"required,gt=0"`
	Amenities        []string      `json:"amenities"`
	ScheduleType     string        `json:"schedule_type"`
	OperatorName     string        `json:"operator_name"`
	OperatorWhatsapp string        `json:"operator_whatsapp"`
	Layout           domain.Layout `json:"layout"`
	TemplateID       int64         `json:"template_id"`
}

type SaveTemplateRequest struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name" binding:"required"`
	Columns int           `json:"columns" binding:"required,gt=0"`
	Rows    int           `json:"rows" binding:"required,gt=0"`
	Layout  domain.Layout `json:"layout"`
}

type ScheduleTripRequest struct {
	VehicleID         int64  `json:"vehicle_id" binding:"required"`
	RouteID           int64  `json:"route_id" binding:"required"`
	Date              string `json:"date" binding:"required"`
	DepartureTime     string `json:"departure_time" binding:"required"`
	PricePerSeatCents int    `json:"price_per_seat_cents" binding:"required,gt=0"`
	BookingWindowDays int    `json:"booking_window_days"`
}

type BlockSeatsRequest struct {
	SeatLabels []string `json:"seat_labels" binding:"required,min=1,dive,required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type IDResponse struct {
	ID int64 `json:"id"`
}

type BookingResponse struct {
	BookingID     string   `json:"booking_id"`
	TripID        int64    `json:"trip_id"`
	SeatLabels    []string `json:"seat_labels"`
	AmountCents   int      `json:"amount_cents"`
	PaymentStatus string   `json:"payment_status"`
	PaymentID     string   `json:"payment_id,omitempty"`
	PickupPoint   string   `json:"pickup_point,omitempty"`
	DropPoint     string   `json:"drop_point,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:     b.ID.String(),
		TripID:        b.TripID,
		SeatLabels:    b.SeatLabels,
		AmountCents:   b.AmountCents,
		PaymentStatus: string(b.PaymentStatus),
		PaymentID:     b.PaymentID,
		PickupPoint:   b.PickupPoint,
		DropPoint:     b.DropPoint,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
