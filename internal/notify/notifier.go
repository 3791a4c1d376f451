package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ridesched/busgo/internal/domain"
)

// Notifier is the best-effort passenger-notification collaborator. Errors
// from implementations are logged by callers and never propagated: a failed
// notification must not block or roll back the state change it follows.
type Notifier interface {
	TripCancelled(ctx context.Context, tripID int64, p domain.Passenger) error
	BookingConfirmed(ctx context.Context, b *domain.Booking, email string) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// Stands in for a real email/SMS gateway.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) TripCancelled(ctx context.Context, tripID int64, p domain.Passenger) error {
	n.logger.Info("notify: trip cancelled",
		"trip_id", tripID,
		"email", p.Email,
		"name", p.Name,
		"seats", strings.Join(p.SeatLabels, ","),
	)
	return nil
}

func (n *LogNotifier) BookingConfirmed(ctx context.Context, b *domain.Booking, email string) error {
	n.logger.Info("notify: booking confirmed",
		"booking_id", b.ID,
		"trip_id", b.TripID,
		"email", email,
		"seats", strings.Join(b.SeatLabels, ","),
	)
	return nil
}
