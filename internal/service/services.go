package service

import (
	"log/slog"

	"github.com/ridesched/busgo/internal/notify"
	redisx "github.com/ridesched/busgo/internal/redis"
	postgres "github.com/ridesched/busgo/internal/repository/postgres"
	redis "github.com/ridesched/busgo/internal/repository/redis"
	"github.com/ridesched/busgo/internal/service/booking"
	"github.com/ridesched/busgo/internal/service/fleet"
	"github.com/ridesched/busgo/internal/service/query"
	"github.com/ridesched/busgo/internal/service/trips"
)

type Services struct {
	Booking *booking.Service
	Trips   *trips.Service
	Fleet   *fleet.Service
	Query   *query.Service
}

type Config struct {
	Booking booking.Config
	Query   query.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.TripsPubSub,
	limiter *redis.SlidingWindowLimiter,
	notifier notify.Notifier,
	logger *slog.Logger,
	cfg Config,
) *Services {
	return &Services{
		Booking: booking.New(store, cache, pubsub, limiter, notifier, logger, cfg.Booking),
		Trips:   trips.New(store, cache, pubsub, notifier, logger),
		Fleet:   fleet.New(store),
		Query:   query.New(store, cache, cfg.Query),
	}
}
