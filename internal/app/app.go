package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ridesched/busgo/internal/config"
	"github.com/ridesched/busgo/internal/notify"
	"github.com/ridesched/busgo/internal/postgres"
	redisx "github.com/ridesched/busgo/internal/redis"
	postgresrepo "github.com/ridesched/busgo/internal/repository/postgres"
	redisrepo "github.com/ridesched/busgo/internal/repository/redis"
	"github.com/ridesched/busgo/internal/service"
	"github.com/ridesched/busgo/internal/service/booking"
	httpgin "github.com/ridesched/busgo/internal/transport/http/gin"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	services   *service.Services
	cache      *redisrepo.Cache
	pubsub     *redisx.TripsPubSub
	httpServer *http.Server
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Initialize dependencies
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Name,
		cfg.Postgres.SSLMode,
	)

	pgxPool, err := postgres.New(ctx, postgres.Config{DSN: dsn})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	rdb, err := redisx.New(ctx, redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := postgresrepo.NewStore(pgxPool)
	cache := redisrepo.New(rdb)
	pubsub := redisx.NewTripsPubSub(rdb)
	limiter := redisrepo.NewSlidingWindowLimiter(rdb, "rl", 10, 1*time.Minute)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)

	// Initialize services
	notifier := notify.NewLogNotifier(logger)
	services := service.NewServices(store, cache, pubsub, limiter, notifier, logger, service.Config{
		Booking: booking.Config{PendingTTL: cfg.Booking.PendingTTL},
	})

	operator, err := services.Fleet.EnsureOperator(ctx, cfg.Operator.Email, cfg.Operator.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to provision operator: %w", err)
	}
	logger.Info("operator ready", "email", operator.Email, "id", operator.ID)

	// Initialize Gin router
	router := httpgin.NewRouter(services, idempotencyStore, operator.ID, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		cache:    cache,
		pubsub:   pubsub,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler: router,
		},
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Expiry sweep: releases seats held by unpaid bookings past their TTL.
	g.Go(func() error {
		ticker := time.NewTicker(a.cfg.Booking.SweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gCtx.Done():
				return nil
			case <-ticker.C:
				n, err := a.services.Booking.ExpireStale(gCtx)
				if err != nil {
					a.logger.Error("expiry sweep failed", "error", err)
					continue
				}
				if n > 0 {
					a.logger.Info("expired stale bookings", "count", n)
				}
			}
		}
	})

	// Cross-instance cache invalidation via pubsub.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, func(ctx context.Context, tripID int64) {
			if err := a.cache.InvalidateTrip(ctx, tripID); err != nil {
				a.logger.Warn("cache invalidation failed", "trip_id", tripID, "error", err)
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("pubsub subscription failed: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
