package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"poojaseva/config"
	"poojaseva/services/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	maxRetryDelay = 30 * time.Minute
	sweepHorizon  = 24 * time.Hour
	sweepBatch    = 100
)

// RedisOpt is the asynq connection for the booking queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker processes auto-assign tasks and runs the periodic sweep of unassigned bookings.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

func NewWorker(resolver booking.AssignmentResolver, logger *zap.Logger) *Worker {
	opt := RedisOpt()
	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: config.AppConfig.WorkerConcurrency,
		Queues: map[string]int{
			assignmentQueue: 6,
			"default":       1,
		},
		RetryDelayFunc: retryDelay,
		Logger:         logger.Sugar(),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAutoAssign, handleAutoAssignTask(resolver, logger, time.Now))
	mux.HandleFunc(TypeSweepUnassigned, handleSweepTask(resolver, logger, time.Now))

	return &Worker{
		server:    srv,
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{Logger: logger.Sugar()}),
		mux:       mux,
		logger:    logger,
	}
}

// Start launches processing and the sweep schedule. Startup is retried with a
// growing backoff before giving up.
func (w *Worker) Start() error {
	if _, err := w.scheduler.Register(config.AppConfig.AutoAssignSweep, NewSweepTask()); err != nil {
		return fmt.Errorf("register sweep schedule: %w", err)
	}

	const maxAttempts = 5
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = w.server.Start(w.mux); err == nil {
			break
		}
		w.logger.Warn("worker failed to start",
			zap.Int("attempt", attempt), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
	if err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("start scheduler: %w", err)
	}
	w.logger.Info("auto-assign worker started", zap.String("sweep", config.AppConfig.AutoAssignSweep))
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func retryDelay(n int, err error, task *asynq.Task) time.Duration {
	if d := asynq.DefaultRetryDelayFunc(n, err, task); d < maxRetryDelay {
		return d
	}
	return maxRetryDelay
}

func handleAutoAssignTask(resolver booking.AssignmentResolver, logger *zap.Logger, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p AutoAssignPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid auto-assign payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		b, err := resolver.ResolveAssignment(ctx, p.BookingID)
		var unavailable *booking.AvailabilityError
		switch {
		case errors.Is(err, booking.ErrNotFound):
			logger.Info("auto-assign target gone", zap.String("booking", p.BookingID))
			return nil
		case errors.As(err, &unavailable):
			if !p.Deadline.IsZero() && now().After(p.Deadline) {
				logger.Error("auto-assign deadline passed without a provider",
					zap.String("booking", p.BookingID), zap.Time("deadline", p.Deadline))
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Warn("no provider available yet", zap.String("booking", p.BookingID))
			return err
		case err != nil:
			logger.Error("auto-assign failed", zap.String("booking", p.BookingID), zap.Error(err))
			return err
		}

		if b.ProviderID != nil {
			logger.Info("auto-assign resolved",
				zap.String("booking", b.ID), zap.String("provider", *b.ProviderID))
		}
		return nil
	}
}

// handleSweepTask resolves unassigned bookings due within the sweep horizon. It
// catches bookings whose own task was lost or archived.
func handleSweepTask(resolver booking.AssignmentResolver, logger *zap.Logger, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		due, err := resolver.UnassignedBookings(ctx, now().Add(sweepHorizon), sweepBatch)
		if err != nil {
			return fmt.Errorf("list unassigned bookings: %w", err)
		}
		resolved := 0
		for _, b := range due {
			if _, err := resolver.ResolveAssignment(ctx, b.ID); err != nil {
				logger.Warn("sweep could not resolve booking", zap.String("booking", b.ID), zap.Error(err))
				continue
			}
			resolved++
		}
		logger.Info("unassigned sweep finished", zap.Int("due", len(due)), zap.Int("resolved", resolved))
		return nil
	}
}
