// Package worker contains the background deliveries that run alongside the
// HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"panel/internal/delivery"
	"panel/internal/usecase"

	"go.uber.org/fx"
)

const sweepInterval = time.Hour

// sessionSweeper periodically deletes expired session rows. Expired sessions
// are already invisible to reads; the sweeper just keeps the table small.
type sessionSweeper struct {
	authUsecase usecase.AuthUsecase
	logger      *slog.Logger
	stop        chan struct{}
	done        chan struct{}
}

// SweeperParams holds dependencies for the session sweeper.
type SweeperParams struct {
	fx.In

	Lc          fx.Lifecycle
	AuthUsecase usecase.AuthUsecase
	Logger      *slog.Logger
}

// NewSessionSweeper creates the periodic session sweeper delivery.
func NewSessionSweeper(params SweeperParams) (delivery.Delivery, error) {
	sweeper := &sessionSweeper{
		authUsecase: params.AuthUsecase,
		logger:      params.Logger,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: sweeper.shutdown,
	})

	return sweeper, nil
}

// Serve runs the sweep loop until shutdown.
func (s *sessionSweeper) Serve(ctx context.Context) error {
	defer close(s.done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	s.logger.Info("Starting session sweeper", slog.Duration("interval", sweepInterval))

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stop:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *sessionSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if _, err := s.authUsecase.SweepExpiredSessions(sweepCtx); err != nil {
		s.logger.Error("Session sweep failed", slog.Any("error", err))
	}
}

func (s *sessionSweeper) shutdown(ctx context.Context) error {
	close(s.stop)

	select {
	case <-s.done:
	case <-ctx.Done():
	}

	return nil
}
