package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/slovko/tutor-admin/internal/repository"
)

// Scheduler runs periodic housekeeping in the background.
type Scheduler struct {
	cancellations *repository.CancellationRepository
	logger        *zap.Logger
	stopChan      chan struct{}
}

func NewScheduler(cancellations *repository.CancellationRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cancellations: cancellations,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start launches the background tasks.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runCancellationPruneTask(ctx)
}

// Stop stops the background tasks.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runCancellationPruneTask periodically removes cancellations dated before
// today. The schedule feed only looks forward and never reads them again.
func (s *Scheduler) runCancellationPruneTask(ctx context.Context) {
	// First run right away on startup.
	s.pruneCancellations(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pruneCancellations(ctx)
		case <-s.stopChan:
			s.logger.Info("Cancellation prune task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Cancellation prune task cancelled")
			return
		}
	}
}

func (s *Scheduler) pruneCancellations(ctx context.Context) {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	deleted, err := s.cancellations.DeleteBefore(ctx, today)
	if err != nil {
		s.logger.Error("Failed to prune cancellations", zap.Error(err))
		return
	}

	if deleted > 0 {
		s.logger.Info("Pruned past cancellations", zap.Int64("deleted", deleted))
	}
}
