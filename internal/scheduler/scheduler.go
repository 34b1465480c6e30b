package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/meoncu/34webdergi/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context, req domain.SyncRequest) (*domain.SyncStats, error)
}

// Scheduler re-imports the current calendar period on a fixed interval so
// the archive tracks late additions to the running issue. Existing records
// are merged over, never duplicated.
type Scheduler struct {
	syncer      Syncer
	interval    time.Duration
	forceScrape bool
	cookie      string
	logger      *slog.Logger
}

func NewScheduler(syncer Syncer, interval time.Duration, forceScrape bool, cookie string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:      syncer,
		interval:    interval,
		forceScrape: forceScrape,
		cookie:      cookie,
		logger:      logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	now := time.Now()
	req := domain.SyncRequest{
		Year:        now.Year(),
		Month:       domain.Month(now.Month()),
		ForceScrape: s.forceScrape,
		Cookie:      s.cookie,
		OnConflict:  domain.ConflictMerge,
	}

	stats, err := s.syncer.Sync(syncCtx, req)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSubscription) {
			s.logger.Warn("sync skipped, no subscription profile configured")
			return
		}
		s.logger.Error("sync failed", "error", err)
		return
	}

	s.logger.Info("scheduled sync done",
		"issue", stats.Issue,
		"added", stats.Added,
		"updated", stats.Updated,
	)
}
