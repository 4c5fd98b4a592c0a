package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const JobPurgeExpired = "purge_expired_sessions"

// RefreshTokenPurger deletes refresh tokens that expired before a moment
type RefreshTokenPurger interface {
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

// CounterPurger drops expired rate limit entries
type CounterPurger interface {
	Purge() int
}

type MaintenanceJobs struct {
	tokens   RefreshTokenPurger
	counters CounterPurger
	now      func() time.Time
}

func NewMaintenanceJobs(tokens RefreshTokenPurger, counters CounterPurger) *MaintenanceJobs {
	return &MaintenanceJobs{tokens: tokens, counters: counters, now: time.Now}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob(JobPurgeExpired, spec, j.PurgeExpired)
}

// PurgeExpired removes expired refresh tokens and rate limit counters
func (j *MaintenanceJobs) PurgeExpired(ctx context.Context) error {
	var purgedCounters int
	if j.counters != nil {
		purgedCounters = j.counters.Purge()
	}

	var deletedTokens int64
	if j.tokens != nil {
		var err error
		deletedTokens, err = j.tokens.DeleteExpiredRefreshTokens(ctx, j.now())
		if err != nil {
			return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
		}
	}

	slog.Info("Cron: Expired sessions purged",
		"refresh_tokens", deletedTokens,
		"rate_limit_entries", purgedCounters)
	return nil
}
