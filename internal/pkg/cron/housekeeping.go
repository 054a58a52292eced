package cron

import (
	"context"
	"log/slog"
	"time"
)

const (
	JobSweepIdleDateRanges = "sweep_idle_date_ranges"
	JobPurgeRevokedTokens  = "purge_revoked_tokens"
)

// IdleSweeper drops date range selectors nobody touched recently.
type IdleSweeper interface {
	SweepIdle(ctx context.Context, now time.Time) int
}

// RevocationPurger forgets revoked tokens that have expired anyway.
type RevocationPurger interface {
	PurgeRevoked(now time.Time) int
}

type HousekeepingJobs struct {
	selectors IdleSweeper
	tokens    RevocationPurger
	now       func() time.Time
}

func NewHousekeepingJobs(selectors IdleSweeper, tokens RevocationPurger) *HousekeepingJobs {
	return &HousekeepingJobs{
		selectors: selectors,
		tokens:    tokens,
		now:       time.Now,
	}
}

func (j *HousekeepingJobs) RegisterJobs(scheduler *Scheduler, sweepEvery, purgeEvery time.Duration) {
	scheduler.AddJob(JobSweepIdleDateRanges, sweepEvery, j.SweepIdleDateRanges)
	scheduler.AddJob(JobPurgeRevokedTokens, purgeEvery, j.PurgeRevokedTokens)
}

func (j *HousekeepingJobs) SweepIdleDateRanges(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	swept := j.selectors.SweepIdle(ctx, j.now())
	slog.Debug("Cron: idle date range sweep finished", "swept", swept)
	return nil
}

func (j *HousekeepingJobs) PurgeRevokedTokens(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	purged := j.tokens.PurgeRevoked(j.now())
	if purged > 0 {
		slog.Info("Cron: expired revoked tokens purged", "count", purged)
	}
	return nil
}
