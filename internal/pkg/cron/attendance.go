package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
)

// AttendanceJobs keeps the cached dashboard data fresh between user actions
type AttendanceJobs struct {
	store   *cache.Store
	now     func() time.Time
	idleTTL time.Duration
}

func NewAttendanceJobs(store *cache.Store, now func() time.Time, idleTTL time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		store:   store,
		now:     now,
		idleTTL: idleTTL,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, refreshInterval time.Duration) {
	scheduler.AddJob("refresh_dashboard_snapshot", refreshInterval, j.RefreshSnapshot)
	scheduler.AddJob("evict_idle_queries", 10*time.Minute, j.EvictIdleQueries)
}

// RefreshSnapshot refetches the employee list, the summary and today's
// statuses so changes made outside this dashboard show up.
func (j *AttendanceJobs) RefreshSnapshot(ctx context.Context) error {
	today := attendance.FormatDate(j.now())
	keys := []string{cache.KeyEmployees, cache.KeyAttendanceSummary, cache.TodayKey(today)}

	var errs []error
	refreshed := 0
	for _, key := range keys {
		err := j.store.Refresh(ctx, key)
		switch {
		case errors.Is(err, cache.ErrUnknownKey):
			// nobody has asked for it yet
		case err != nil:
			errs = append(errs, fmt.Errorf("refresh %s: %w", key, err))
		default:
			refreshed++
		}
	}

	slog.Debug("Cron: Dashboard snapshot refreshed", "refreshed", refreshed, "failed", len(errs))
	return errors.Join(errs...)
}

// EvictIdleQueries drops per-day and per-range queries nobody reads anymore
func (j *AttendanceJobs) EvictIdleQueries(ctx context.Context) error {
	evicted := 0
	for _, prefix := range []string{cache.PrefixRecords, cache.PrefixToday, cache.PrefixTrend} {
		evicted += j.store.EvictIdle(prefix, j.idleTTL)
	}
	if evicted > 0 {
		slog.Info("Cron: Evicted idle cache entries", "count", evicted)
	}
	return nil
}
