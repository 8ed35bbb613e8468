package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
)

func fixedNow() time.Time {
	return time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
}

func TestAttendanceJobs_RefreshSnapshot(t *testing.T) {
	// Setup
	store := cache.NewStore(nil, time.Second)
	defer store.Close()
	var employees, today atomic.Int32
	cache.Register(store, cache.KeyEmployees, func(ctx context.Context) (int, error) {
		return int(employees.Add(1)), nil
	})
	cache.Register(store, cache.TodayKey("2026-10-16"), func(ctx context.Context) (int, error) {
		return int(today.Add(1)), nil
	})
	jobs := NewAttendanceJobs(store, fixedNow, time.Hour)

	// Act
	err := jobs.RefreshSnapshot(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int32(1), employees.Load())
	assert.Equal(t, int32(1), today.Load())
}

func TestAttendanceJobs_RefreshSnapshot_ReportsFailures(t *testing.T) {
	store := cache.NewStore(nil, time.Second)
	defer store.Close()
	cache.Register(store, cache.KeyAttendanceSummary, func(ctx context.Context) (int, error) {
		return 0, errors.New("upstream down")
	})
	jobs := NewAttendanceJobs(store, fixedNow, time.Hour)

	err := jobs.RefreshSnapshot(context.Background())

	assert.ErrorContains(t, err, "attendance-summary")
}

func TestAttendanceJobs_EvictIdleQueries(t *testing.T) {
	store := cache.NewStore(nil, time.Second)
	defer store.Close()
	fetch := func(ctx context.Context) (int, error) { return 1, nil }
	cache.Register(store, cache.TodayKey("2026-10-15"), fetch)
	cache.Register(store, cache.RecordsKey("E1", "2026-10-01", "2026-10-31"), fetch)
	cache.Register(store, cache.KeyEmployees, fetch)
	jobs := NewAttendanceJobs(store, fixedNow, time.Millisecond)

	time.Sleep(5 * time.Millisecond)
	require.NoError(t, jobs.EvictIdleQueries(context.Background()))

	statuses := store.Statuses()
	require.Len(t, statuses, 1)
	assert.Equal(t, cache.KeyEmployees, statuses[0].Key)
}

func TestScheduler_RunOnce_JoinsErrors(t *testing.T) {
	// Setup
	s := NewScheduler()
	var ran atomic.Int32
	s.AddJob("ok", time.Minute, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	s.AddJob("broken", 0, func(ctx context.Context) error {
		ran.Add(1)
		return errors.New("nope")
	})

	// Act
	err := s.RunOnce(context.Background())

	// Assert
	assert.Equal(t, int32(2), ran.Load())
	assert.ErrorContains(t, err, "broken: nope")
	require.Len(t, s.jobs, 2)
	assert.Equal(t, "broken", s.jobs[1].Name)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	s.AddJob("disabled", 0, func(ctx context.Context) error {
		t.Error("disabled job must not run")
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
