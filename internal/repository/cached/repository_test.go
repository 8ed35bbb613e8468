package cached

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
)

const testToday = "2026-10-16"

func testNow() time.Time {
	return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
}

func setupRepository(t *testing.T, fanOut int) (*Repository, *fixtures.Memory, *cache.Store) {
	t.Helper()
	mem := fixtures.NewMemory(testNow)
	mem.Seed(fixtures.DemoEmployees()[:4], []attendance.MarkAttendanceRequest{
		{EmployeeID: "EMP001", Date: testToday, Status: attendance.StatusPresent},
		{EmployeeID: "EMP002", Date: testToday, Status: attendance.StatusAbsent},
		{EmployeeID: "EMP001", Date: "2026-10-15", Status: attendance.StatusAbsent},
	})
	store := cache.NewStore(nil, time.Second)
	t.Cleanup(store.Close)
	return NewRepository(store, mem, mem.AttendanceRepo(), fanOut, testNow), mem, store
}

func TestRepository_TodayStatuses_FanOut(t *testing.T) {
	// Setup
	repo, mem, _ := setupRepository(t, 2)
	mem.ListErr["EMP003"] = errors.New("connection reset")

	// Act
	today, err := repo.TodayStatuses(context.Background(), testToday)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]attendance.Status{
		"EMP001": attendance.StatusPresent,
		"EMP002": attendance.StatusAbsent,
		"EMP003": attendance.StatusNotMarked,
		"EMP004": attendance.StatusNotMarked,
	}, today.Statuses)
	assert.Empty(t, today.Pending)
	assert.Equal(t, 4, mem.Calls("list_attendance"))
}

type concurrencyCounter struct {
	attendance.AttendanceRepository
	active, peak atomic.Int32
}

func (p *concurrencyCounter) List(ctx context.Context, id string, r attendance.DateRange) ([]attendance.Record, error) {
	n := p.active.Add(1)
	defer p.active.Add(-1)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return p.AttendanceRepository.List(ctx, id, r)
}

func TestRepository_TodayStatuses_RespectsFanOutLimit(t *testing.T) {
	// Setup
	mem := fixtures.NewMemory(testNow)
	mem.Seed(fixtures.DemoEmployees(), nil)
	counter := &concurrencyCounter{AttendanceRepository: mem.AttendanceRepo()}
	store := cache.NewStore(nil, time.Second)
	defer store.Close()
	repo := NewRepository(store, mem, counter, 3, testNow)

	// Act
	today, err := repo.TodayStatuses(context.Background(), testToday)

	// Assert
	require.NoError(t, err)
	assert.Len(t, today.Statuses, 12)
	assert.LessOrEqual(t, counter.peak.Load(), int32(3))
}

func TestRepository_OptimisticMark_Rollback(t *testing.T) {
	// Setup
	repo, _, _ := setupRepository(t, 4)
	ctx := context.Background()

	// Act
	h := repo.BeginMark("EMP003", testToday, attendance.StatusPresent)
	during, err := repo.TodayStatuses(ctx, testToday)
	require.NoError(t, err)
	repo.RollbackMark(h)
	after, err := repo.TodayStatuses(ctx, testToday)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, attendance.StatusPresent, during.Statuses["EMP003"])
	assert.True(t, during.Pending["EMP003"])
	assert.Equal(t, attendance.StatusNotMarked, after.Statuses["EMP003"])
	assert.False(t, after.Pending["EMP003"])
}

func TestRepository_OptimisticMark_RollbackRestoresEarlierMark(t *testing.T) {
	repo, _, _ := setupRepository(t, 4)
	ctx := context.Background()

	first := repo.BeginMark("EMP003", testToday, attendance.StatusPresent)
	repo.ConfirmMark(first, 99)
	second := repo.BeginMark("EMP003", testToday, attendance.StatusAbsent)
	repo.RollbackMark(second)

	status, err := repo.StatusOf(ctx, "EMP003", testToday)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

// Test the overlay gives way to the first fetch started after the mark
func TestRepository_OptimisticMark_DroppedByRefetch(t *testing.T) {
	// Setup
	repo, mem, store := setupRepository(t, 4)
	ctx := context.Background()
	_, err := repo.TodayStatuses(ctx, testToday)
	require.NoError(t, err)

	// Act
	h := repo.BeginMark("EMP004", testToday, attendance.StatusAbsent)
	_, err = mem.AttendanceRepo().Mark(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "EMP004", Date: testToday, Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)
	gen := repo.AfterMark("EMP004", testToday)
	repo.ConfirmMark(h, gen)
	store.Wait()
	today, err := repo.TodayStatuses(ctx, testToday)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, today.Statuses["EMP004"])
	assert.False(t, today.Pending["EMP004"], "overlay must be dropped once authoritative data landed")
	assert.Empty(t, repo.overlay.patches)
}

// Test a confirmed mark is dropped by the refetch of a query evicted and
// registered again in the meantime
func TestRepository_OptimisticMark_DroppedAfterEviction(t *testing.T) {
	// Setup
	repo, mem, store := setupRepository(t, 4)
	ctx := context.Background()
	_, err := repo.TodayStatuses(ctx, testToday)
	require.NoError(t, err)

	// Act
	h := repo.BeginMark("EMP003", testToday, attendance.StatusPresent)
	_, err = mem.AttendanceRepo().Mark(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "EMP003", Date: testToday, Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	gen := repo.AfterMark("EMP003", testToday)
	repo.ConfirmMark(h, gen)
	store.Wait()
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 1, store.EvictIdle(cache.PrefixToday, 5*time.Millisecond))
	_, err = mem.AttendanceRepo().Mark(ctx, attendance.MarkAttendanceRequest{
		EmployeeID: "EMP003", Date: testToday, Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)
	today, err := repo.TodayStatuses(ctx, testToday)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, today.Statuses["EMP003"])
	assert.False(t, today.Pending["EMP003"])
	assert.Empty(t, repo.overlay.patches)
}

func TestRepository_OptimisticMark_PastDateLeavesNoPatch(t *testing.T) {
	// Setup
	repo, _, _ := setupRepository(t, 4)
	past := "2026-10-10"

	// Act
	h := repo.BeginMark("EMP002", past, attendance.StatusPresent)
	gen := repo.AfterMark("EMP002", past)
	repo.ConfirmMark(h, gen)

	// Assert
	assert.Zero(t, gen)
	assert.Empty(t, repo.overlay.patches)
	for _, st := range repo.Statuses() {
		assert.NotEqual(t, cache.TodayKey(past), st.Key)
	}
}

func TestRepository_AfterDelete_RefetchesRecords(t *testing.T) {
	// Setup
	repo, mem, store := setupRepository(t, 4)
	ctx := context.Background()
	month := attendance.DateRange{StartDate: "2026-10-01", EndDate: "2026-10-31"}
	before, err := repo.Records(ctx, "EMP001", month)
	require.NoError(t, err)
	_, err = repo.Employees(ctx)
	require.NoError(t, err)

	// Act
	require.NoError(t, mem.Delete(ctx, "EMP001"))
	repo.AfterDelete("EMP001")
	store.Wait()
	employees, err := repo.Employees(ctx)
	require.NoError(t, err)

	// Assert
	assert.Len(t, before, 2)
	assert.Len(t, employees, 3)
	snap := cache.Register[[]attendance.Record](store, cache.RecordsKey("EMP001", "2026-10-01", "2026-10-31"), nil).Snapshot()
	assert.Error(t, snap.Err, "records of a deleted employee now fail upstream")
	assert.Len(t, snap.Value, 2, "the previous value is kept")
}

func TestRepository_TrendRecords(t *testing.T) {
	repo, mem, _ := setupRepository(t, 4)

	records, err := repo.TrendRecords(context.Background(), 7, testNow())

	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.Equal(t, 4, mem.Calls("list_attendance"))
}

func TestRepository_Refresh(t *testing.T) {
	repo, mem, _ := setupRepository(t, 4)

	require.NoError(t, repo.Refresh(context.Background()))

	assert.Equal(t, 1, mem.Calls("summary"))
	assert.GreaterOrEqual(t, mem.Calls("list_employees"), 1)
	assert.NotEmpty(t, repo.Statuses())
}
