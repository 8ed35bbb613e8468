package cached

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
)

// TodayStatuses is the status of every employee on one date.
type TodayStatuses struct {
	Date     string
	Statuses map[string]attendance.Status
	// Pending holds employees whose status is an unconfirmed optimistic mark.
	Pending map[string]bool
	Loading bool
}

func (r *Repository) todayQuery(date string) *cache.Query[map[string]attendance.Status] {
	return cache.Register(r.store, cache.TodayKey(date), func(ctx context.Context) (map[string]attendance.Status, error) {
		return r.fetchDay(ctx, date)
	})
}

// fetchDay looks up every employee's record for date concurrently. A failed
// lookup only affects its own row, which falls back to NotMarked.
func (r *Repository) fetchDay(ctx context.Context, date string) (map[string]attendance.Status, error) {
	employees, err := r.Employees(ctx)
	if err != nil {
		return nil, err
	}

	records, failed := r.fanOut(ctx, employees, attendance.Day(date))
	if failed > 0 {
		slog.Warn("Some today-status lookups failed",
			"date", date,
			"failed", failed,
			"employees", len(employees),
		)
	}
	return view.TodayStatusMap(employees, date, records), nil
}

// fanOut lists every employee's records in dateRange, at most fanOutLimit
// at a time, and reports how many lookups failed.
func (r *Repository) fanOut(ctx context.Context, employees []employee.Employee, dateRange attendance.DateRange) ([]attendance.Record, int) {
	results := make([][]attendance.Record, len(employees))
	errs := make([]error, len(employees))

	var g errgroup.Group
	g.SetLimit(r.fanOutLimit)
	for i, emp := range employees {
		g.Go(func() error {
			recs, err := r.attendance.List(ctx, emp.EmployeeID, dateRange)
			if err != nil {
				slog.Debug("Attendance lookup failed",
					"employee_id", emp.EmployeeID,
					"start_date", dateRange.StartDate,
					"end_date", dateRange.EndDate,
					"error", err,
				)
				errs[i] = err
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	var records []attendance.Record
	failed := 0
	for i := range employees {
		if errs[i] != nil {
			failed++
			continue
		}
		records = append(records, results[i]...)
	}
	return records, failed
}

// TodayStatuses returns the statuses of date with pending optimistic marks laid
// over the last fetched values.
func (r *Repository) TodayStatuses(ctx context.Context, date string) (TodayStatuses, error) {
	q := r.todayQuery(date)
	fetched, err := q.Get(ctx)
	if err != nil {
		return TodayStatuses{}, err
	}
	snap := q.Snapshot()

	statuses := make(map[string]attendance.Status, len(fetched))
	for id, s := range fetched {
		statuses[id] = s
	}

	pending := r.overlay.apply(date, snap.Generation, statuses)
	return TodayStatuses{
		Date:     date,
		Statuses: statuses,
		Pending:  pending,
		Loading:  snap.Loading,
	}, nil
}

// StatusOf returns the current status of one cell of date, overlay included.
func (r *Repository) StatusOf(ctx context.Context, employeeID, date string) (attendance.Status, error) {
	today, err := r.TodayStatuses(ctx, date)
	if err != nil {
		return "", err
	}
	if s, ok := today.Statuses[employeeID]; ok {
		return s, nil
	}
	return attendance.StatusNotMarked, nil
}
