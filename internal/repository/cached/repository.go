// Package cached serves the dashboard's reads from the entity cache and
// applies the invalidation rules of every mutation.
package cached

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
)

type Repository struct {
	store       *cache.Store
	employees   employee.EmployeeRepository
	attendance  attendance.AttendanceRepository
	fanOutLimit int
	now         func() time.Time
	overlay     *overlay
}

func NewRepository(
	store *cache.Store,
	employees employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	fanOutLimit int,
	now func() time.Time,
) *Repository {
	return &Repository{
		store:       store,
		employees:   employees,
		attendance:  attendanceRepo,
		fanOutLimit: max(fanOutLimit, 1),
		now:         now,
		overlay:     newOverlay(),
	}
}

// Today is the current calendar date.
func (r *Repository) Today() string {
	return attendance.FormatDate(r.now())
}

func (r *Repository) Now() time.Time {
	return r.now()
}

func (r *Repository) employeesQuery() *cache.Query[[]employee.Employee] {
	return cache.Register(r.store, cache.KeyEmployees, r.employees.List)
}

func (r *Repository) summaryQuery() *cache.Query[attendance.Summary] {
	return cache.Register(r.store, cache.KeyAttendanceSummary, r.attendance.Summary)
}

// Employees returns the cached employee list.
func (r *Repository) Employees(ctx context.Context) ([]employee.Employee, error) {
	return r.employeesQuery().Get(ctx)
}

// EmployeesSnapshot exposes loading and error state of the employee list.
func (r *Repository) EmployeesSnapshot() cache.Snapshot[[]employee.Employee] {
	return r.employeesQuery().Snapshot()
}

// Summary returns the cached global attendance summary of today.
func (r *Repository) Summary(ctx context.Context) (attendance.Summary, error) {
	return r.summaryQuery().Get(ctx)
}

// Records returns one employee's cached records inside dateRange.
func (r *Repository) Records(ctx context.Context, employeeID string, dateRange attendance.DateRange) ([]attendance.Record, error) {
	key := cache.RecordsKey(employeeID, dateRange.StartDate, dateRange.EndDate)
	q := cache.Register(r.store, key, func(ctx context.Context) ([]attendance.Record, error) {
		return r.attendance.List(ctx, employeeID, dateRange)
	})
	return q.Get(ctx)
}

// Refresh refetches the employee list, the summary and today's statuses
// synchronously.
func (r *Repository) Refresh(ctx context.Context) error {
	if _, err := r.employeesQuery().Refresh(ctx); err != nil {
		return err
	}
	if _, err := r.summaryQuery().Refresh(ctx); err != nil {
		return err
	}
	_, err := r.todayQuery(r.Today()).Refresh(ctx)
	return err
}

// Statuses lists the state of every cached query.
func (r *Repository) Statuses() []cache.Status {
	return r.store.Statuses()
}
