package cached

import (
	"log/slog"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
)

// AfterCreate invalidates what a new employee changes.
func (r *Repository) AfterCreate() {
	r.store.Invalidate(cache.KeyEmployees)
	r.store.Invalidate(cache.KeyAttendanceSummary)
	slog.Debug("Cache invalidated after create")
}

// AfterDelete invalidates what removing an employee and its records changes.
func (r *Repository) AfterDelete(employeeID string) {
	r.store.Invalidate(cache.KeyEmployees)
	r.store.Invalidate(cache.KeyAttendanceSummary)
	r.store.InvalidatePrefix(cache.RecordsPrefix(employeeID))
	r.store.InvalidatePrefix(cache.PrefixToday)
	r.store.InvalidatePrefix(cache.PrefixTrend)
	r.overlay.forget(employeeID)
	slog.Debug("Cache invalidated after delete", "employee_id", employeeID)
}

// AfterMark invalidates what a mark of (employeeID, date) changes and
// returns the generation of today's status query whose fetch will include
// it. Marks of other dates return zero and register nothing.
func (r *Repository) AfterMark(employeeID, date string) uint64 {
	var gen uint64
	if date == r.Today() {
		gen = r.todayQuery(date).Invalidate()
	} else {
		r.store.Invalidate(cache.TodayKey(date))
	}
	r.store.Invalidate(cache.KeyAttendanceSummary)
	r.store.InvalidatePrefix(cache.RecordsPrefix(employeeID))
	r.store.InvalidatePrefix(cache.PrefixTrend)
	slog.Debug("Cache invalidated after mark", "employee_id", employeeID, "date", date, "generation", gen)
	return gen
}
