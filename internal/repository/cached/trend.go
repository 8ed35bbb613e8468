package cached

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
)

// TrendRecords returns the records of every employee over the days days
// ending today.
func (r *Repository) TrendRecords(ctx context.Context, days int, today time.Time) ([]attendance.Record, error) {
	dateRange := view.TrendRange(days, today)
	key := cache.TrendKey(days, dateRange.EndDate)

	q := cache.Register(r.store, key, func(ctx context.Context) ([]attendance.Record, error) {
		employees, err := r.Employees(ctx)
		if err != nil {
			return nil, err
		}
		records, failed := r.fanOut(ctx, employees, dateRange)
		if failed > 0 {
			slog.Warn("Trend is missing some employees", "days", days, "failed", failed)
		}
		return records, nil
	})
	return q.Get(ctx)
}
