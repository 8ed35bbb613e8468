package attendance

import (
	"context"
)

// AttendanceRepository is backed by the remote HRMS API.
type AttendanceRepository interface {
	// List returns records for one employee inside the range; an empty range means all records
	List(ctx context.Context, employeeID string, dateRange DateRange) ([]Record, error)

	// Mark upserts the record for (employee, date)
	Mark(ctx context.Context, req MarkAttendanceRequest) (Record, error)

	// Summary returns today's global present/absent counts
	Summary(ctx context.Context) (Summary, error)
}
