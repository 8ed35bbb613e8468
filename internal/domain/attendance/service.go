package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// TodayBoard returns today's status for every employee, filtered and paginated
	TodayBoard(ctx context.Context, filter BoardFilter) (TodayBoardResponse, error)

	// MarkToday marks today's status with an optimistic update that is rolled back on failure
	MarkToday(ctx context.Context, employeeID string, status Status) (RecordResponse, error)

	// MarkAttendance upserts a record for an arbitrary date
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (RecordResponse, error)

	// History returns one employee's records for a month, filtered and paginated
	History(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// ExportToday renders the filtered today board as an xlsx workbook
	ExportToday(ctx context.Context, filter BoardFilter) ([]byte, error)
}
