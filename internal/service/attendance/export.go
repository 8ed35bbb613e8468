package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
)

const (
	boardSheet   = "Today"
	summarySheet = "Summary"
)

var boardHeaders = []string{"Employee ID", "Full Name", "Email", "Department", "Status"}

// ExportToday implements attendance.AttendanceService. Every filtered row
// is written regardless of the current page, and the board's own filters
// are left as they were.
func (s *AttendanceServiceImpl) ExportToday(ctx context.Context, f attendance.BoardFilter) ([]byte, error) {
	b, err := s.loadBoard(ctx, f, false)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	sheet := file.GetSheetName(file.GetActiveSheetIndex())
	if err := file.SetSheetName(sheet, boardSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range boardHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(boardSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}
	for r, row := range b.rows {
		values := []interface{}{row.EmployeeID, row.FullName, row.Email, row.Department, string(row.Status)}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := file.SetCellValue(boardSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", r+1, err)
			}
		}
	}
	if err := file.SetColWidth(boardSheet, "A", "E", 22); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	if _, err := file.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Date", b.date},
		{"Generated At", s.now().Format("2006-01-02 15:04:05")},
		{"Total Employees", b.counts.Total},
		{"Present", b.counts.Present},
		{"Absent", b.counts.Absent},
		{"Not Marked", b.counts.NotMarked},
		{"Rows Exported", len(b.rows)},
	}
	for r, pair := range summary {
		for c, v := range pair {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := file.SetCellValue(summarySheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write summary: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	slog.Info("Today board exported", "date", b.date, "rows", len(b.rows))
	return buf.Bytes(), nil
}
