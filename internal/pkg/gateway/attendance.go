package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
)

// ListAttendance returns an employee's records inside dateRange, newest
// first as upstream sorts them. Empty bounds are omitted from the query.
// No records is an empty slice, not an error.
func (c *Client) ListAttendance(ctx context.Context, employeeID string, dateRange attendance.DateRange) ([]attendance.Record, error) {
	query := url.Values{}
	if dateRange.StartDate != "" {
		query.Set("start_date", dateRange.StartDate)
	}
	if dateRange.EndDate != "" {
		query.Set("end_date", dateRange.EndDate)
	}

	var resp []attendance.RecordResponse
	err := c.do(ctx, call{
		op:       "list attendance",
		method:   http.MethodGet,
		path:     "/api/attendance/" + url.PathEscape(employeeID),
		query:    query,
		resource: ResourceEmployee,
		id:       employeeID,
	}, &resp)
	if err != nil {
		return nil, err
	}

	// upstream may ignore the bounds; rows outside them are dropped
	records := make([]attendance.Record, 0, len(resp))
	for _, r := range resp {
		if !dateRange.IsZero() && !dateRange.Contains(r.Date) {
			continue
		}
		records = append(records, r.ToEntity())
	}
	return records, nil
}

// MarkAttendance upserts the record of (employee, date). A second call for
// the same cell overwrites the first.
func (c *Client) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	var resp attendance.RecordResponse
	err := c.do(ctx, call{
		op:       "mark attendance",
		method:   http.MethodPost,
		path:     "/api/attendance/",
		body:     req,
		resource: ResourceEmployee,
		id:       req.EmployeeID,
	}, &resp)
	if err != nil {
		return attendance.Record{}, err
	}
	return resp.ToEntity(), nil
}

// GetAttendanceSummary returns today's global present and absent counts.
func (c *Client) GetAttendanceSummary(ctx context.Context) (attendance.Summary, error) {
	var resp attendance.SummaryResponse
	err := c.do(ctx, call{
		op:       "attendance summary",
		method:   http.MethodGet,
		path:     "/api/attendance/summary",
		resource: ResourceAttendance,
	}, &resp)
	if err != nil {
		return attendance.Summary{}, err
	}
	return resp.ToEntity(), nil
}

type attendanceRepository struct {
	client *Client
}

// NewAttendanceRepository exposes the client as the attendance repository.
func NewAttendanceRepository(c *Client) attendance.AttendanceRepository {
	return &attendanceRepository{client: c}
}

func (r *attendanceRepository) List(ctx context.Context, employeeID string, dateRange attendance.DateRange) ([]attendance.Record, error) {
	return r.client.ListAttendance(ctx, employeeID, dateRange)
}

func (r *attendanceRepository) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	return r.client.MarkAttendance(ctx, req)
}

func (r *attendanceRepository) Summary(ctx context.Context) (attendance.Summary, error) {
	return r.client.GetAttendanceSummary(ctx)
}
