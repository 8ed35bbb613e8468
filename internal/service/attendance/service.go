package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/repository/cached"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view/paging"
)

// historyYears is how many years the history year picker offers.
const historyYears = 5

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	cache          *cached.Repository
	filters        filter.FilterService
	guard          *inflight.Guard
	events         sse.Publisher
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	cache *cached.Repository,
	filters filter.FilterService,
	guard *inflight.Guard,
	events sse.Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		cache:          cache,
		filters:        filters,
		guard:          guard,
		events:         events,
	}
}

func (s *AttendanceServiceImpl) publish(event string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(sse.Event{Topic: sse.TopicAttendance, Event: event, Data: data})
}

// board is today's status of every employee after the board filters.
type board struct {
	date        string
	counts      view.StatusCounts
	departments []string
	rows        []view.EmployeeView
	state       view.FilterState
}

// loadBoard builds today's board under f. The filters are stored as the
// view's state only when persist is set.
func (s *AttendanceServiceImpl) loadBoard(ctx context.Context, f attendance.BoardFilter, persist bool) (board, error) {
	if err := f.Validate(); err != nil {
		return board{}, err
	}

	req := filter.UpdateFilterRequest{
		Search:     f.Search,
		Department: f.Department,
		Status:     f.Status,
		Page:       f.Page,
		PageSize:   f.PageSize,
	}
	update := s.filters.Preview
	if persist {
		update = s.filters.Update
	}
	state, err := update(filter.ViewToday, req)
	if err != nil {
		return board{}, err
	}

	employees, err := s.cache.Employees(ctx)
	if err != nil {
		return board{}, fmt.Errorf("failed to load employees: %w", err)
	}

	date := s.cache.Today()
	today, err := s.cache.TodayStatuses(ctx, date)
	if err != nil {
		return board{}, fmt.Errorf("failed to load today statuses: %w", err)
	}

	all := view.Join(employees, today.Statuses)
	for i := range all {
		all[i].Pending = today.Pending[all[i].EmployeeID]
	}

	return board{
		date:        date,
		counts:      view.CountStatuses(all),
		departments: view.Departments(employees),
		rows:        view.FilterEmployees(all, state.Criteria()),
		state:       state,
	}, nil
}

func toBoardRow(v view.EmployeeView) attendance.BoardRowResponse {
	return attendance.BoardRowResponse{
		EmployeeID: v.EmployeeID,
		FullName:   v.FullName,
		Email:      v.Email,
		Department: v.Department,
		Status:     v.Status,
		Pending:    v.Pending,
	}
}

// TodayBoard implements attendance.AttendanceService. Counts cover every
// employee; rows are filtered and paginated.
func (s *AttendanceServiceImpl) TodayBoard(ctx context.Context, f attendance.BoardFilter) (attendance.TodayBoardResponse, error) {
	b, err := s.loadBoard(ctx, f, true)
	if err != nil {
		return attendance.TodayBoardResponse{}, err
	}

	page, info := paging.Paginate(b.rows, b.state.Page, b.state.PageSize)
	return attendance.TodayBoardResponse{
		Date: b.date,
		Counts: attendance.StatusCounts{
			All:       b.counts.Total,
			Present:   b.counts.Present,
			Absent:    b.counts.Absent,
			NotMarked: b.counts.NotMarked,
		},
		Departments:   b.departments,
		FilteredTotal: len(b.rows),
		Rows:          paging.Map(page, toBoardRow),
		Pagination:    info,
	}, nil
}

// MarkToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkToday(ctx context.Context, employeeID string, status attendance.Status) (attendance.RecordResponse, error) {
	req := attendance.MarkAttendanceRequest{
		EmployeeID: strings.TrimSpace(employeeID),
		Date:       s.cache.Today(),
		Status:     status,
	}
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	return s.mark(ctx, req)
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.RecordResponse, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	return s.mark(ctx, req)
}

// mark shows the new status immediately, writes it upstream and rolls the
// optimistic value back when the write fails.
func (s *AttendanceServiceImpl) mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.RecordResponse, error) {
	release, err := s.guard.Acquire(inflight.MarkKey(req.EmployeeID))
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	defer release()

	current, err := s.currentStatus(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load current status: %w", err)
	}
	if err := attendance.Transition(current, req.Status); err != nil {
		return attendance.RecordResponse{}, err
	}

	handle := s.cache.BeginMark(req.EmployeeID, req.Date, req.Status)
	s.publish("attendance.pending", attendance.RecordResponse{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     req.Status,
	})

	rec, err := s.attendanceRepo.Mark(ctx, req)
	if err != nil {
		s.cache.RollbackMark(handle)
		s.publish("attendance.rolled_back", attendance.RecordResponse{
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			Status:     current,
		})
		slog.Warn("Attendance mark rolled back",
			"employee_id", req.EmployeeID,
			"date", req.Date,
			"status", req.Status,
			"error", err,
		)
		return attendance.RecordResponse{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	gen := s.cache.AfterMark(req.EmployeeID, req.Date)
	s.cache.ConfirmMark(handle, gen)

	resp := attendance.NewRecordResponse(rec)
	s.publish("attendance.marked", resp)
	slog.Info("Attendance marked",
		"employee_id", rec.EmployeeID,
		"date", rec.Date,
		"from", current,
		"to", rec.Status,
	)
	return resp, nil
}

// currentStatus reads today's cell from the board so pending marks count;
// other dates come from the employee's records.
func (s *AttendanceServiceImpl) currentStatus(ctx context.Context, employeeID, date string) (attendance.Status, error) {
	if date == s.cache.Today() {
		return s.cache.StatusOf(ctx, employeeID, date)
	}
	records, err := s.cache.Records(ctx, employeeID, attendance.Day(date))
	if err != nil {
		return "", err
	}
	return view.StatusOf(employeeID, date, records), nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, f attendance.HistoryFilter) (attendance.HistoryResponse, error) {
	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	if err := f.Validate(); err != nil {
		return attendance.HistoryResponse{}, err
	}

	state, err := s.filters.Update(filter.ViewHistory, filter.UpdateFilterRequest{
		EmployeeID: &f.EmployeeID,
		Month:      trimmed(f.Month),
		Year:       trimmed(f.Year),
		Status:     f.Status,
		PageSize:   f.PageSize,
		Page:       f.Page,
	})
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	dateRange := view.MonthRange(state.Year, state.Month)
	records, err := s.cache.Records(ctx, f.EmployeeID, dateRange)
	if err != nil {
		return attendance.HistoryResponse{}, fmt.Errorf("failed to load attendance history: %w", err)
	}

	// Stats describe the whole month whatever the status filter shows.
	sorted := view.SortRecordsNewestFirst(records)
	present, absent, rate := view.HistoryStats(sorted)
	page, info := paging.Paginate(view.FilterRecordsByStatus(sorted, state.Status), state.Page, state.PageSize)

	resp := attendance.HistoryResponse{
		EmployeeID:        f.EmployeeID,
		Month:             int(state.Month),
		Year:              state.Year,
		StartDate:         dateRange.StartDate,
		EndDate:           dateRange.EndDate,
		PresentCount:      present,
		AbsentCount:       absent,
		AttendancePercent: rate,
		YearOptions:       view.YearOptions(s.cache.Now(), historyYears),
		Records:           paging.Map(page, attendance.NewRecordResponse),
		Pagination:        info,
	}

	if emp, ok := s.findEmployee(ctx, f.EmployeeID); ok {
		resp.EmployeeName = emp.FullName
		resp.Department = emp.Department
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) findEmployee(ctx context.Context, employeeID string) (employee.Employee, bool) {
	employees, err := s.cache.Employees(ctx)
	if err != nil {
		slog.Warn("Failed to load employees for history", "error", err)
		return employee.Employee{}, false
	}
	for _, emp := range employees {
		if emp.EmployeeID == employeeID {
			return emp, true
		}
	}
	return employee.Employee{}, false
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (s *AttendanceServiceImpl) now() time.Time {
	return s.cache.Now()
}
