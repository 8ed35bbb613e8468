package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/repository/cached"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view/paging"
)

type DashboardServiceImpl struct {
	cache   *cached.Repository
	filters filter.FilterService
}

func NewDashboardService(cache *cached.Repository, filters filter.FilterService) dashboard.DashboardService {
	return &DashboardServiceImpl{
		cache:   cache,
		filters: filters,
	}
}

// GetDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, f dashboard.DashboardFilter) (*dashboard.DashboardResponse, error) {
	state, err := s.filters.Update(filter.ViewDashboard, f.ToUpdate())
	if err != nil {
		return nil, err
	}

	now := s.cache.Now()
	date := attendance.FormatDate(now)

	var (
		employees    []employee.Employee
		summary      attendance.Summary
		today        cached.TodayStatuses
		trendRecords []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Employee list
	g.Go(func() error {
		list, err := s.cache.Employees(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load employees: %w", err)
		}
		employees = list
		return nil
	})

	// 2. Global summary of today
	g.Go(func() error {
		sum, err := s.cache.Summary(gCtx)
		if err != nil {
			return fmt.Errorf("failed to load attendance summary: %w", err)
		}
		summary = sum
		return nil
	})

	// 3. Per-employee status of today
	g.Go(func() error {
		statuses, err := s.cache.TodayStatuses(gCtx, date)
		if err != nil {
			return fmt.Errorf("failed to load today statuses: %w", err)
		}
		today = statuses
		return nil
	})

	// 4. Records behind the trend chart
	g.Go(func() error {
		records, err := s.cache.TrendRecords(gCtx, state.TrendDays, now)
		if err != nil {
			return fmt.Errorf("failed to load attendance trend: %w", err)
		}
		trendRecords = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	selected := view.FilterByDepartment(employees, state.Department)
	cards := view.DashboardCounts(summary, len(selected), len(employees), state.DepartmentActive())

	views := view.Join(selected, today.Statuses)
	for i := range views {
		views[i].Pending = today.Pending[views[i].EmployeeID]
	}
	details := view.FilterEmployees(views, view.FilterCriteria{
		Department: view.All,
		Status:     state.Status,
		Search:     state.Search,
	})
	page, info := paging.Paginate(details, state.Page, state.PageSize)

	trend := view.AttendanceTrend(recordsOf(trendRecords, selected), state.TrendDays, now)

	return &dashboard.DashboardResponse{
		Date:               date,
		SelectedDepartment: state.Department,
		Departments:        view.Departments(employees),
		Stats:              toStatCards(cards),
		Pie:                paging.Map(view.PieSlices(cards), toSlice),
		DepartmentBars: dashboard.BarsResponse{
			Period: string(state.BarPeriod),
			Sort:   string(state.BarSort),
			Bars:   view.DepartmentBars(employees, state.Department, state.BarPeriod, state.BarSort),
		},
		Trend: dashboard.TrendResponse{
			Days:   state.TrendDays,
			Points: paging.Map(trend, toTrendPoint),
			Diff:   view.TrendDiff(trend),
		},
		ByDepartment: byDepartment(views),
		AttendanceDetails: dashboard.DetailsResponse{
			Search:        state.Search,
			Status:        state.Status,
			FilteredTotal: len(details),
			Rows:          paging.Map(page, toDetailRow),
			Pagination:    info,
		},
		Refreshing: today.Loading,
	}, nil
}

// recordsOf keeps the records of the given employees.
func recordsOf(records []attendance.Record, employees []employee.Employee) []attendance.Record {
	ids := make(map[string]struct{}, len(employees))
	for _, emp := range employees {
		ids[emp.EmployeeID] = struct{}{}
	}
	out := make([]attendance.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := ids[rec.EmployeeID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// byDepartment tallies today's statuses per department in name order.
func byDepartment(views []view.EmployeeView) []dashboard.DepartmentAttendance {
	tally := make(map[string]*dashboard.DepartmentAttendance)
	for _, v := range views {
		d, ok := tally[v.Department]
		if !ok {
			d = &dashboard.DepartmentAttendance{Department: v.Department}
			tally[v.Department] = d
		}
		switch v.Status {
		case attendance.StatusPresent:
			d.Present++
		case attendance.StatusAbsent:
			d.Absent++
		default:
			d.NotMarked++
		}
	}

	employees := make([]employee.Employee, len(views))
	for i, v := range views {
		employees[i] = v.Employee
	}
	out := make([]dashboard.DepartmentAttendance, 0, len(tally))
	for _, name := range view.Departments(employees) {
		out = append(out, *tally[name])
	}
	return out
}

func toStatCards(c view.StatCards) dashboard.StatCardsResponse {
	return dashboard.StatCardsResponse{
		TotalEmployees: c.Total,
		PresentToday:   c.Present,
		AbsentToday:    c.Absent,
		Marked:         c.Marked,
		Unmarked:       c.Unmarked,
		AttendanceRate: c.AttendanceRate,
		AbsenceRate:    c.AbsenceRate,
		Approximate:    c.Approximate,
	}
}

func toSlice(s view.Slice) dashboard.SliceResponse {
	return dashboard.SliceResponse{Name: s.Name, Value: s.Value}
}

func toTrendPoint(p view.TrendPoint) dashboard.TrendPointResponse {
	return dashboard.TrendPointResponse{
		Date:    p.Date,
		Label:   p.Label,
		Present: p.Present,
		Absent:  p.Absent,
		Rate:    p.Rate,
	}
}

func toDetailRow(v view.EmployeeView) attendance.BoardRowResponse {
	return attendance.BoardRowResponse{
		EmployeeID: v.EmployeeID,
		FullName:   v.FullName,
		Email:      v.Email,
		Department: v.Department,
		Status:     v.Status,
		Pending:    v.Pending,
	}
}
