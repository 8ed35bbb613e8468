package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/fixtures"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/cache"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/gateway"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/repository/cached"
	filtersvc "github.com/cmlabs-hris/hrms-dashboard-go/internal/service/filter"
)

const testToday = "2026-10-16"

func testNow() time.Time {
	return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

type failingSummary struct {
	attendance.AttendanceRepository
}

func (failingSummary) Summary(ctx context.Context) (attendance.Summary, error) {
	return attendance.Summary{}, &gateway.NetworkError{Op: "attendance summary", StatusCode: 502, Err: errors.New("bad gateway")}
}

func setupService(t *testing.T, wrap func(attendance.AttendanceRepository) attendance.AttendanceRepository) (dashboard.DashboardService, filter.FilterService) {
	t.Helper()
	mem := fixtures.NewMemory(testNow)
	mem.Seed(fixtures.DemoEmployees()[:4], []attendance.MarkAttendanceRequest{
		{EmployeeID: "EMP001", Date: testToday, Status: attendance.StatusPresent},
		{EmployeeID: "EMP002", Date: testToday, Status: attendance.StatusAbsent},
		{EmployeeID: "EMP003", Date: testToday, Status: attendance.StatusPresent},
		{EmployeeID: "EMP001", Date: "2026-10-15", Status: attendance.StatusAbsent},
		{EmployeeID: "EMP003", Date: "2026-10-15", Status: attendance.StatusPresent},
		{EmployeeID: "EMP003", Date: "2026-10-01", Status: attendance.StatusPresent},
	})
	store := cache.NewStore(nil, time.Second)
	t.Cleanup(store.Close)

	attRepo := mem.AttendanceRepo()
	if wrap != nil {
		attRepo = wrap(attRepo)
	}
	repo := cached.NewRepository(store, mem, attRepo, 4, testNow)
	filters := filtersvc.NewFilterService(10, testNow)
	return NewDashboardService(repo, filters), filters
}

func TestDashboardService_GetDashboard_AllDepartments(t *testing.T) {
	// Setup
	svc, _ := setupService(t, nil)

	// Act
	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, testToday, resp.Date)
	assert.Equal(t, "all", resp.SelectedDepartment)
	assert.Equal(t, dashboard.StatCardsResponse{
		TotalEmployees: 4,
		PresentToday:   2,
		AbsentToday:    1,
		Marked:         3,
		Unmarked:       1,
		AttendanceRate: 67,
		AbsenceRate:    33,
	}, resp.Stats)
	assert.Equal(t, []dashboard.SliceResponse{
		{Name: "Present", Value: 2},
		{Name: "Absent", Value: 1},
		{Name: "Unmarked", Value: 1},
	}, resp.Pie)
	assert.Equal(t, []employee.DepartmentCount{
		{Name: "Engineering", Count: 2},
		{Name: "Design", Count: 1},
		{Name: "Marketing", Count: 1},
	}, resp.DepartmentBars.Bars)
	assert.Equal(t, []dashboard.DepartmentAttendance{
		{Department: "Design", Present: 1},
		{Department: "Engineering", Present: 1, Absent: 1},
		{Department: "Marketing", NotMarked: 1},
	}, resp.ByDepartment)
	assert.Equal(t, 4, resp.AttendanceDetails.FilteredTotal)
	assert.Equal(t, filtersvc.DashboardPageSize, resp.AttendanceDetails.Pagination.PageSize)
}

func TestDashboardService_GetDashboard_DepartmentScalesSummary(t *testing.T) {
	// Setup
	svc, filters := setupService(t, nil)

	// Act
	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{Department: ptr("Engineering")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Engineering", filters.SelectedDepartment())
	assert.True(t, resp.Stats.Approximate)
	assert.Equal(t, 2, resp.Stats.TotalEmployees)
	assert.Equal(t, 1, resp.Stats.PresentToday, "round(2*2/4)")
	assert.Equal(t, 1, resp.Stats.AbsentToday, "round(1*2/4) rounds the half up")
	assert.Equal(t, 0, resp.Stats.Unmarked)
	assert.Equal(t, 50, resp.Stats.AttendanceRate)
	assert.Equal(t, []dashboard.SliceResponse{
		{Name: "Present", Value: 1},
		{Name: "Absent", Value: 1},
	}, resp.Pie)
	assert.Equal(t, []employee.DepartmentCount{{Name: "Engineering", Count: 2}}, resp.DepartmentBars.Bars)
	assert.Equal(t, 2, resp.AttendanceDetails.FilteredTotal)
	assert.Len(t, resp.ByDepartment, 1)
}

func TestDashboardService_GetDashboard_Trend(t *testing.T) {
	// Setup
	svc, _ := setupService(t, nil)
	ctx := context.Background()

	// Act
	week, err := svc.GetDashboard(ctx, dashboard.DashboardFilter{})
	require.NoError(t, err)
	fortnight, err := svc.GetDashboard(ctx, dashboard.DashboardFilter{TrendDays: ptr(14)})
	require.NoError(t, err)
	engineering, err := svc.GetDashboard(ctx, dashboard.DashboardFilter{Department: ptr("Engineering")})
	require.NoError(t, err)

	// Assert
	require.Len(t, week.Trend.Points, 7)
	last := week.Trend.Points[6]
	assert.Equal(t, testToday, last.Date)
	assert.Equal(t, "Oct 16", last.Label)
	assert.Equal(t, 67, last.Rate)
	assert.Equal(t, 50, week.Trend.Points[5].Rate)
	assert.Equal(t, 0, week.Trend.Points[0].Rate)
	assert.Equal(t, 67, week.Trend.Diff)

	assert.Equal(t, 14, fortnight.Trend.Days)
	assert.Len(t, fortnight.Trend.Points, 14)

	engLast := engineering.Trend.Points[len(engineering.Trend.Points)-1]
	assert.Equal(t, 1, engLast.Present)
	assert.Equal(t, 1, engLast.Absent)
	assert.Equal(t, 0, engineering.Trend.Points[len(engineering.Trend.Points)-2].Rate)
}

func TestDashboardService_GetDashboard_DetailsFilter(t *testing.T) {
	// Setup
	svc, _ := setupService(t, nil)

	// Act
	resp, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{
		Status: ptr("Not Marked"),
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, resp.AttendanceDetails.Rows, 1)
	assert.Equal(t, "EMP004", resp.AttendanceDetails.Rows[0].EmployeeID)
	assert.Equal(t, 4, resp.Stats.TotalEmployees, "details filter leaves the cards alone")
}

func TestDashboardService_GetDashboard_InvalidFilter(t *testing.T) {
	svc, _ := setupService(t, nil)

	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{
		BarSort:   ptr("random"),
		TrendDays: ptr(30),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("bar_sort"))
	assert.True(t, verrs.Has("trend_days"))
}

func TestDashboardService_GetDashboard_SummaryFailure(t *testing.T) {
	// Setup
	svc, _ := setupService(t, func(repo attendance.AttendanceRepository) attendance.AttendanceRepository {
		return failingSummary{repo}
	})

	// Act
	_, err := svc.GetDashboard(context.Background(), dashboard.DashboardFilter{})

	// Assert
	var netErr *gateway.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, 502, netErr.StatusCode)
}
