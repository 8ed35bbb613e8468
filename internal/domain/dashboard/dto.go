package dashboard

import (
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view/paging"
)

// DashboardFilter is the query of the dashboard. Nil fields keep the value
// held by the dashboard's filter state.
type DashboardFilter struct {
	Department *string `json:"department,omitempty"`
	Search     *string `json:"search,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       *int    `json:"page,omitempty"`
	PageSize   *int    `json:"page_size,omitempty"`
	BarPeriod  *string `json:"bar_period,omitempty"`
	BarSort    *string `json:"bar_sort,omitempty"`
	TrendDays  *int    `json:"trend_days,omitempty"`
}

// ToUpdate converts the query into a filter state update; validation
// happens there.
func (f DashboardFilter) ToUpdate() filter.UpdateFilterRequest {
	return filter.UpdateFilterRequest{
		Department: f.Department,
		Search:     f.Search,
		Status:     f.Status,
		Page:       f.Page,
		PageSize:   f.PageSize,
		BarPeriod:  f.BarPeriod,
		BarSort:    f.BarSort,
		TrendDays:  f.TrendDays,
	}
}

// ========== STAT CARDS ==========

type StatCardsResponse struct {
	TotalEmployees int `json:"total_employees"`
	PresentToday   int `json:"present_today"`
	AbsentToday    int `json:"absent_today"`
	Marked         int `json:"marked"`
	Unmarked       int `json:"unmarked"`
	AttendanceRate int `json:"attendance_rate"`
	AbsenceRate    int `json:"absence_rate"`
	// Approximate means present and absent were scaled from the global
	// summary to the selected department.
	Approximate bool `json:"approximate"`
}

// ========== CHARTS ==========

type SliceResponse struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type BarsResponse struct {
	Period string                     `json:"period"`
	Sort   string                     `json:"sort"`
	Bars   []employee.DepartmentCount `json:"bars"`
}

type TrendPointResponse struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Rate    int    `json:"rate"`
}

type TrendResponse struct {
	Days   int                  `json:"days"`
	Points []TrendPointResponse `json:"points"`
	// Diff is the last rate minus the first.
	Diff int `json:"diff"`
}

// ========== ATTENDANCE DETAILS ==========

// DepartmentAttendance is one department's row in the grouped view.
type DepartmentAttendance struct {
	Department string `json:"department"`
	Present    int    `json:"present"`
	Absent     int    `json:"absent"`
	NotMarked  int    `json:"not_marked"`
}

type DetailsResponse struct {
	Search        string                        `json:"search"`
	Status        string                        `json:"status"`
	FilteredTotal int                           `json:"filtered_total"`
	Rows          []attendance.BoardRowResponse `json:"rows"`
	Pagination    paging.Info                   `json:"pagination"`
}

// ========== COMBINED DASHBOARD ==========

type DashboardResponse struct {
	Date               string                 `json:"date"`
	SelectedDepartment string                 `json:"selected_department"`
	Departments        []string               `json:"departments"`
	Stats              StatCardsResponse      `json:"stats"`
	Pie                []SliceResponse        `json:"pie"`
	DepartmentBars     BarsResponse           `json:"department_bars"`
	Trend              TrendResponse          `json:"trend"`
	ByDepartment       []DepartmentAttendance `json:"by_department"`
	AttendanceDetails  DetailsResponse        `json:"attendance_details"`
	// Refreshing is set while today's statuses are being refetched.
	Refreshing bool `json:"refreshing"`
}
