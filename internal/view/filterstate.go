package view

import "time"

// Trend windows offered by the dashboard.
const (
	TrendWeek      = 7
	TrendFortnight = 14
)

// FilterState is the filter, sort and paging state of one view. Setters
// that change what is listed reset Page to 1; SetPage alone does not.
type FilterState struct {
	Search     string     `json:"search"`
	Department string     `json:"department"`
	Status     string     `json:"status"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	SortOrder  SortOrder  `json:"sort_order"`
	Month      time.Month `json:"month"`
	Year       int        `json:"year"`
	BarPeriod  BarPeriod  `json:"bar_period"`
	BarSort    BarSort    `json:"bar_sort"`
	TrendDays  int        `json:"trend_days"`
	// EmployeeID is the subject of the history view.
	EmployeeID string `json:"employee_id,omitempty"`
}

// NewFilterState returns the initial state: no filters, first page,
// ascending names, the month of now, every department bar by count and a
// one-week trend.
func NewFilterState(now time.Time, pageSize int) FilterState {
	return FilterState{
		Department: All,
		Status:     All,
		Page:       1,
		PageSize:   max(pageSize, 0),
		SortOrder:  SortAsc,
		Month:      now.Month(),
		Year:       now.Year(),
		BarPeriod:  BarPeriodAll,
		BarSort:    BarSortCountDesc,
		TrendDays:  TrendWeek,
	}
}

func orAll(v string) string {
	if v == "" {
		return All
	}
	return v
}

func (s *FilterState) SetSearch(search string) {
	if s.Search != search {
		s.Search = search
		s.Page = 1
	}
}

func (s *FilterState) SetDepartment(dept string) {
	dept = orAll(dept)
	if s.Department != dept {
		s.Department = dept
		s.Page = 1
	}
}

func (s *FilterState) SetStatus(status string) {
	status = orAll(status)
	if s.Status != status {
		s.Status = status
		s.Page = 1
	}
}

// SetPageSize keeps search and filters and goes back to the first page.
// Zero shows everything on one page.
func (s *FilterState) SetPageSize(size int) {
	size = max(size, 0)
	if s.PageSize != size {
		s.PageSize = size
		s.Page = 1
	}
}

func (s *FilterState) SetMonthYear(month time.Month, year int) {
	if s.Month != month || s.Year != year {
		s.Month, s.Year = month, year
		s.Page = 1
	}
}

func (s *FilterState) SetEmployee(employeeID string) {
	if s.EmployeeID != employeeID {
		s.EmployeeID = employeeID
		s.Page = 1
	}
}

// SetPage moves to page. Clamping to the last page happens at render time,
// when the list length is known.
func (s *FilterState) SetPage(page int) {
	s.Page = max(page, 1)
}

func (s *FilterState) ToggleSort() {
	s.SortOrder = s.SortOrder.Toggle()
}

func (s *FilterState) SetSortOrder(order SortOrder) {
	if order.Valid() {
		s.SortOrder = order
	}
}

func (s *FilterState) SetBarPeriod(p BarPeriod) {
	if p.Valid() {
		s.BarPeriod = p
	}
}

func (s *FilterState) SetBarSort(by BarSort) {
	if by.Valid() {
		s.BarSort = by
	}
}

func (s *FilterState) SetTrendDays(days int) {
	if days == TrendWeek || days == TrendFortnight {
		s.TrendDays = days
	}
}

// Criteria is the list filter the state describes.
func (s FilterState) Criteria() FilterCriteria {
	return FilterCriteria{
		Department: s.Department,
		Status:     s.Status,
		Search:     s.Search,
	}
}

// DepartmentActive reports whether a department filter is applied.
func (s FilterState) DepartmentActive() bool {
	return !isAll(s.Department)
}
