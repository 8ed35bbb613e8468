package filter

import (
	"strconv"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
)

// Initial page sizes. The directory's is fixed.
const (
	EmployeesPageSize = 8
	TodayPageSize     = 15
	DashboardPageSize = 15
)

type FilterServiceImpl struct {
	mu              sync.Mutex
	now             func() time.Time
	defaultPageSize int
	states          map[filter.View]*view.FilterState
}

func NewFilterService(defaultPageSize int, now func() time.Time) filter.FilterService {
	if now == nil {
		now = time.Now
	}
	s := &FilterServiceImpl{
		now:             now,
		defaultPageSize: defaultPageSize,
		states:          make(map[filter.View]*view.FilterState),
	}
	for _, v := range []filter.View{filter.ViewDashboard, filter.ViewEmployees, filter.ViewToday, filter.ViewHistory} {
		st := s.initial(v)
		s.states[v] = &st
	}
	return s
}

func (s *FilterServiceImpl) initial(v filter.View) view.FilterState {
	size := s.defaultPageSize
	switch v {
	case filter.ViewEmployees:
		size = EmployeesPageSize
	case filter.ViewToday:
		size = TodayPageSize
	case filter.ViewDashboard:
		size = DashboardPageSize
	}
	return view.NewFilterState(s.now(), size)
}

// Get implements filter.FilterService.
func (s *FilterServiceImpl) Get(v filter.View) (view.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[v]
	if !ok {
		return view.FilterState{}, filter.ErrUnknownView
	}
	return *st, nil
}

// Update implements filter.FilterService.
func (s *FilterServiceImpl) Update(v filter.View, req filter.UpdateFilterRequest) (view.FilterState, error) {
	if err := req.Validate(); err != nil {
		return view.FilterState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[v]
	if !ok {
		return view.FilterState{}, filter.ErrUnknownView
	}
	apply(v, st, req)
	return *st, nil
}

// Preview implements filter.FilterService.
func (s *FilterServiceImpl) Preview(v filter.View, req filter.UpdateFilterRequest) (view.FilterState, error) {
	if err := req.Validate(); err != nil {
		return view.FilterState{}, err
	}

	s.mu.Lock()
	st, ok := s.states[v]
	if !ok {
		s.mu.Unlock()
		return view.FilterState{}, filter.ErrUnknownView
	}
	preview := *st
	s.mu.Unlock()

	apply(v, &preview, req)
	return preview, nil
}

// apply writes req into st. Page is applied after every other field so a
// request that changes a filter and a page lands on the requested page.
func apply(v filter.View, st *view.FilterState, req filter.UpdateFilterRequest) {
	if req.Search != nil {
		st.SetSearch(*req.Search)
	}
	if req.Department != nil {
		st.SetDepartment(*req.Department)
	}
	if req.Status != nil {
		st.SetStatus(*req.Status)
	}
	if req.PageSize != nil && v != filter.ViewEmployees {
		st.SetPageSize(*req.PageSize)
	}
	if req.Month != nil || req.Year != nil {
		month, year := st.Month, st.Year
		if req.Month != nil {
			m, _ := strconv.Atoi(*req.Month)
			month = time.Month(m)
		}
		if req.Year != nil {
			year, _ = strconv.Atoi(*req.Year)
		}
		st.SetMonthYear(month, year)
	}
	if req.EmployeeID != nil {
		st.SetEmployee(*req.EmployeeID)
	}
	if req.SortOrder != nil {
		st.SetSortOrder(view.SortOrder(*req.SortOrder))
	}
	if req.ToggleSort {
		st.ToggleSort()
	}
	if req.BarPeriod != nil {
		st.SetBarPeriod(view.BarPeriod(*req.BarPeriod))
	}
	if req.BarSort != nil {
		st.SetBarSort(view.BarSort(*req.BarSort))
	}
	if req.TrendDays != nil {
		st.SetTrendDays(*req.TrendDays)
	}
	if req.Page != nil {
		st.SetPage(*req.Page)
	}
}

// Reset implements filter.FilterService.
func (s *FilterServiceImpl) Reset(v filter.View) (view.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[v]; !ok {
		return view.FilterState{}, filter.ErrUnknownView
	}
	st := s.initial(v)
	s.states[v] = &st
	return st, nil
}

// SelectedDepartment implements filter.FilterService.
func (s *FilterServiceImpl) SelectedDepartment() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[filter.ViewDashboard].Department
}
