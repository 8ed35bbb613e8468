package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/filter"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/inflight"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/repository/cached"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view/paging"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	cache        *cached.Repository
	filters      filter.FilterService
	guard        *inflight.Guard
	events       sse.Publisher
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	cache *cached.Repository,
	filters filter.FilterService,
	guard *inflight.Guard,
	events sse.Publisher,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		cache:        cache,
		filters:      filters,
		guard:        guard,
		events:       events,
	}
}

func (s *EmployeeServiceImpl) publish(event string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(sse.Event{Topic: sse.TopicEmployees, Event: event, Data: data})
}

// Directory implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Directory(ctx context.Context, f employee.DirectoryFilter) (employee.DirectoryResponse, error) {
	if err := f.Validate(); err != nil {
		return employee.DirectoryResponse{}, err
	}

	var sortOrder *string
	if f.SortOrder != nil {
		lower := strings.ToLower(*f.SortOrder)
		sortOrder = &lower
	}
	state, err := s.filters.Update(filter.ViewEmployees, filter.UpdateFilterRequest{
		Search:     f.Search,
		Department: f.Department,
		Status:     f.Status,
		SortOrder:  sortOrder,
		Page:       f.Page,
	})
	if err != nil {
		return employee.DirectoryResponse{}, err
	}

	employees, err := s.cache.Employees(ctx)
	if err != nil {
		return employee.DirectoryResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}

	// The directory still renders when today's statuses cannot be loaded;
	// every row then shows Not Marked.
	statuses := map[string]attendance.Status{}
	var pending map[string]bool
	today, err := s.cache.TodayStatuses(ctx, s.cache.Today())
	if err != nil {
		slog.Warn("Failed to load today statuses for directory", "error", err)
	} else {
		statuses, pending = today.Statuses, today.Pending
	}

	rows := view.Join(employees, statuses)
	for i := range rows {
		rows[i].Pending = pending[rows[i].EmployeeID]
	}
	rows = view.FilterEmployees(rows, state.Criteria())
	rows = view.SortByName(rows, view.ViewName, state.SortOrder)
	page, info := paging.Paginate(rows, state.Page, state.PageSize)

	return employee.DirectoryResponse{
		TotalEmployees: len(employees),
		Filtered:       strings.TrimSpace(state.Search) != "" || state.DepartmentActive() || state.Status != view.All,
		Departments:    departmentPills(employees),
		SortOrder:      string(state.SortOrder),
		Employees:      paging.Map(page, toDirectoryRow),
		Pagination:     info,
	}, nil
}

func toDirectoryRow(v view.EmployeeView) employee.DirectoryRow {
	return employee.DirectoryRow{
		EmployeeResponse: employee.NewEmployeeResponse(v.Employee),
		TodayStatus:      string(v.Status),
		Pending:          v.Pending,
	}
}

// departmentPills lists departments alphabetically with their head count.
func departmentPills(employees []employee.Employee) []employee.DepartmentCount {
	counts := make(map[string]int)
	for _, c := range view.DepartmentCounts(employees) {
		counts[c.Name] = c.Count
	}
	names := view.Departments(employees)
	pills := make([]employee.DepartmentCount, 0, len(names))
	for _, name := range names {
		pills = append(pills, employee.DepartmentCount{Name: name, Count: counts[name]})
	}
	return pills
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	release, err := s.guard.Acquire(inflight.KeyCreate)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	defer release()

	req = req.Normalize()

	// Unknown departments are still accepted, so a failed list only costs
	// the casing match.
	var known []string
	if employees, err := s.cache.Employees(ctx); err != nil {
		slog.Warn("Failed to load departments for matching", "error", err)
	} else {
		known = view.Departments(employees)
	}
	label, isNew := view.ResolveDepartment(req.Department, known)
	req.Department = label

	created, err := s.employeeRepo.Create(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	s.cache.AfterCreate()

	resp := employee.NewEmployeeResponse(created)
	s.publish("employee.created", resp)
	slog.Info("Employee created",
		"employee_id", created.EmployeeID,
		"department", created.Department,
		"new_department", isNew,
	)
	return resp, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return validator.ValidationErrors{{Field: "employee_id", Message: "Employee ID is required"}}
	}

	release, err := s.guard.Acquire(inflight.DeleteKey(employeeID))
	if err != nil {
		return err
	}
	defer release()

	err = s.employeeRepo.Delete(ctx, employeeID)
	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		slog.Info("Employee already deleted", "employee_id", employeeID)
	case err != nil:
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	s.cache.AfterDelete(employeeID)
	s.publish("employee.deleted", map[string]string{"employee_id": employeeID})
	slog.Info("Employee deleted", "employee_id", employeeID)
	return nil
}

// Departments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Departments(ctx context.Context, query string) (employee.DepartmentsResponse, error) {
	employees, err := s.cache.Employees(ctx)
	if err != nil {
		return employee.DepartmentsResponse{}, fmt.Errorf("failed to load employees: %w", err)
	}

	resp := employee.DepartmentsResponse{Departments: departmentPills(employees)}

	query = strings.TrimSpace(query)
	if query == "" {
		return resp, nil
	}

	known := view.Departments(employees)
	resp.Suggestions = view.DepartmentSuggestions(query, known)
	label, isNew := view.ResolveDepartment(query, known)
	if isNew {
		resp.NewDepartment = &label
	} else {
		resp.Match = &label
	}
	return resp, nil
}
