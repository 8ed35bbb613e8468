package fixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/gateway"
)

// Memory is an in-process stand-in for the HRMS API. It implements both
// repositories with the upstream's semantics and error shapes.
type Memory struct {
	mu        sync.Mutex
	employees []employee.Employee
	records   map[attendance.Key]attendance.Status
	now       func() time.Time

	// ListErr fails ListAttendance for the given employee IDs.
	ListErr map[string]error
	// MarkErr, when set, fails every Mark.
	MarkErr error
	// BeforeMark runs before a mark is applied; tests use it to hold a mark open.
	BeforeMark func()

	calls map[string]int
}

func NewMemory(now func() time.Time) *Memory {
	return &Memory{
		records: make(map[attendance.Key]attendance.Status),
		now:     now,
		ListErr: make(map[string]error),
		calls:   make(map[string]int),
	}
}

// Calls returns how often op ran: "list_employees", "list_attendance",
// "mark", "summary", "create", "delete".
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

func (m *Memory) List(ctx context.Context) ([]employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["list_employees"]++

	out := make([]employee.Employee, len(m.employees))
	copy(out, m.employees)
	return out, nil
}

func (m *Memory) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["create"]++

	for _, e := range m.employees {
		if e.EmployeeID == req.EmployeeID {
			return employee.Employee{}, &gateway.ValidationError{
				Field:   "employee_id",
				Message: fmt.Sprintf("Employee with ID '%s' already exists", req.EmployeeID),
				Status:  409,
				Err:     employee.ErrEmployeeIDExists,
			}
		}
		if e.Email == req.Email {
			return employee.Employee{}, &gateway.ValidationError{
				Field:   "email",
				Message: fmt.Sprintf("Employee with email '%s' already exists", req.Email),
				Status:  409,
				Err:     employee.ErrEmailExists,
			}
		}
	}

	created := m.now().UTC()
	emp := employee.Employee{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Email:      req.Email,
		Department: req.Department,
		CreatedAt:  &created,
	}
	// newest first, as upstream lists them
	m.employees = append([]employee.Employee{emp}, m.employees...)
	return emp, nil
}

func (m *Memory) Delete(ctx context.Context, employeeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["delete"]++

	for i, e := range m.employees {
		if e.EmployeeID == employeeID {
			m.employees = append(m.employees[:i], m.employees[i+1:]...)
			for key := range m.records {
				if key.EmployeeID == employeeID {
					delete(m.records, key)
				}
			}
			return nil
		}
	}
	return m.notFound(employeeID)
}

func (m *Memory) notFound(employeeID string) error {
	return &gateway.NotFoundError{
		Resource: gateway.ResourceEmployee,
		ID:       employeeID,
		Message:  fmt.Sprintf("Employee with ID '%s' not found", employeeID),
	}
}

func (m *Memory) exists(employeeID string) bool {
	for _, e := range m.employees {
		if e.EmployeeID == employeeID {
			return true
		}
	}
	return false
}

// ListAttendance is List of the attendance repository; see AttendanceRepo.
func (m *Memory) ListAttendance(ctx context.Context, employeeID string, dateRange attendance.DateRange) ([]attendance.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["list_attendance"]++

	if err := m.ListErr[employeeID]; err != nil {
		return nil, err
	}
	if !m.exists(employeeID) {
		return nil, m.notFound(employeeID)
	}

	out := []attendance.Record{}
	for key, status := range m.records {
		if key.EmployeeID == employeeID && dateRange.Contains(key.Date) {
			out = append(out, attendance.Record{EmployeeID: key.EmployeeID, Date: key.Date, Status: status})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *Memory) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	m.mu.Lock()
	hook := m.BeforeMark
	m.mu.Unlock()
	if hook != nil {
		hook()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["mark"]++

	if m.MarkErr != nil {
		return attendance.Record{}, m.MarkErr
	}
	if !m.exists(req.EmployeeID) {
		return attendance.Record{}, m.notFound(req.EmployeeID)
	}

	m.records[attendance.Key{EmployeeID: req.EmployeeID, Date: req.Date}] = req.Status
	return attendance.Record{EmployeeID: req.EmployeeID, Date: req.Date, Status: req.Status}, nil
}

func (m *Memory) Summary(ctx context.Context) (attendance.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls["summary"]++

	today := attendance.FormatDate(m.now())
	s := attendance.Summary{TotalEmployees: len(m.employees)}
	for key, status := range m.records {
		if key.Date != today {
			continue
		}
		switch status {
		case attendance.StatusPresent:
			s.PresentToday++
		case attendance.StatusAbsent:
			s.AbsentToday++
		}
	}
	return s, nil
}

// AttendanceRepo adapts Memory to attendance.AttendanceRepository, whose
// List collides with the employee repository's.
func (m *Memory) AttendanceRepo() attendance.AttendanceRepository {
	return memoryAttendance{m}
}

type memoryAttendance struct{ m *Memory }

func (a memoryAttendance) List(ctx context.Context, employeeID string, dateRange attendance.DateRange) ([]attendance.Record, error) {
	return a.m.ListAttendance(ctx, employeeID, dateRange)
}

func (a memoryAttendance) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.Record, error) {
	return a.m.Mark(ctx, req)
}

func (a memoryAttendance) Summary(ctx context.Context) (attendance.Summary, error) {
	return a.m.Summary(ctx)
}

// Seed loads employees and marks directly, bypassing call counters.
func (m *Memory) Seed(employees []employee.CreateEmployeeRequest, marks []attendance.MarkAttendanceRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, req := range employees {
		m.employees = append(m.employees, employee.Employee{
			EmployeeID: req.EmployeeID,
			FullName:   req.FullName,
			Email:      req.Email,
			Department: req.Department,
		})
	}
	for _, mark := range marks {
		m.records[attendance.Key{EmployeeID: mark.EmployeeID, Date: mark.Date}] = mark.Status
	}
}
