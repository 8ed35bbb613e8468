package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// Directory returns the filtered, sorted and paginated employee directory
	Directory(ctx context.Context, filter DirectoryFilter) (DirectoryResponse, error)

	// CreateEmployee validates, resolves the department label and creates the employee upstream
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee deletes an employee; deleting an unknown ID is treated as done
	DeleteEmployee(ctx context.Context, employeeID string) error

	// Departments lists known departments, optionally with suggestions for a typed query
	Departments(ctx context.Context, query string) (DepartmentsResponse, error)
}
