package employee

import "context"

// EmployeeRepository is backed by the remote HRMS API, which owns storage.
type EmployeeRepository interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
}
