package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	var resp []employee.EmployeeResponse
	err := c.do(ctx, call{
		op:       "list employees",
		method:   http.MethodGet,
		path:     "/api/employees",
		resource: ResourceEmployee,
	}, &resp)
	if err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, len(resp))
	for i, r := range resp {
		employees[i] = r.ToEntity()
	}
	return employees, nil
}

// CreateEmployee creates an employee. Duplicate IDs or emails come back as
// *ValidationError wrapping employee.ErrEmployeeIDExists or ErrEmailExists.
func (c *Client) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	var resp employee.EmployeeResponse
	err := c.do(ctx, call{
		op:       "create employee",
		method:   http.MethodPost,
		path:     "/api/employees",
		body:     req,
		resource: ResourceEmployee,
		id:       req.EmployeeID,
	}, &resp)
	if err != nil {
		return employee.Employee{}, err
	}
	return resp.ToEntity(), nil
}

// DeleteEmployee deletes an employee and, upstream, its attendance records.
// An unknown ID fails with *NotFoundError.
func (c *Client) DeleteEmployee(ctx context.Context, employeeID string) error {
	return c.do(ctx, call{
		op:       "delete employee",
		method:   http.MethodDelete,
		path:     "/api/employees/" + url.PathEscape(employeeID),
		resource: ResourceEmployee,
		id:       employeeID,
	}, nil)
}

type employeeRepository struct {
	client *Client
}

// NewEmployeeRepository exposes the client as the employee repository.
func NewEmployeeRepository(c *Client) employee.EmployeeRepository {
	return &employeeRepository{client: c}
}

func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	return r.client.ListEmployees(ctx)
}

func (r *employeeRepository) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	return r.client.CreateEmployee(ctx, req)
}

func (r *employeeRepository) Delete(ctx context.Context, employeeID string) error {
	return r.client.DeleteEmployee(ctx, employeeID)
}
