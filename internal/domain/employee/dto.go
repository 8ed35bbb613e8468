package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/view/paging"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Validate checks all four fields together and reports every violation.
func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "Employee ID is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "Full name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Email is required",
		})
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "Please enter a valid email address",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "Department is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Normalize trims every field and lowercases the email. Department casing is
// resolved separately against the known departments.
func (r CreateEmployeeRequest) Normalize() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		EmployeeID: strings.TrimSpace(r.EmployeeID),
		FullName:   strings.TrimSpace(r.FullName),
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
		Department: strings.TrimSpace(r.Department),
	}
}

type EmployeeResponse struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	CreatedAt  *string `json:"created_at,omitempty"`
}

// created_at arrives either as RFC3339 or as a naive ISO timestamp
var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ToEntity maps the wire shape to the domain entity. An unparseable
// created_at is dropped rather than failing the whole list.
func (r EmployeeResponse) ToEntity() Employee {
	emp := Employee{
		EmployeeID: r.EmployeeID,
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
	if r.CreatedAt != nil {
		for _, layout := range createdAtLayouts {
			if t, err := time.Parse(layout, *r.CreatedAt); err == nil {
				emp.CreatedAt = &t
				break
			}
		}
	}
	return emp
}

func NewEmployeeResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID: emp.EmployeeID,
		FullName:   emp.FullName,
		Email:      emp.Email,
		Department: emp.Department,
	}
	if emp.CreatedAt != nil {
		s := emp.CreatedAt.UTC().Format(time.RFC3339)
		resp.CreatedAt = &s
	}
	return resp
}

// DirectoryFilter is the query of the employee directory view.
type DirectoryFilter struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	// Status filters on today's attendance status.
	Status    *string `json:"status,omitempty"`
	SortOrder *string `json:"sort_order,omitempty"` // asc, desc
	Page      *int    `json:"page,omitempty"`
}

func (f *DirectoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.SortOrder != nil && !validator.IsInSlice(strings.ToLower(*f.SortOrder), []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "sort_order",
			Message: "sort_order must be one of: asc, desc",
		})
	}

	if f.Page != nil && *f.Page < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, directoryStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(directoryStatuses, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

var directoryStatuses = []string{"all", "Present", "Absent", "Not Marked"}

// DirectoryRow is one employee with today's attendance status.
type DirectoryRow struct {
	EmployeeResponse
	TodayStatus string `json:"today_status"`
	Pending     bool   `json:"pending,omitempty"`
}

type DepartmentCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type DirectoryResponse struct {
	TotalEmployees int               `json:"total_employees"`
	Filtered       bool              `json:"filtered"`
	Departments    []DepartmentCount `json:"departments"`
	SortOrder      string            `json:"sort_order"`
	Employees      []DirectoryRow    `json:"employees"`
	Pagination     paging.Info       `json:"pagination"`
}

type DepartmentsResponse struct {
	Departments []DepartmentCount `json:"departments"`
	// Populated when a query is given.
	Suggestions   []string `json:"suggestions,omitempty"`
	Match         *string  `json:"match,omitempty"`
	NewDepartment *string  `json:"new_department,omitempty"`
}
