package view

import (
	"strings"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

// All is the filter value that disables a department or status filter.
const All = "all"

// FilterCriteria narrows an employee list. Empty or All fields are no-ops.
type FilterCriteria struct {
	Department string
	Status     string
	Search     string
}

func isAll(v string) bool {
	return v == "" || v == All
}

// FilterEmployees applies department, then status, then search. The input is
// not modified and the relative order of survivors is kept.
func FilterEmployees(views []EmployeeView, c FilterCriteria) []EmployeeView {
	out := make([]EmployeeView, 0, len(views))
	for _, v := range views {
		if !isAll(c.Department) && v.Department != c.Department {
			continue
		}
		if !isAll(c.Status) && v.Status != attendance.Status(c.Status) {
			continue
		}
		if !MatchesSearch(v.Employee, c.Search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FilterByDepartment keeps the employees of dept, or all of them for All.
func FilterByDepartment(employees []employee.Employee, dept string) []employee.Employee {
	if isAll(dept) {
		return employees
	}
	out := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		if emp.Department == dept {
			out = append(out, emp)
		}
	}
	return out
}

// MatchesSearch reports whether the trimmed, case-folded query is a
// substring of the employee's name, ID, email or department. A blank query
// matches everything.
func MatchesSearch(emp employee.Employee, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{emp.FullName, emp.EmployeeID, emp.Email, emp.Department} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
