// Package view derives everything the dashboard renders from the cached
// entities: per-day status, filtered and sorted lists, pages, and the
// aggregate figures of the stat cards and charts. Functions here do no I/O
// and never read the clock; callers pass today in.
package view

import (
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-dashboard-go/internal/domain/employee"
)

// StatusIndex maps an (employee, day) cell to its recorded status.
type StatusIndex map[attendance.Key]attendance.Status

// NewStatusIndex indexes records. When a cell appears more than once the
// later record wins, matching the upsert semantics of a mark.
func NewStatusIndex(records []attendance.Record) StatusIndex {
	idx := make(StatusIndex, len(records))
	for _, rec := range records {
		idx[rec.Key()] = rec.Status
	}
	return idx
}

// StatusOf returns the recorded status of the cell, or NotMarked.
func (idx StatusIndex) StatusOf(employeeID, day string) attendance.Status {
	if s, ok := idx[attendance.Key{EmployeeID: employeeID, Date: day}]; ok {
		return s
	}
	return attendance.StatusNotMarked
}

// StatusOf is the one-shot form of StatusIndex.StatusOf. Prefer building an
// index when deriving many cells from the same records.
func StatusOf(employeeID, day string, records []attendance.Record) attendance.Status {
	status := attendance.StatusNotMarked
	for _, rec := range records {
		if rec.EmployeeID == employeeID && rec.Date == day {
			status = rec.Status
		}
	}
	return status
}

// TodayStatusMap reconciles the records fetched for day with the employee
// list: every employee gets an entry, NotMarked when nothing was recorded.
func TodayStatusMap(employees []employee.Employee, day string, records []attendance.Record) map[string]attendance.Status {
	idx := NewStatusIndex(records)
	out := make(map[string]attendance.Status, len(employees))
	for _, emp := range employees {
		out[emp.EmployeeID] = idx.StatusOf(emp.EmployeeID, day)
	}
	return out
}

// EmployeeView is an employee joined with its status for the viewed day.
type EmployeeView struct {
	employee.Employee
	Status attendance.Status
	// Pending marks a status that is an unconfirmed optimistic write.
	Pending bool
}

// Join pairs each employee with its status from statuses. Missing entries
// and a nil map yield NotMarked.
func Join(employees []employee.Employee, statuses map[string]attendance.Status) []EmployeeView {
	out := make([]EmployeeView, len(employees))
	for i, emp := range employees {
		s, ok := statuses[emp.EmployeeID]
		if !ok {
			s = attendance.StatusNotMarked
		}
		out[i] = EmployeeView{Employee: emp, Status: s}
	}
	return out
}
