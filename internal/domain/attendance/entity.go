package attendance

import (
	"fmt"
	"time"
)

// Status of an employee on a calendar day. Only Present and Absent are ever
// persisted; NotMarked is derived from the absence of a record.
type Status string

const (
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusNotMarked Status = "Not Marked"
)

// DateLayout is the ISO calendar date used on the wire and as record key.
const DateLayout = "2006-01-02"

// Record is keyed by (EmployeeID, Date); at most one exists per employee per day.
type Record struct {
	EmployeeID string
	Date       string
	Status     Status
}

// Key identifies the (employee, day) cell a record occupies.
type Key struct {
	EmployeeID string
	Date       string
}

func (r Record) Key() Key {
	return Key{EmployeeID: r.EmployeeID, Date: r.Date}
}

// Summary is the pre-aggregated, unfiltered count for today across all employees.
type Summary struct {
	TotalEmployees int
	PresentToday   int
	AbsentToday    int
}

// DateRange bounds a record query. Empty bounds mean unbounded.
type DateRange struct {
	StartDate string
	EndDate   string
}

// Day returns a single-day range.
func Day(date string) DateRange {
	return DateRange{StartDate: date, EndDate: date}
}

// IsZero reports whether both bounds are empty.
func (r DateRange) IsZero() bool {
	return r.StartDate == "" && r.EndDate == ""
}

// Contains reports whether date falls inside the range, inclusive.
func (r DateRange) Contains(date string) bool {
	if r.StartDate != "" && date < r.StartDate {
		return false
	}
	if r.EndDate != "" && date > r.EndDate {
		return false
	}
	return true
}

// FormatDate renders t as an ISO calendar date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseStatus accepts the three display values plus the "all" wildcard used by filters.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPresent, StatusAbsent, StatusNotMarked:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsMarkable reports whether s can be written by a mark action.
func (s Status) IsMarkable() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Transition validates a mark action on a single (employee, day) cell.
//
//	NotMarked -> Present | Absent
//	Present  <-> Absent
//
// Re-marking the current status is an idempotent upsert. Nothing moves back to NotMarked.
func Transition(from, to Status) error {
	if !to.IsMarkable() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	switch from {
	case StatusNotMarked, StatusPresent, StatusAbsent:
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
